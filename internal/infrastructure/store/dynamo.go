package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
)

// DynamoAPI is the subset of *dynamodb.Client used by the DynamoDB stores.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoTables names the table of each entity. Every table is keyed by a string "id".
type DynamoTables struct {
	Products  string
	Customers string
	Orders    string
}

// dynamoTable implements the key/scan plumbing shared by the entity stores.
type dynamoTable struct {
	client DynamoAPI
	name   string
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

func (t dynamoTable) put(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in %s: %w", t.name, err)
	}
	return nil
}

// get unmarshals the item with the given id into out and reports whether it exists.
func (t dynamoTable) get(ctx context.Context, id string, out any) (bool, error) {
	result, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item from %s: %w", t.name, err)
	}
	if result.Item == nil {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item from %s: %w", t.name, err)
	}
	return true, nil
}

func (t dynamoTable) exists(ctx context.Context, id string) (bool, error) {
	result, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(t.name),
		Key:                  idKey(id),
		ProjectionExpression: aws.String("id"),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item from %s: %w", t.name, err)
	}
	return result.Item != nil, nil
}

func (t dynamoTable) delete(ctx context.Context, id string) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       idKey(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from %s: %w", t.name, err)
	}
	return nil
}

// scan reads every page of the table, applying an optional filter expression.
func (t dynamoTable) scan(ctx context.Context, filter *string, names map[string]string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(t.name),
		FilterExpression: filter,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if len(values) > 0 {
		input.ExpressionAttributeValues = values
	}

	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(t.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.name, err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

// ============================================
// Products
// ============================================

type dynamoProduct struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description"`
	Price       string `dynamodbav:"price"`
	Currency    string `dynamodbav:"currency"`
	Stock       int    `dynamodbav:"stock"`
	Category    string `dynamodbav:"category"`
}

func toDynamoProduct(p *product.Product) dynamoProduct {
	return dynamoProduct{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Amount().String(),
		Currency:    p.Price.Currency(),
		Stock:       p.Stock(),
		Category:    p.Category.String(),
	}
}

func (d dynamoProduct) toDomain() (*product.Product, error) {
	price, err := money.Parse(d.Price, d.Currency)
	if err != nil {
		return nil, err
	}
	return product.New(ids.ProductID(d.ID), d.Name, d.Description, price, d.Stock, product.Category(d.Category))
}

// DynamoProductStore implements product.Repository on a DynamoDB table
type DynamoProductStore struct {
	table dynamoTable
}

func NewDynamoProductStore(client DynamoAPI, tableName string) *DynamoProductStore {
	return &DynamoProductStore{table: dynamoTable{client: client, name: tableName}}
}

func (s *DynamoProductStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	if err := s.table.put(ctx, toDynamoProduct(p)); err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (s *DynamoProductStore) FindByID(ctx context.Context, id ids.ProductID) (*product.Product, bool, error) {
	var d dynamoProduct
	found, err := s.table.get(ctx, id.String(), &d)
	if err != nil || !found {
		return nil, false, err
	}
	p, err := d.toDomain()
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *DynamoProductStore) FindAll(ctx context.Context) ([]*product.Product, error) {
	return s.scan(ctx, nil, nil, nil)
}

func (s *DynamoProductStore) FindByCategory(ctx context.Context, category product.Category) ([]*product.Product, error) {
	return s.scan(ctx, aws.String("category = :c"), nil, map[string]types.AttributeValue{
		":c": &types.AttributeValueMemberS{Value: category.String()},
	})
}

func (s *DynamoProductStore) FindLowStock(ctx context.Context, threshold int) ([]*product.Product, error) {
	return s.scan(ctx, aws.String("stock < :t"), nil, map[string]types.AttributeValue{
		":t": &types.AttributeValueMemberN{Value: strconv.Itoa(threshold)},
	})
}

func (s *DynamoProductStore) ExistsByID(ctx context.Context, id ids.ProductID) (bool, error) {
	return s.table.exists(ctx, id.String())
}

func (s *DynamoProductStore) DeleteByID(ctx context.Context, id ids.ProductID) error {
	return s.table.delete(ctx, id.String())
}

func (s *DynamoProductStore) scan(ctx context.Context, filter *string, names map[string]string, values map[string]types.AttributeValue) ([]*product.Product, error) {
	items, err := s.table.scan(ctx, filter, names, values)
	if err != nil {
		return nil, err
	}
	var rows []dynamoProduct
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}
	products := make([]*product.Product, 0, len(rows))
	for _, d := range rows {
		p, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", d.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// ============================================
// Customers
// ============================================

type dynamoCustomer struct {
	ID       string `dynamodbav:"id"`
	Name     string `dynamodbav:"name"`
	LastName string `dynamodbav:"last_name"`
	Email    string `dynamodbav:"email"`
	Phone    string `dynamodbav:"phone"`
	City     string `dynamodbav:"city"`
}

func toDynamoCustomer(c *customer.Customer) dynamoCustomer {
	return dynamoCustomer{
		ID:       c.ID.String(),
		Name:     c.Name,
		LastName: c.LastName,
		Email:    c.Email.String(),
		Phone:    c.Phone,
		City:     c.City,
	}
}

func (d dynamoCustomer) toDomain() (*customer.Customer, error) {
	return customer.New(ids.CustomerID(d.ID), d.Name, d.LastName, ids.Email(d.Email), d.Phone, d.City)
}

// DynamoCustomerStore implements customer.Repository on a DynamoDB table
type DynamoCustomerStore struct {
	table dynamoTable
}

func NewDynamoCustomerStore(client DynamoAPI, tableName string) *DynamoCustomerStore {
	return &DynamoCustomerStore{table: dynamoTable{client: client, name: tableName}}
}

func (s *DynamoCustomerStore) Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if err := s.table.put(ctx, toDynamoCustomer(c)); err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (s *DynamoCustomerStore) FindByID(ctx context.Context, id ids.CustomerID) (*customer.Customer, bool, error) {
	var d dynamoCustomer
	found, err := s.table.get(ctx, id.String(), &d)
	if err != nil || !found {
		return nil, false, err
	}
	c, err := d.toDomain()
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *DynamoCustomerStore) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	items, err := s.table.scan(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	var rows []dynamoCustomer
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customers: %w", err)
	}
	customers := make([]*customer.Customer, 0, len(rows))
	for _, d := range rows {
		c, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", d.ID, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (s *DynamoCustomerStore) ExistsByID(ctx context.Context, id ids.CustomerID) (bool, error) {
	return s.table.exists(ctx, id.String())
}

func (s *DynamoCustomerStore) DeleteByID(ctx context.Context, id ids.CustomerID) error {
	return s.table.delete(ctx, id.String())
}

// ============================================
// Orders
// ============================================

// Orders are stored as one item with their lines embedded, so a save is a single put.
type dynamoOrder struct {
	ID         string            `dynamodbav:"id"`
	CustomerID string            `dynamodbav:"customer_id"`
	Status     string            `dynamodbav:"status"`
	Items      []dynamoOrderItem `dynamodbav:"items"`
	CreatedAt  string            `dynamodbav:"created_at"`
	UpdatedAt  string            `dynamodbav:"updated_at"`
}

type dynamoOrderItem struct {
	ProductID string `dynamodbav:"product_id"`
	Quantity  int    `dynamodbav:"quantity"`
	UnitPrice string `dynamodbav:"unit_price"`
	Currency  string `dynamodbav:"currency"`
}

func toDynamoOrder(o *order.Order) dynamoOrder {
	d := dynamoOrder{
		ID:         o.ID.String(),
		CustomerID: o.CustomerID.String(),
		Status:     string(o.Status()),
		CreatedAt:  o.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:  o.UpdatedAt().Format(time.RFC3339Nano),
	}
	for _, item := range o.Items() {
		d.Items = append(d.Items, dynamoOrderItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount().String(),
			Currency:  item.UnitPrice.Currency(),
		})
	}
	return d
}

func (d dynamoOrder) toDomain() (*order.Order, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	updatedAt, _ := time.Parse(time.RFC3339Nano, d.UpdatedAt)

	items := make([]order.Item, 0, len(d.Items))
	for _, di := range d.Items {
		price, err := money.Parse(di.UnitPrice, di.Currency)
		if err != nil {
			return nil, err
		}
		items = append(items, order.Item{
			ProductID: ids.ProductID(di.ProductID),
			Quantity:  di.Quantity,
			UnitPrice: price,
		})
	}
	return order.Rehydrate(ids.OrderID(d.ID), ids.CustomerID(d.CustomerID), order.Status(d.Status), items, createdAt, updatedAt)
}

// DynamoOrderStore implements order.Repository on a DynamoDB table
type DynamoOrderStore struct {
	table dynamoTable
}

func NewDynamoOrderStore(client DynamoAPI, tableName string) *DynamoOrderStore {
	return &DynamoOrderStore{table: dynamoTable{client: client, name: tableName}}
}

func (s *DynamoOrderStore) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := s.table.put(ctx, toDynamoOrder(o)); err != nil {
		return nil, err
	}
	return o.Clone(), nil
}

func (s *DynamoOrderStore) FindByID(ctx context.Context, id ids.OrderID) (*order.Order, bool, error) {
	var d dynamoOrder
	found, err := s.table.get(ctx, id.String(), &d)
	if err != nil || !found {
		return nil, false, err
	}
	o, err := d.toDomain()
	if err != nil {
		return nil, false, err
	}
	return o, true, nil
}

func (s *DynamoOrderStore) FindByCustomerID(ctx context.Context, customerID ids.CustomerID) ([]*order.Order, error) {
	return s.scan(ctx, aws.String("customer_id = :c"), nil, map[string]types.AttributeValue{
		":c": &types.AttributeValueMemberS{Value: customerID.String()},
	})
}

func (s *DynamoOrderStore) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	// status is a DynamoDB reserved word
	return s.scan(ctx, aws.String("#s = :s"), map[string]string{"#s": "status"}, map[string]types.AttributeValue{
		":s": &types.AttributeValueMemberS{Value: string(status)},
	})
}

func (s *DynamoOrderStore) FindPending(ctx context.Context) ([]*order.Order, error) {
	return s.FindByStatus(ctx, order.StatusPending)
}

func (s *DynamoOrderStore) FindAll(ctx context.Context) ([]*order.Order, error) {
	return s.scan(ctx, nil, nil, nil)
}

func (s *DynamoOrderStore) Delete(ctx context.Context, o *order.Order) error {
	return s.table.delete(ctx, o.ID.String())
}

func (s *DynamoOrderStore) DeleteByID(ctx context.Context, id ids.OrderID) error {
	return s.table.delete(ctx, id.String())
}

func (s *DynamoOrderStore) ExistsByID(ctx context.Context, id ids.OrderID) (bool, error) {
	return s.table.exists(ctx, id.String())
}

func (s *DynamoOrderStore) scan(ctx context.Context, filter *string, names map[string]string, values map[string]types.AttributeValue) ([]*order.Order, error) {
	items, err := s.table.scan(ctx, filter, names, values)
	if err != nil {
		return nil, err
	}
	var rows []dynamoOrder
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
	}
	orders := make([]*order.Order, 0, len(rows))
	for _, d := range rows {
		o, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", d.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

var (
	_ product.Repository  = (*DynamoProductStore)(nil)
	_ customer.Repository = (*DynamoCustomerStore)(nil)
	_ order.Repository    = (*DynamoOrderStore)(nil)
	_ DynamoAPI           = (*dynamodb.Client)(nil)
)
