package email

import (
	"fmt"
	"html"
)

var statusLabels = map[string]string{
	"PENDING":   "recibido",
	"CONFIRMED": "confirmado",
	"SHIPPING":  "en camino",
	"DELIVERED": "entregado",
}

func statusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

// BuildOrderStatusBody builds the HTML body for an order status email
func BuildOrderStatusBody(orderID, status string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: #1f4e79; padding: 24px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 22px;">Tu pedido fue %s</h1>
	</div>
	<div style="background: #fff; padding: 24px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin: 0; font-size: 14px; color: #666;">Número de pedido</p>
		<p style="margin: 5px 0 20px 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		<p style="margin: 0;">Estado actual: <strong>%s</strong></p>
	</div>
	<p style="font-size: 12px; color: #999; text-align: center;">Arka · Distribución de accesorios para PC</p>
</body>
</html>`,
		html.EscapeString(statusLabel(status)),
		html.EscapeString(orderID),
		html.EscapeString(status),
	)
}

// BuildLowStockBody builds the HTML body for a restock alert
func BuildLowStockBody(productName string, stock int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 20px; color: #b03a2e;">Alerta de stock bajo</h1>
	<p>El producto <strong>%s</strong> tiene <strong>%d</strong> unidades disponibles.</p>
	<p>Programa un reabastecimiento con el proveedor.</p>
</body>
</html>`,
		html.EscapeString(productName),
		stock,
	)
}
