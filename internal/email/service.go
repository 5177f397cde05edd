package email

import (
	"fmt"
	"mime"
	"net/smtp"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service handles email sending via SMTP
type Service struct {
	host     string
	port     string
	from     string
	sendMail SendFunc
}

func NewService(host, port, from string) *Service {
	return &Service{
		host:     host,
		port:     port,
		from:     from,
		sendMail: smtp.SendMail,
	}
}

// WithSendFunc replaces the SMTP transport, mainly for tests.
func (s *Service) WithSendFunc(fn SendFunc) *Service {
	s.sendMail = fn
	return s
}

// SendOrderStatusChange tells a customer their order moved to status.
func (s *Service) SendOrderStatusChange(to, orderID, status string) error {
	subject := fmt.Sprintf("[Arka] Pedido %s: %s", shortID(orderID), statusLabel(status))
	return s.send(to, subject, BuildOrderStatusBody(orderID, status))
}

// SendLowStockAlert tells the operations mailbox a product needs restocking.
func (s *Service) SendLowStockAlert(to, productName string, stock int) error {
	subject := fmt.Sprintf("[Arka] Stock bajo: %s (%d unidades)", productName, stock)
	return s.send(to, subject, BuildLowStockBody(productName, stock))
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, mime.QEncoding.Encode("utf-8", subject), body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.sendMail(addr, nil, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
