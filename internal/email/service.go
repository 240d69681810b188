// Package email sends transactional order mail over SMTP.
package email

import (
	"fmt"
	"net/smtp"

	"github.com/shopspring/decimal"
)

// Service handles email sending via SMTP.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendOrderConfirmation sends the order-placed email.
func (s *Service) SendOrderConfirmation(to, orderID string, grandTotal decimal.Decimal, itemCount int) error {
	subject := fmt.Sprintf("Order confirmed (order no: %s)", shortID(orderID))
	body := BuildOrderConfirmationBody(orderID, grandTotal, itemCount)
	return s.send(to, subject, body)
}

// SendStatusUpdate sends the order-status-changed email.
func (s *Service) SendStatusUpdate(to, orderID, status string) error {
	subject := fmt.Sprintf("Order %s update: %s", shortID(orderID), status)
	body := BuildStatusUpdateBody(orderID, status)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

func shortID(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}
