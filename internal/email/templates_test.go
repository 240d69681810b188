package email

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildOrderConfirmationBody(t *testing.T) {
	body := BuildOrderConfirmationBody("order-abc-123", decimal.NewFromInt(1050), 3)

	assert.Contains(t, body, "order-abc-123")
	assert.Contains(t, body, "1050.00")
	assert.Contains(t, body, "3 item(s)")
	assert.Contains(t, body, "<html>")
}

func TestBuildStatusUpdateBody(t *testing.T) {
	body := BuildStatusUpdateBody("order-abc-123", "shipped")

	assert.Contains(t, body, "order-abc-123")
	assert.Contains(t, body, "<strong>shipped</strong>")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("123456789012"))
	assert.Equal(t, "short", shortID("short"))
}
