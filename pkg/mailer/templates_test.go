package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOrderConfirmation(t *testing.T) {
	subject, html, err := Render("order_confirmation", map[string]any{
		"Name":     "Alice",
		"OrderID":  "order-1",
		"ItemList": "Nebula X2 (1), AeroBuds (2)",
		"Total":    "2597.00",
		"Company":  "TechTrove",
	})
	require.NoError(t, err)
	assert.Equal(t, "Order Confirmed", subject)
	assert.Contains(t, html, "Hi Alice")
	assert.Contains(t, html, "order-1")
	assert.Contains(t, html, "Nebula X2 (1), AeroBuds (2)")
	assert.Contains(t, html, "2597.00")
}

func TestRenderPasswordReset(t *testing.T) {
	subject, html, err := Render("password_reset", map[string]any{
		"Name":     "Alice",
		"ResetURL": "https://techtrove.dev/reset?token=abc",
		"Company":  "TechTrove",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reset Your Password", subject)
	assert.Contains(t, html, "https://techtrove.dev/reset?token=abc")
	assert.Contains(t, html, "expires in 30 minutes")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("newsletter", nil)
	assert.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	_, html, err := Render("order_confirmation", map[string]any{
		"Name": "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
