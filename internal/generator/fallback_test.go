package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shivam27k/email-automation-bot/internal/types"
)

func TestFallback(t *testing.T) {
	recipient := types.Recipient{
		Name:        "Ana",
		Email:       "ana@example.com",
		JobRole:     "Backend Engineer",
		CompanyName: "Acme",
	}

	msg := Fallback(recipient, "Shivam")

	assert.Equal(t, "Application for Backend Engineer role at Acme", msg.Subject)
	assert.Contains(t, msg.Body, "Hi Ana,")
	assert.Contains(t, msg.Body, "Backend Engineer role at Acme")
	assert.Contains(t, msg.Body, "Best,\nShivam")
	assert.True(t, len(msg.Body) > 0)
}

func TestFallback_IsDeterministic(t *testing.T) {
	recipient := types.Recipient{
		Name:        "Bo",
		Email:       "bo@example.com",
		JobRole:     "SRE",
		CompanyName: "Initech",
	}

	first := Fallback(recipient, "Shivam")
	second := Fallback(recipient, "Shivam")
	assert.Equal(t, first, second)
}

func TestFallback_StartsWithTLDR(t *testing.T) {
	msg := Fallback(types.Recipient{Name: "Ana", JobRole: "Engineer", CompanyName: "Acme"}, "Shivam")
	assert.Equal(t, "tldr;", msg.Body[:5])
}
