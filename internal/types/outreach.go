// Package types provides type definitions for structured data used throughout the outreach bot.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Recipient is a single outreach target read from the recipient list.
// It is immutable once ingested; the pipeline consumes it exactly once.
type Recipient struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,min=1"`
	JobRole     string `json:"job_role" validate:"required,min=1"`
	CompanyName string `json:"company_name" validate:"required,min=1"`

	// CompanyWebsite is an optional URL used for company research. It may
	// lack a scheme (e.g. "acme.com").
	CompanyWebsite string `json:"company_website,omitempty"`

	// CompanyContext is optional free-text research supplied directly on the
	// row. When present it replaces fetched research entirely.
	CompanyContext string `json:"company_context,omitempty"`
}

// Validate checks that the required recipient columns are populated.
// Email format is deliberately not validated; the mail relay is the authority.
func (r *Recipient) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// EmailMessage is the final subject/body pair handed to the mail transport.
// The body is plain text.
type EmailMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
