package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() string {
	return `{
		"subject": "Application for Backend Engineer",
		"tldr": "I ship fast.",
		"value_prop": "I build reliable systems.",
		"company_line": "",
		"company_fact_source": "",
		"body": "I would love to contribute.",
		"close": "Open to a chat?"
	}`
}

func TestValidateEmailContent_Valid(t *testing.T) {
	assert.NoError(t, ValidateEmailContent(validDocument()))
}

func TestValidateEmailContent_MissingKey(t *testing.T) {
	doc := `{
		"subject": "s",
		"tldr": "t",
		"value_prop": "v",
		"company_line": "",
		"company_fact_source": "",
		"body": "b"
	}`

	err := ValidateEmailContent(doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "close")
}

func TestValidateEmailContent_NonStringField(t *testing.T) {
	doc := `{
		"subject": "s",
		"tldr": 42,
		"value_prop": "v",
		"company_line": "",
		"company_fact_source": "",
		"body": "b",
		"close": "c"
	}`

	err := ValidateEmailContent(doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "tldr")
}

func TestValidateEmailContent_EmptyObject(t *testing.T) {
	err := ValidateEmailContent("{}")
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	// all seven required fields should be reported
	assert.Len(t, validationErr.Errors, 7)
}

func TestValidateEmailContent_NotJSON(t *testing.T) {
	err := ValidateEmailContent("here is your email")
	require.Error(t, err)

	// a document that cannot be parsed at all is a load error, not a field error
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "schema validation failed during load")
}

func TestValidationError_MessageFormat(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "subject", Message: "subject is required"},
		{Field: "close", Message: "close is required"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed:")
	assert.Contains(t, msg, "subject: subject is required")
	assert.Contains(t, msg, "close: close is required")
}
