package schemas

// emailContentSchema is the strict contract for the generation backend's
// response: exactly these seven keys, all strings. A missing or mistyped
// field is a parse failure, never a partially-accepted object.
const emailContentSchema = `{
  "type": "object",
  "required": [
    "subject",
    "tldr",
    "value_prop",
    "company_line",
    "company_fact_source",
    "body",
    "close"
  ],
  "properties": {
    "subject": {"type": "string"},
    "tldr": {"type": "string"},
    "value_prop": {"type": "string"},
    "company_line": {"type": "string"},
    "company_fact_source": {"type": "string"},
    "body": {"type": "string"},
    "close": {"type": "string"}
  }
}`

// ValidateEmailContent checks a backend response document against the
// seven-field email content schema.
func ValidateEmailContent(jsonContent string) error {
	return ValidateJSONString(emailContentSchema, jsonContent)
}
