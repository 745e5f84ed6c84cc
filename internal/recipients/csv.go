// Package recipients provides ingestion of the tabular recipient list.
package recipients

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shivam27k/email-automation-bot/internal/types"
)

// Required CSV columns. Optional columns (company_website, company_context)
// resolve to empty strings when absent.
var requiredColumns = []string{"name", "email", "job_role", "company_name"}

// ReadCSV reads the recipient list from a CSV file with a header row.
// Rows missing any required column value are skipped with an error entry in
// the returned slice of row errors; ingestion itself only fails if the file
// cannot be read or the header is unusable.
func ReadCSV(path string) ([]types.Recipient, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open recipient file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read parses recipient rows from r. See ReadCSV.
func Read(r io.Reader) ([]types.Recipient, []error, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("CSV is missing required column %q", col)
		}
	}

	var (
		out     []types.Recipient
		rowErrs []error
	)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		recipient := types.Recipient{
			Name:           field("name"),
			Email:          field("email"),
			JobRole:        field("job_role"),
			CompanyName:    field("company_name"),
			CompanyWebsite: field("company_website"),
			CompanyContext: field("company_context"),
		}

		if err := recipient.Validate(); err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		out = append(out, recipient)
	}

	return out, rowErrs, nil
}
