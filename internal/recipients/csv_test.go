package recipients

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_ValidRows(t *testing.T) {
	input := "name,email,job_role,company_name,company_website,company_context\n" +
		"Ana,ana@example.com,Backend Engineer,Acme,acme.com,\n" +
		"Bo,bo@example.com,SRE,Initech,,Initech runs managed clusters.\n"

	recips, rowErrs, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, recips, 2)

	assert.Equal(t, "Ana", recips[0].Name)
	assert.Equal(t, "ana@example.com", recips[0].Email)
	assert.Equal(t, "Backend Engineer", recips[0].JobRole)
	assert.Equal(t, "Acme", recips[0].CompanyName)
	assert.Equal(t, "acme.com", recips[0].CompanyWebsite)
	assert.Empty(t, recips[0].CompanyContext)

	assert.Equal(t, "Initech runs managed clusters.", recips[1].CompanyContext)
	assert.Empty(t, recips[1].CompanyWebsite)
}

func TestRead_OptionalColumnsAbsent(t *testing.T) {
	input := "name,email,job_role,company_name\n" +
		"Ana,ana@example.com,Engineer,Acme\n"

	recips, rowErrs, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, recips, 1)
	assert.Empty(t, recips[0].CompanyWebsite)
	assert.Empty(t, recips[0].CompanyContext)
}

func TestRead_SkipsInvalidRows(t *testing.T) {
	input := "name,email,job_role,company_name\n" +
		"Ana,ana@example.com,Engineer,Acme\n" +
		"Bo,,SRE,Initech\n" +
		"Cy,cy@example.com,Designer,Hooli\n"

	recips, rowErrs, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recips, 2)
	assert.Equal(t, "Ana", recips[0].Name)
	assert.Equal(t, "Cy", recips[1].Name)

	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0].Error(), "line 3")
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	input := "name,email,company_name\n" +
		"Ana,ana@example.com,Acme\n"

	_, _, err := Read(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"job_role"`)
}

func TestRead_HeaderCaseAndSpacing(t *testing.T) {
	input := "Name, Email ,JOB_ROLE,Company_Name\n" +
		"Ana,ana@example.com,Engineer,Acme\n"

	recips, rowErrs, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, recips, 1)
	assert.Equal(t, "ana@example.com", recips[0].Email)
}

func TestRead_TrimsCellWhitespace(t *testing.T) {
	input := "name,email,job_role,company_name\n" +
		"  Ana  , ana@example.com ,Engineer,Acme\n"

	recips, _, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recips, 1)
	assert.Equal(t, "Ana", recips[0].Name)
	assert.Equal(t, "ana@example.com", recips[0].Email)
}

func TestRead_EmptyInput(t *testing.T) {
	_, _, err := Read(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CSV header")
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.csv")
	content := "name,email,job_role,company_name\nAna,ana@example.com,Engineer,Acme\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	recips, rowErrs, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Len(t, recips, 1)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, _, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open recipient file")
}
