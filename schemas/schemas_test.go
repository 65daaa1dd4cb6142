package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-scout/internal/schemas"
)

func TestImportRecordsSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile("import_records.json")
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestImportRecordsSchema_HasJSONSchemaShape(t *testing.T) {
	data, err := os.ReadFile("import_records.json")
	require.NoError(t, err)

	var schemaObj map[string]interface{}
	err = json.Unmarshal(data, &schemaObj)
	require.NoError(t, err)

	assert.Equal(t, "array", schemaObj["type"], "import payload is a list of rows")
	_, hasSchema := schemaObj["$schema"]
	_, hasItems := schemaObj["items"]
	assert.True(t, hasSchema, "schema should declare $schema")
	assert.True(t, hasItems, "schema should declare items")
}

func TestImportRecordsSchema_AcceptsMinimalRow(t *testing.T) {
	payload := []byte(`[{"domain": "acme.com"}]`)
	err := schemas.ValidateBytes(schemas.ImportRecordsSchema, payload)
	assert.NoError(t, err, "a row with only a domain should validate")
}

func TestImportRecordsSchema_RejectsUnknownPageType(t *testing.T) {
	payload := []byte(`[{"domain": "acme.com", "page_type": "careers"}]`)
	err := schemas.ValidateBytes(schemas.ImportRecordsSchema, payload)
	var verr *schemas.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "page_type")
}
