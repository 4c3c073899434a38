package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{Profile, Report} {
		t.Run(name, func(t *testing.T) {
			content, err := Schema(name)
			require.NoError(t, err)

			var v any
			assert.NoError(t, json.Unmarshal([]byte(content), &v))
		})
	}
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Schema("nope.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidate_Profile(t *testing.T) {
	doc := `{
		"name": "expression matrix",
		"sep": "\t",
		"base": {"suffixes": ["txt"], "max_size": "20M", "encodings": ["UTF-8"]},
		"content": {
			"rows": {"min": 2},
			"row_content": {"enabled": true, "targets": [1], "duplicates": true},
			"row_type": {"targets": "skip-first", "min": 0},
			"value_type": "float",
			"row_fixed": {"index": 1, "values": ["id"], "span": {"start": 1}}
		}
	}`
	assert.NoError(t, Validate(Profile, []byte(doc)))
}

func TestValidate_ProfileErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", `{"colour": "red"}`},
		{"bad size", `{"base": {"max_size": "1G"}}`},
		{"bad value type", `{"content": {"value_type": "complex"}}`},
		{"bad selection", `{"content": {"row_content": {"targets": "first"}}}`},
		{"zero index", `{"content": {"col_fixed": {"index": 0, "values": []}}}`},
		{"bad language", `{"language": "FR"}`},
		{"zero row max", `{"content": {"rows": {"max": 0}}}`},
		{"zero length max", `{"content": {"row_content": {"enabled": true, "length": {"max": 0}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Profile, []byte(tt.doc))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidate_Report(t *testing.T) {
	doc := `{
		"run_id": "550e8400-e29b-41d4-a716-446655440000",
		"language": "EN",
		"total": 1,
		"failed": 1,
		"reports": [{
			"file": "expr.txt",
			"passed": false,
			"stage": "dimensions",
			"messages": [{"kind": "structural", "check": "file.row_count", "text": "wrong rows"}]
		}]
	}`
	assert.NoError(t, Validate(Report, []byte(doc)))

	err := Validate(Report, []byte(`{"run_id": "x", "language": "EN", "total": 0, "failed": 0, "reports": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run_id")
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sep": ","}`), 0644))

	assert.NoError(t, ValidateFile(Profile, path))

	err := ValidateFile(Profile, filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["a"], "properties": {"a": {"type": "integer"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"a": 1}`))

	err := ValidateJSONString(schema, `{"a": "x"}`)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "a", validationErr.Errors[0].Field)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
