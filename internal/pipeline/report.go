package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/tabcheck/internal/schemas"
	"github.com/jonathan/tabcheck/internal/types"
)

// EncodeReports marshals reports as indented JSON and checks the document
// against the report schema. On a schema mismatch the data is still
// returned alongside a *schemas.ValidationError.
func EncodeReports(r *types.Reports) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reports: %w", err)
	}
	if err := schemas.Validate(schemas.Report, data); err != nil {
		return data, err
	}
	return data, nil
}

// WriteReports writes the JSON report to path, creating its directory.
// A schema mismatch is returned after the file has been written.
func WriteReports(path string, r *types.Reports) error {
	data, schemaErr := EncodeReports(r)
	if data == nil {
		return schemaErr
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return schemaErr
}
