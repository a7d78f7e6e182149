package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/paragon/internal/domain/model"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// save writes companies to filename as a JSON array of wire objects.
func save(filename string, companies []model.Company) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	wire := make([]model.CompanyWire, len(companies))
	for i, c := range companies {
		wire[i] = c.ToWire()
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal companies: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
