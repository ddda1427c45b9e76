package schema

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cliniform/bpvar-cli/internal/utils"
)

// MappingFile is the on-disk form of a confirmed column mapping. Users save a
// detected mapping, edit roles by hand, and feed it back to normalization.
type MappingFile struct {
	Columns []Mapping `yaml:"columns" validate:"required,min=1,dive"`
}

var mappingValidate = validator.New()

// SaveMapping writes a mapping to a YAML file via atomic rename.
func SaveMapping(path string, mappings []Mapping) error {
	b, err := yaml.Marshal(MappingFile{Columns: mappings})
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	return utils.SafeWriteFile(path, b)
}

// LoadMapping reads and validates a hand-edited mapping file. Unknown role
// names fail at parse time; structural problems fail validation.
func LoadMapping(path string) ([]Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var f MappingFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}
	if err := mappingValidate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid mapping file: %w", err)
	}
	return f.Columns, nil
}
