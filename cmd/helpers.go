package cmd

import (
	"fmt"
	"strings"

	"github.com/cliniform/bpvar-cli/internal/dataset"
)

// loadOptions merges config defaults with per-command load flags into the
// options handed to the dataset loaders.
func loadOptions(delimiter, decimal, thousands, sheetName string, sheetIndex, maxRows int) (dataset.Options, error) {
	c := effectiveConfig()
	opt := dataset.DefaultOptions()
	if c.MaxRows > 0 {
		opt.MaxRows = c.MaxRows
	}
	if maxRows > 0 {
		opt.MaxRows = maxRows
	}

	if delimiter != "" {
		switch delimiter {
		case ",":
			opt.Delimiter = ','
		case "\t", "tab":
			opt.Delimiter = '\t'
		case ";":
			opt.Delimiter = ';'
		default:
			return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
		}
	}

	if decimal == "" {
		decimal = c.DecimalSeparator
	}
	switch strings.ToLower(strings.TrimSpace(decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", decimal)
	}

	if thousands == "" {
		thousands = c.ThousandsSeparator
	}
	switch strings.ToLower(strings.TrimSpace(thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thousands)
	}

	opt.SheetName = sheetName
	if sheetIndex > 0 {
		opt.SheetIndex = sheetIndex
	}
	return opt, nil
}
