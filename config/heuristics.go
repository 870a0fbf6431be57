package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/Aashish23092/planilla-ledger/dto"
	"github.com/Aashish23092/planilla-ledger/utils"
)

// heuristicsFile mirrors utils.Heuristics in YAML. Omitted keys keep the
// base value.
type heuristicsFile struct {
	Markers            []string        `yaml:"markers"`
	MinCells           int             `yaml:"min_cells"`
	NumericPattern     string          `yaml:"numeric_pattern"`
	PlaceholderPattern string          `yaml:"placeholder_pattern"`
	CodePattern        string          `yaml:"code_pattern"`
	SequencePattern    string          `yaml:"sequence_pattern"`
	CodeSentinel       *string         `yaml:"code_sentinel"`
	DecimalSeparator   string          `yaml:"decimal_separator"`
	ThousandsSeparator string          `yaml:"thousands_separator"`
	Schema             []dto.FieldSpec `yaml:"schema"`
	EmptyTotals        *bool           `yaml:"empty_totals"`
}

// Heuristics resolves the pipeline heuristics for this configuration: the
// defaults, the strict row threshold and number format from the environment,
// then the YAML file when one is configured.
func (c *Config) Heuristics() (utils.Heuristics, error) {
	h := utils.DefaultHeuristics()
	if c.StrictRows {
		h = utils.StrictHeuristics()
	}
	if c.DecimalComma {
		h.Format = utils.CommaDecimal
	}
	if c.HeuristicsFile == "" {
		return h, nil
	}
	return LoadHeuristics(c.HeuristicsFile, h)
}

// LoadHeuristics reads a YAML heuristics file on top of base.
func LoadHeuristics(path string, base utils.Heuristics) (utils.Heuristics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read heuristics file: %w", err)
	}
	return ParseHeuristics(data, base)
}

// ParseHeuristics applies YAML heuristics on top of base.
func ParseHeuristics(data []byte, base utils.Heuristics) (utils.Heuristics, error) {
	var f heuristicsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("invalid heuristics yaml: %w", err)
	}

	h := base
	if f.Markers != nil {
		h.Markers = f.Markers
	}
	if f.MinCells > 0 {
		h.MinCells = f.MinCells
	}

	patterns := []struct {
		name string
		src  string
		dst  **regexp.Regexp
	}{
		{"numeric_pattern", f.NumericPattern, &h.NumericPattern},
		{"placeholder_pattern", f.PlaceholderPattern, &h.PlaceholderPattern},
		{"code_pattern", f.CodePattern, &h.CodePattern},
		{"sequence_pattern", f.SequencePattern, &h.SequencePattern},
	}
	for _, p := range patterns {
		if p.src == "" {
			continue
		}
		re, err := regexp.Compile(p.src)
		if err != nil {
			return base, fmt.Errorf("invalid %s: %w", p.name, err)
		}
		*p.dst = re
	}

	if f.CodeSentinel != nil {
		h.CodeSentinel = *f.CodeSentinel
	}

	if f.DecimalSeparator != "" {
		r, err := separator(f.DecimalSeparator)
		if err != nil {
			return base, fmt.Errorf("invalid decimal_separator: %w", err)
		}
		h.Format.Decimal = r
	}
	if f.ThousandsSeparator != "" {
		r, err := separator(f.ThousandsSeparator)
		if err != nil {
			return base, fmt.Errorf("invalid thousands_separator: %w", err)
		}
		h.Format.Thousands = r
	}
	if h.Format.Decimal == h.Format.Thousands {
		return base, errors.New("decimal and thousands separators must differ")
	}

	if len(f.Schema) > 0 {
		for i, spec := range f.Schema {
			if spec.Key == "" {
				return base, fmt.Errorf("schema field %d has no key", i+1)
			}
			if spec.Label == "" {
				f.Schema[i].Label = spec.Key
			}
		}
		h.Schema = f.Schema
	}

	if f.EmptyTotals != nil {
		h.EmptyTotals = *f.EmptyTotals
	}

	return h, nil
}

func separator(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
