// Package eval runs batch evaluations of predicted SQL against reference
// SQL and aggregates the per-case comparison reports.
package eval

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is one evaluation example: a predicted statement to score against
// its reference. Question is informational and may be empty.
type Case struct {
	ID        string `yaml:"id,omitempty" json:"id,omitempty"`
	Question  string `yaml:"question,omitempty" json:"question,omitempty"`
	Predicted string `yaml:"predicted" json:"predicted"`
	Reference string `yaml:"reference" json:"reference"`
}

// Dataset is an ordered list of evaluation cases.
type Dataset struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Cases []Case `yaml:"cases" json:"cases"`
}

// LoadDataset parses a dataset from YAML (or JSON, which YAML subsumes).
func LoadDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	for i := range ds.Cases {
		if strings.TrimSpace(ds.Cases[i].Reference) == "" {
			return nil, fmt.Errorf("case %d: reference SQL is required", i)
		}
	}
	return &ds, nil
}

// LoadDatasetFile reads and parses a dataset file.
func LoadDatasetFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := LoadDataset(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
