// Package schema defines the database schema snapshot consumed by the
// relationship graph builder and the adapters that produce it.
//
// A snapshot is an immutable value: it is built (or loaded) once, handed
// to readers, and rebuilt wholesale when the underlying schema changes.
// Nothing in this package mutates a snapshot after construction.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Column is one column of a table.
type Column struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// ForeignKey is one declared foreign key constraint, directed from the
// owning table to the table it references.
type ForeignKey struct {
	ColumnName       string `yaml:"column_name" json:"column_name"`
	ReferencesTable  string `yaml:"references_table" json:"references_table"`
	ReferencesColumn string `yaml:"references_column" json:"references_column"`
}

// Table is one table's schema: columns, primary keys and foreign keys,
// all in declaration order.
type Table struct {
	Name        string       `yaml:"name" json:"name"`
	Columns     []Column     `yaml:"columns" json:"columns"`
	PrimaryKeys []string     `yaml:"primary_keys,omitempty" json:"primary_keys,omitempty"`
	ForeignKeys []ForeignKey `yaml:"foreign_keys,omitempty" json:"foreign_keys,omitempty"`
}

// IsPrimaryKey reports whether the named column is part of the table's
// primary key.
func (t *Table) IsPrimaryKey(column string) bool {
	for _, pk := range t.PrimaryKeys {
		if pk == column {
			return true
		}
	}
	return false
}

// Snapshot is a point-in-time view of a database schema. Table order is
// preserved from the source (declaration order for files, discovery order
// for live extraction).
//
// Table-name matching throughout sqljudge is exact-string: if a caller
// wants case-insensitive behavior it must normalize names consistently
// before building snapshots and before querying paths.
type Snapshot struct {
	Database string  `yaml:"database,omitempty" json:"database,omitempty"`
	Schema   string  `yaml:"schema,omitempty" json:"schema,omitempty"`
	Tables   []Table `yaml:"tables" json:"tables"`
}

// Table returns the named table, if present.
func (s *Snapshot) Table(name string) (*Table, bool) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// HasTable reports whether the snapshot contains the named table.
func (s *Snapshot) HasTable(name string) bool {
	_, ok := s.Table(name)
	return ok
}

// Load parses a snapshot from YAML (or JSON, which YAML subsumes).
func Load(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse schema snapshot: %w", err)
	}
	return &snap, nil
}

// LoadFile reads and parses a snapshot file.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema snapshot: %w", err)
	}
	snap, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}
