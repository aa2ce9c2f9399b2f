package schema

import (
	"fmt"
	"strings"
)

// Format renders a snapshot as plain text suitable for inclusion in a
// language-model prompt: tables, columns with primary-key markers, and
// declared foreign keys.
func (s *Snapshot) Format() string {
	var b strings.Builder

	b.WriteString("# DATABASE SCHEMA INFORMATION\n\n")

	if s.Database != "" {
		fmt.Fprintf(&b, "Database: %s\n", s.Database)
	}
	if s.Schema != "" {
		fmt.Fprintf(&b, "Schema: %s\n", s.Schema)
	}
	if s.Database != "" || s.Schema != "" {
		b.WriteString("\n")
	}

	for i := range s.Tables {
		table := &s.Tables[i]
		fmt.Fprintf(&b, "## Table: %s\n\n", table.Name)

		b.WriteString("Columns:\n")
		for _, col := range table.Columns {
			marker := ""
			if table.IsPrimaryKey(col.Name) {
				marker = " (Primary Key)"
			}
			fmt.Fprintf(&b, "- %s (%s)%s\n", col.Name, col.Type, marker)
		}

		if len(table.ForeignKeys) > 0 {
			b.WriteString("\nForeign Keys:\n")
			for _, fk := range table.ForeignKeys {
				fmt.Fprintf(&b, "- %s references %s.%s\n",
					fk.ColumnName, fk.ReferencesTable, fk.ReferencesColumn)
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}
