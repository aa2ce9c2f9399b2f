// Package relgraph builds a directed relationship graph over a schema
// snapshot and finds join paths through it.
//
// Edges come from two sources: foreign keys declared in the snapshot, and
// a naming-convention heuristic that treats a column named "<table>_id" as
// a probable reference to <table>.id when such a table exists.
package relgraph

import (
	"strings"

	"github.com/leapstack-labs/sqljudge/internal/schema"
)

// EdgeKind distinguishes declared relationships from inferred ones.
type EdgeKind string

const (
	// KindExplicitForeignKey marks an edge backed by a declared foreign key.
	KindExplicitForeignKey EdgeKind = "explicit_foreign_key"
	// KindInferredNaming marks an edge inferred from a "<table>_id" column.
	KindInferredNaming EdgeKind = "inferred_naming_convention"
)

// Edge is one directed relationship: FromTable.JoinColumn references
// ToTable.ReferencedColumn.
type Edge struct {
	FromTable        string   `json:"from_table"`
	ToTable          string   `json:"to_table"`
	Kind             EdgeKind `json:"kind"`
	JoinColumn       string   `json:"join_column"`
	ReferencedColumn string   `json:"referenced_column"`
}

// Graph holds the relationship edges for a snapshot. Tables keep their
// snapshot order; edges per table keep discovery order (declared foreign
// keys first, then inferred edges in column order).
type Graph struct {
	tables []string
	edges  map[string][]Edge
}

// Build constructs the relationship graph for a snapshot.
//
// For every table it first emits one edge per declared foreign key, then
// walks the columns looking for the "_id" suffix (matched without regard
// to case). A column whose prefix names an existing table, and which is
// not already covered by a declared foreign key, yields an inferred edge
// with ReferencedColumn fixed as "id". Table existence is exact-string,
// consistent with schema.Snapshot matching.
func Build(snap *schema.Snapshot) *Graph {
	g := &Graph{edges: make(map[string][]Edge)}
	if snap == nil {
		return g
	}

	for i := range snap.Tables {
		table := &snap.Tables[i]
		g.tables = append(g.tables, table.Name)
		g.edges[table.Name] = []Edge{}

		for _, fk := range table.ForeignKeys {
			if fk.ReferencesTable == "" {
				continue
			}
			g.edges[table.Name] = append(g.edges[table.Name], Edge{
				FromTable:        table.Name,
				ToTable:          fk.ReferencesTable,
				Kind:             KindExplicitForeignKey,
				JoinColumn:       fk.ColumnName,
				ReferencedColumn: fk.ReferencesColumn,
			})
		}

		for _, col := range table.Columns {
			name := strings.ToLower(col.Name)
			if !strings.HasSuffix(name, "_id") || coveredByForeignKey(table, name) {
				continue
			}
			candidate := strings.TrimSuffix(name, "_id")
			if !snap.HasTable(candidate) {
				continue
			}
			g.edges[table.Name] = append(g.edges[table.Name], Edge{
				FromTable:        table.Name,
				ToTable:          candidate,
				Kind:             KindInferredNaming,
				JoinColumn:       name,
				ReferencedColumn: "id",
			})
		}
	}

	return g
}

func coveredByForeignKey(table *schema.Table, column string) bool {
	for _, fk := range table.ForeignKeys {
		if strings.EqualFold(fk.ColumnName, column) {
			return true
		}
	}
	return false
}

// Tables returns the graph's table names in snapshot order.
func (g *Graph) Tables() []string {
	return g.tables
}

// Edges returns the outgoing edges of a table, nil if the table is
// unknown.
func (g *Graph) Edges(table string) []Edge {
	return g.edges[table]
}

// HasTable reports whether the graph knows the named table.
func (g *Graph) HasTable(table string) bool {
	_, ok := g.edges[table]
	return ok
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.edges {
		n += len(edges)
	}
	return n
}
