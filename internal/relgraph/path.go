package relgraph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoGraph is returned when a path query runs against a nil graph.
var ErrNoGraph = errors.New("relationship graph not built")

// Join is one rendered step of a join path: join RightTable onto the
// running query, matching LeftTable.LeftColumn to RightTable.RightColumn.
type Join struct {
	LeftTable   string `json:"left_table"`
	RightTable  string `json:"right_table"`
	LeftColumn  string `json:"left_column"`
	RightColumn string `json:"right_column"`
	JoinType    string `json:"join_type"`
}

// JoinPath is one way to get from a source table to a target table.
// A zero-length path means source and target are the same table.
type JoinPath struct {
	PathLength int    `json:"path_length"`
	Joins      []Join `json:"joins"`
}

// FindPaths searches the graph for join paths from source to target using
// breadth-first traversal. Each table is expanded at most once, so the
// result holds at most one path, and it is a shortest one. An unreachable
// target yields an empty (non-nil) slice.
func (g *Graph) FindPaths(source, target string) ([]JoinPath, error) {
	if g == nil {
		return nil, ErrNoGraph
	}

	type queueItem struct {
		table string
		path  []Edge
	}

	visited := make(map[string]bool)
	queue := []queueItem{{table: source}}
	var found [][]Edge

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if visited[item.table] {
			continue
		}
		visited[item.table] = true

		if item.table == target {
			found = append(found, item.path)
			continue
		}

		for _, edge := range g.edges[item.table] {
			next := make([]Edge, len(item.path), len(item.path)+1)
			copy(next, item.path)
			queue = append(queue, queueItem{table: edge.ToTable, path: append(next, edge)})
		}
	}

	paths := make([]JoinPath, 0, len(found))
	for _, edges := range found {
		joins := make([]Join, 0, len(edges))
		prev := source
		for _, edge := range edges {
			joins = append(joins, Join{
				LeftTable:   prev,
				RightTable:  edge.ToTable,
				LeftColumn:  edge.JoinColumn,
				RightColumn: edge.ReferencedColumn,
				JoinType:    "INNER JOIN",
			})
			prev = edge.ToTable
		}
		paths = append(paths, JoinPath{PathLength: len(edges), Joins: joins})
	}

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].PathLength < paths[j].PathLength
	})
	return paths, nil
}

// RenderJoins formats a join path as SQL JOIN fragments, one per line.
func (p JoinPath) RenderJoins() string {
	var b strings.Builder
	for _, join := range p.Joins {
		fmt.Fprintf(&b, "%s %s ON %s.%s = %s.%s\n",
			join.JoinType, join.RightTable,
			join.LeftTable, join.LeftColumn,
			join.RightTable, join.RightColumn)
	}
	return b.String()
}
