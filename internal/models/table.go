package models

import "strconv"

// Table is a physical table identity. Orders are keyed by table, at most one open
// order per table at a time.
type Table struct {
	ID string `json:"id"`
}

// DefaultTables returns the seed floor plan: tables "1" through "15".
func DefaultTables() []Table {
	tables := make([]Table, 0, 15)
	for i := 1; i <= 15; i++ {
		tables = append(tables, Table{ID: strconv.Itoa(i)})
	}
	return tables
}
