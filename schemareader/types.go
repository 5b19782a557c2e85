package schemareader

const publicSchema = "public"

// Table represents a table whose data is loaded by a COPY block of the dump
type Table struct {
	Schema  string
	Name    string
	Columns []string
	Rows    int
}

// Key is the name used to report the table: schema qualified unless it lives in public
func (t Table) Key() string {
	if t.Schema == "" || t.Schema == publicSchema {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ColumnIndex returns the position of the column in the COPY column list, or -1
func (t Table) ColumnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}
