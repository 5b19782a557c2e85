package schemareader

import (
	"fmt"
	"io"
)

// DumpToGraphviz outputs a dot representation of the tables found in a dump. Use:
// dump-extract dot --input dump.sql | dot -Tx11
// Columns named as highlightColumn are filled, so embedding columns stand out.
func DumpToGraphviz(w io.Writer, tables []Table, highlightColumn string) {
	fmt.Fprintf(w, "graph schema {\n")
	fmt.Fprintf(w, "  layout=fdp;\n")
	fmt.Fprintf(w, "  K=0.15;\n")
	fmt.Fprintf(w, "  maxiter=1000;\n")
	fmt.Fprintf(w, "  start=0;\n\n")

	for _, table := range tables {
		name := table.Key()
		fmt.Fprintf(w, "\"%s\" [shape=box xlabel=\"%d rows\"];\n", name, table.Rows)

		for _, column := range table.Columns {
			color := "transparent"
			if column == highlightColumn {
				color = "gainsboro"
			}
			fmt.Fprintf(w, "\"%s-%s\" [label=\"\" xlabel=\"%s\" style=filled fillcolor=\"%s\"];\n", name, column, column, color)
			fmt.Fprintf(w, "\"%s\" -- \"%s-%s\";\n", name, name, column)
		}
	}

	fmt.Fprintf(w, "}\n")
}
