package schemareader

import (
	"bufio"
	"io"
	"strings"
)

// ReadTables scans a dump and returns the tables of its COPY blocks, in dump order, with their data row count
func ReadTables(dump io.Reader) ([]Table, error) {
	reader := bufio.NewReader(dump)

	result := make([]Table, 0)
	inBlock := false
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if inBlock {
				if IsTerminator(line) {
					inBlock = false
				} else {
					result[len(result)-1].Rows++
				}
			} else if table, ok := ParseCopyHeader(line); ok {
				result = append(result, table)
				inBlock = true
			}
		}
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return result, err
		}
	}
}

// IsTerminator reports whether the line closes a COPY block
func IsTerminator(line string) bool {
	return strings.TrimSpace(line) == Terminator
}
