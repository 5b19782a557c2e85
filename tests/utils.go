package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTempFile writes content to a new file in the test temp folder and returns its path
func CreateTempFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "dump-*.sql")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("failed to write to temp file: %v", err)
	}
	return f.Name()
}

// ReadFile returns the content of a file created during a test
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", filepath.Base(path), err)
	}
	return string(data)
}

// DumpBuilder assembles a dump in the pg_dump plain text layout
type DumpBuilder struct {
	sb strings.Builder
}

// Schema appends lines outside any COPY block
func (b *DumpBuilder) Schema(lines ...string) *DumpBuilder {
	for _, line := range lines {
		b.sb.WriteString(line + "\n")
	}
	return b
}

// Copy appends a COPY block for table with numRows rows produced by row
func (b *DumpBuilder) Copy(table string, columns []string, numRows int, row func(i int) []string) *DumpBuilder {
	b.sb.WriteString(fmt.Sprintf("COPY %s (%s) FROM stdin;\n", table, strings.Join(columns, ", ")))
	for i := 0; i < numRows; i++ {
		b.sb.WriteString(strings.Join(row(i), "\t") + "\n")
	}
	b.sb.WriteString("\\.\n")
	return b
}

func (b *DumpBuilder) String() string {
	return b.sb.String()
}

// Lines splits text into lines without line endings
func Lines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// MockWriter records every write, so tests can check how output was chunked
type MockWriter struct {
	data []string
}

func (mw *MockWriter) Write(p []byte) (n int, err error) {
	mw.data = append(mw.data, string(p))
	return len(p), nil
}

func (mw *MockWriter) GetData() []string {
	return mw.data
}

// String returns everything written so far
func (mw *MockWriter) String() string {
	return strings.Join(mw.data, "")
}
