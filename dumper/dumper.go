// SPDX-FileCopyrightText: 2026 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package dumper

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/uyuni-project/dump-extract/schemareader"
)

const (
	// EmbeddingColumn is the column stripped by default
	EmbeddingColumn = "embedding"
	// SummaryHeader opens the comment block appended at the end of every extract
	SummaryHeader = "-- === EXTRACTION SUMMARY ==="

	megabyte         = 1024 * 1024
	readerBufferSize = 65536
)

type extractor struct {
	options Options
	out     *dataWriter
	stats   TableStats
	block   *copyBlock

	limitReached  bool
	limitedTables []string
	droppedRows   int

	// annotations written by a previous run are regenerated, not duplicated
	lastClosed    string
	skipBlankLine bool
	pendingBlanks []string
	// lines of a possible earlier summary, dropped only if they run to the end of the dump
	oldSummary   []string
	inOldSummary bool
}

// Extract copies the dump read from input to output. Lines outside COPY blocks are
// written unchanged; COPY data rows are capped per table, optionally stripped of one
// column and dropped altogether once the output grows past options.TargetSize.
// A summary comment block is appended at the end.
// Invalid UTF-8 bytes are removed from the input.
func Extract(input io.Reader, output io.Writer, options Options) (Result, error) {
	e := &extractor{
		options: options,
		out:     newDataWriter(output),
		stats:   make(TableStats),
	}
	reader := bufio.NewReaderSize(input, readerBufferSize)
	for {
		line, readErr := reader.ReadString('\n')
		if line = strings.ToValidUTF8(line, ""); len(line) > 0 {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			if err := e.processLine(line); err != nil {
				return e.result(), fmt.Errorf("failed to write extract: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return e.result(), fmt.Errorf("failed to read dump: %w", readErr)
		}
	}
	if err := e.finish(); err != nil {
		return e.result(), fmt.Errorf("failed to write extract: %w", err)
	}
	return e.result(), nil
}

func (e *extractor) result() Result {
	return Result{
		Stats:         e.stats,
		BytesWritten:  e.out.Written(),
		LimitReached:  e.limitReached,
		LimitedTables: e.limitedTables,
		DroppedRows:   e.droppedRows,
	}
}

func (e *extractor) processLine(line string) error {
	if e.block != nil {
		return e.processBlockLine(line)
	}
	return e.processOutsideLine(line)
}

func (e *extractor) processOutsideLine(line string) error {
	if e.inOldSummary {
		if isBlank(line) || strings.HasPrefix(line, "--") {
			e.oldSummary = append(e.oldSummary, line)
			return nil
		}
		if err := e.restoreOldSummary(); err != nil {
			return err
		}
	}
	if e.lastClosed != "" {
		closed := e.lastClosed
		e.lastClosed = ""
		if isAnnotation(line, closed) {
			e.skipBlankLine = true
			return nil
		}
	}
	if e.skipBlankLine {
		e.skipBlankLine = false
		if isBlank(line) {
			return nil
		}
	}
	if isBlank(line) {
		e.pendingBlanks = append(e.pendingBlanks, line)
		return nil
	}
	if trimLineEnding(line) == SummaryHeader {
		// the summary starts with two blank lines of its own
		keep := len(e.pendingBlanks) - 2
		if keep < 0 {
			keep = 0
		}
		e.oldSummary = append(e.oldSummary, e.pendingBlanks[keep:]...)
		e.oldSummary = append(e.oldSummary, line)
		e.pendingBlanks = e.pendingBlanks[:keep]
		e.inOldSummary = true
		return e.flushPendingBlanks()
	}
	if err := e.flushPendingBlanks(); err != nil {
		return err
	}

	if table, ok := schemareader.ParseCopyHeader(line); ok {
		e.openBlock(table)
	}
	return e.out.WriteString(line)
}

func (e *extractor) openBlock(table schemareader.Table) {
	stripIndex := -1
	if e.options.StripColumn != "" {
		stripIndex = table.ColumnIndex(e.options.StripColumn)
	}
	e.block = &copyBlock{
		table:      table,
		stripIndex: stripIndex,
		limited:    e.limitReached,
	}
	e.stats[table.Key()] = 0
	log.Debug().Str("table", table.Key()).Int("columns", len(table.Columns)).Msg("COPY block started")
}

func (e *extractor) processBlockLine(line string) error {
	block := e.block
	if schemareader.IsTerminator(line) {
		return e.closeBlock(line)
	}

	if e.options.MaxRows > 0 && block.rows >= e.options.MaxRows {
		e.droppedRows++
		return nil
	}
	if e.options.TargetSize > 0 && !block.limited && e.out.Written() > e.options.TargetSize {
		e.exhaustBudget(block)
	}
	if block.limited {
		e.droppedRows++
		return nil
	}

	if block.stripIndex >= 0 {
		line = replaceField(line, block.stripIndex, schemareader.NullMarker)
	}
	if err := e.out.WriteString(line); err != nil {
		return err
	}
	block.rows++
	e.stats[block.table.Key()] = block.rows
	return nil
}

func (e *extractor) exhaustBudget(block *copyBlock) {
	if !e.limitReached {
		log.Warn().
			Str("table", block.table.Key()).
			Int64("written", e.out.Written()).
			Int64("target", e.options.TargetSize).
			Msg("Size limit reached, dropping remaining data rows")
	}
	e.limitReached = true
	block.limited = true
}

func (e *extractor) closeBlock(line string) error {
	block := e.block
	key := block.table.Key()
	if err := e.out.WriteString(line); err != nil {
		return err
	}
	if err := e.out.WriteString(e.annotation(block) + "\n\n"); err != nil {
		return err
	}
	if block.limited {
		e.limitedTables = append(e.limitedTables, key)
	}
	log.Debug().Str("table", key).Int("rows", block.rows).Bool("limited", block.limited).Msg("COPY block done")

	e.lastClosed = key
	e.block = nil
	return nil
}

func (e *extractor) annotation(block *copyBlock) string {
	notes := make([]string, 0, 2)
	if e.options.StripColumn == EmbeddingColumn {
		notes = append(notes, "embeddings removed")
	} else if e.options.StripColumn != "" {
		notes = append(notes, e.options.StripColumn+" removed")
	}
	if block.limited {
		notes = append(notes, "size limit reached")
	}
	annotation := fmt.Sprintf("-- %s: %d rows", block.table.Key(), block.rows)
	if len(notes) > 0 {
		annotation += " (" + strings.Join(notes, ", ") + ")"
	}
	return annotation
}

// restoreOldSummary writes back the lines taken for an earlier summary once the dump goes on after them
func (e *extractor) restoreOldSummary() error {
	log.Debug().Int("lines", len(e.oldSummary)).Msg("Summary header followed by dump content, keeping it")
	for _, line := range e.oldSummary {
		if err := e.out.WriteString(line); err != nil {
			return err
		}
	}
	e.oldSummary = nil
	e.inOldSummary = false
	return nil
}

func (e *extractor) flushPendingBlanks() error {
	for _, blank := range e.pendingBlanks {
		if err := e.out.WriteString(blank); err != nil {
			return err
		}
	}
	e.pendingBlanks = e.pendingBlanks[:0]
	return nil
}

func (e *extractor) finish() error {
	if err := e.flushPendingBlanks(); err != nil {
		return err
	}
	if e.block != nil {
		log.Warn().Str("table", e.block.table.Key()).Msg("Dump ended inside a COPY block")
		e.block = nil
	}
	if err := e.out.WriteString(e.summary()); err != nil {
		return err
	}
	return e.out.Flush()
}

func (e *extractor) summary() string {
	var sb strings.Builder
	sb.WriteString("\n\n" + SummaryHeader + "\n")
	if e.options.TargetSize > 0 {
		sb.WriteString(fmt.Sprintf("-- Approximate output size: %.2f MB (target: %s MB)\n",
			float64(e.out.Written())/megabyte,
			strconv.FormatFloat(float64(e.options.TargetSize)/megabyte, 'f', -1, 64)))
	}
	sb.WriteString(fmt.Sprintf("-- Tables processed: %d\n", len(e.stats)))
	for _, table := range e.stats.SortedNames() {
		sb.WriteString(fmt.Sprintf("--   %s: %d rows\n", table, e.stats[table]))
	}
	switch e.options.StripColumn {
	case "":
	case EmbeddingColumn:
		sb.WriteString("-- Embedding columns replaced with NULL to reduce file size\n")
	default:
		sb.WriteString(fmt.Sprintf("-- Column %s replaced with NULL to reduce file size\n", e.options.StripColumn))
	}
	if e.options.TargetSize > 0 {
		if e.options.StripColumn == "" {
			sb.WriteString("-- Embeddings retained; data rows dropped once the size target was reached\n")
		} else {
			sb.WriteString("-- Data rows dropped once the size target was reached\n")
		}
	}
	return sb.String()
}

// replaceField overwrites the index-th tab separated field of a data row, keeping its line ending
func replaceField(line string, index int, value string) string {
	body := trimLineEnding(line)
	fields := strings.Split(body, schemareader.FieldSeparator)
	if index >= len(fields) {
		return line
	}
	fields[index] = value
	return strings.Join(fields, schemareader.FieldSeparator) + line[len(body):]
}

func trimLineEnding(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func isBlank(line string) bool {
	return trimLineEnding(line) == ""
}

// isAnnotation reports whether line is exactly the row count comment written after the table's terminator
func isAnnotation(line string, table string) bool {
	comment := trimLineEnding(line)
	prefix := "-- " + table + ": "
	if !strings.HasPrefix(comment, prefix) {
		return false
	}
	comment = comment[len(prefix):]

	digits := 0
	for digits < len(comment) && comment[digits] >= '0' && comment[digits] <= '9' {
		digits++
	}
	if digits == 0 || !strings.HasPrefix(comment[digits:], " rows") {
		return false
	}
	comment = comment[digits+len(" rows"):]
	if comment == "" {
		return true
	}
	if !strings.HasPrefix(comment, " (") || !strings.HasSuffix(comment, ")") {
		return false
	}
	for _, note := range strings.Split(comment[2:len(comment)-1], ", ") {
		if !isAnnotationNote(note) {
			return false
		}
	}
	return true
}

func isAnnotationNote(note string) bool {
	if note == "size limit reached" {
		return true
	}
	column := strings.TrimSuffix(note, " removed")
	return column != note && column != "" && !strings.ContainsAny(column, " ()")
}
