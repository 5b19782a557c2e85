// SPDX-FileCopyrightText: 2026 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package schemareader

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseCopyHeader recognizes a single-line COPY header such as
//
//	COPY public.pets (id, name, embedding) FROM stdin;
//
// The keyword must start the line. The table name has one or two dot separated
// identifiers and the column list must be closed on the same line; identifiers
// are either plain words or double quoted with "" as escape. Whatever follows the
// column list is not inspected. Lines outside these bounds are not headers.
func ParseCopyHeader(line string) (Table, bool) {
	if len(line) < len(CopyKeyword) || !strings.EqualFold(line[:len(CopyKeyword)], CopyKeyword) {
		return Table{}, false
	}
	s := headerScanner{input: line, pos: len(CopyKeyword)}
	if s.skipSpaces() == 0 {
		return Table{}, false
	}

	names, ok := s.qualifiedName()
	if !ok || len(names) > 2 {
		return Table{}, false
	}
	table := Table{Name: names[len(names)-1]}
	if len(names) == 2 {
		table.Schema = names[0]
	}

	s.skipSpaces()
	if !s.consume('(') {
		return Table{}, false
	}
	for {
		s.skipSpaces()
		column, ok := s.identifier()
		if !ok {
			return Table{}, false
		}
		table.Columns = append(table.Columns, column)
		s.skipSpaces()
		if s.consume(')') {
			return table, true
		}
		if !s.consume(',') {
			return Table{}, false
		}
	}
}

type headerScanner struct {
	input string
	pos   int
}

func (s *headerScanner) peek() (rune, int) {
	if s.pos >= len(s.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.input[s.pos:])
}

func (s *headerScanner) consume(expected rune) bool {
	r, size := s.peek()
	if size == 0 || r != expected {
		return false
	}
	s.pos += size
	return true
}

// skipSpaces stops at line endings so that a header never spans lines
func (s *headerScanner) skipSpaces() int {
	skipped := 0
	for {
		r, size := s.peek()
		if size == 0 || (r != ' ' && r != '\t') {
			return skipped
		}
		s.pos += size
		skipped++
	}
}

func (s *headerScanner) qualifiedName() ([]string, bool) {
	names := make([]string, 0, 2)
	for {
		name, ok := s.identifier()
		if !ok {
			return nil, false
		}
		names = append(names, name)
		if !s.consume('.') {
			return names, true
		}
	}
}

func (s *headerScanner) identifier() (string, bool) {
	r, size := s.peek()
	if size == 0 {
		return "", false
	}
	if r == '"' {
		return s.quotedIdentifier()
	}
	start := s.pos
	for {
		r, size = s.peek()
		if size == 0 || !isIdentifierRune(r) {
			break
		}
		s.pos += size
	}
	if s.pos == start {
		return "", false
	}
	return s.input[start:s.pos], true
}

func (s *headerScanner) quotedIdentifier() (string, bool) {
	s.pos++
	var result strings.Builder
	for s.pos < len(s.input) {
		r, size := s.peek()
		s.pos += size
		switch r {
		case '"':
			if !s.consume('"') {
				return result.String(), result.Len() > 0
			}
			result.WriteRune('"')
		case '\n', '\r':
			return "", false
		default:
			result.WriteRune(r)
		}
	}
	return "", false
}

func isIdentifierRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
