// SPDX-FileCopyrightText: 2026 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package schemareader

const (
	// CopyKeyword starts every COPY header line, matched case-insensitively
	CopyKeyword = "COPY"

	// Terminator ends the data of a COPY block
	Terminator = `\.`

	// NullMarker is the NULL representation of the dump text format
	NullMarker = `\N`

	// FieldSeparator is the default column delimiter of COPY data rows
	FieldSeparator = "\t"
)
