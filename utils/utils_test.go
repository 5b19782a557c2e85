// SPDX-FileCopyrightText: 2023 SUSE LLC
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/uyuni-project/dump-extract/tests"
)

func TestGetAbsPath(t *testing.T) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cases := []struct {
		path     string
		expected string
	}{
		{"/tmp/../tmp/dump.sql", "/tmp/dump.sql"},
		{"~/dumps/dump.sql", filepath.Join(homedir, "dumps/dump.sql")},
		{"dump.sql", "dump.sql"},
	}
	for _, test := range cases {
		if result := GetAbsPath(test.path); result != test.expected {
			t.Errorf("GetAbsPath(%s) = %s; expected %s", test.path, result, test.expected)
		}
	}
}

func TestFolderExists(t *testing.T) {
	dir := t.TempDir()
	if err := FolderExists(dir); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := FolderExists(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("expected a not exist error, got %v", err)
	}
	file := tests.CreateTempFile(t, "content")
	if err := FolderExists(file); err == nil {
		t.Errorf("expected error for a regular file")
	}
}

func TestValidateExistingFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := ValidateExistingFolder(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := FolderExists(dir); err != nil {
		t.Errorf("folder was not created: %v", err)
	}
	file := tests.CreateTempFile(t, "content")
	if err := ValidateExistingFolder(file); err == nil {
		t.Errorf("expected error for a regular file")
	}
}
