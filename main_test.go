package main

import (
	"os"
	"testing"
)

func TestAppPrintsVersion(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{origArgs[0], "--version"}

	// exits the test binary on failure
	main()
}
