/*
NAME
  helpers_test.go

DESCRIPTION
  helpers_test.go provides small filesystem fixtures shared by the
  convert package's tests.

LICENSE
  Copyright (C) 2026 the ply2splat authors. All Rights Reserved.
*/

package convert

import (
	"os"
	"testing"
)

// createTempFile writes data to a new temporary file and returns its
// path; the file is removed when the test completes.
func createTempFile(t *testing.T, data []byte) (string, error) {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "ply2splat-*.bin")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", err
	}
	return f.Name(), nil
}
