package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerCloseKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hanoi.log")
	old := flagLogFile
	flagLogFile = path
	t.Cleanup(func() { flagLogFile = old })

	logger, closeLog := newLogger()
	logger.Error("game ended with error", "error", "terminal too small")
	closeLog()
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "game ended with error") {
		t.Errorf("log file = %q, expected the error entry", data)
	}
}
