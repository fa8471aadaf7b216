package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/santaclaude2025/tgstats/pkg/logger"
)

func TestLogFiles_FindsRotatedBackups(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(logger.LogDirEnv, dir)

	rotator := &lumberjack.Logger{
		Filename:  filepath.Join(dir, logger.FileName),
		MaxSize:   1,
		LocalTime: true,
	}
	chunk := []byte(strings.Repeat("A", 1024))
	for i := 0; i <= 1024; i++ {
		if _, err := rotator.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	rotator.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	files, err := logFiles()
	if err != nil {
		t.Fatalf("logFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("logFiles = %v, want current log and one backup", files)
	}
	for _, f := range files {
		if filepath.Base(f) == "notes.txt" {
			t.Errorf("unrelated file listed: %s", f)
		}
	}
}

func TestLogsClear_KeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(logger.LogDirEnv, dir)

	current := filepath.Join(dir, logger.FileName)
	backup := filepath.Join(dir, "tgstats-2026-01-02T03-04-05.000.log.gz")
	for _, p := range []string{current, backup} {
		if err := os.WriteFile(p, []byte("log"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	logsClearCmd.SetOut(&out)
	defer logsClearCmd.SetOut(nil)

	if err := logsClearCmd.RunE(logsClearCmd, nil); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if _, err := os.Stat(current); err != nil {
		t.Errorf("current log removed: %v", err)
	}
	if _, err := os.Stat(backup); !os.IsNotExist(err) {
		t.Errorf("backup still exists: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted 1 old log file(s)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
