package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInit_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spendora.log")
	if err := Init("debug", path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Set(nil) })

	Get().Info("ledger opened", zap.String("key", "dailyLogs"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"message":"ledger opened"`, `"timestamp"`, `"key":"dailyLogs"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %s", line, want)
		}
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New("shouting", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Error("debug enabled, want info level")
	}
	if !l.Core().Enabled(zap.InfoLevel) {
		t.Error("info disabled")
	}
}

func TestDefaultLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	if got := DefaultLevel(); got != "warn" {
		t.Errorf("DefaultLevel = %q, want warn", got)
	}
}
