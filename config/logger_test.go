package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestMinLevel(t *testing.T) {
	if l, ok := minLevel("debug"); !ok || l != zapcore.DebugLevel {
		t.Errorf("minLevel(debug) = %v, %v", l, ok)
	}
	if l, ok := minLevel("normal"); !ok || l != zapcore.InfoLevel {
		t.Errorf("minLevel(normal) = %v, %v", l, ok)
	}
	if _, ok := minLevel("none"); ok {
		t.Error("minLevel(none) should disable logging")
	}
}

func prepareFileLog(t *testing.T, format, level string) (*zap.Logger, string) {
	t.Helper()
	t.Cleanup(func() { debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dst := filepath.Join(t.TempDir(), "lbe.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: level, Destination: dst, Mode: "overwrite", Format: format},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return log, dst
}

func TestPrepare_JSONFile(t *testing.T) {
	log, dst := prepareFileLog(t, "json", "normal")
	log.Named("import").Info("Lesson imported", zap.String("id", "unit-1"))
	log.Debug("not written")
	_ = log.Sync()

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single record, got:\n%s", data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "Lesson imported" || rec["id"] != "unit-1" || !strings.HasSuffix(rec["logger"].(string), ".import") {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestPrepare_ConsoleFile(t *testing.T) {
	log, dst := prepareFileLog(t, "", "debug")
	log.Debug("Block moved", zap.Int("from", 0))
	_ = log.Sync()

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Block moved") || !strings.Contains(string(data), `{"from": 0}`) {
		t.Errorf("unexpected log:\n%s", data)
	}
}

func TestPrepare_Disabled(t *testing.T) {
	conf := LoggingConfig{ConsoleLogger: LoggerConfig{Level: "none"}, FileLogger: LoggerConfig{Level: "none"}}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logging should be disabled")
	}
}
