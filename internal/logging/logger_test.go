package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidaudit/internal/config"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer logger.Close()

	NewComponentLogger(logger.Logger, "audit").Info("batch finished", "files", 12, "note", "two words")
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, " INFO audit: batch finished files=12 note=\"two words\"") {
		t.Fatalf("unexpected console line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record leaked at info level: %q", out)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelDebug))

	logger.With("outer", 1).WithGroup("probe").With("inner", 2).Debug("msg", slog.Group("dv", "profile", 8))

	out := buf.String()
	for _, want := range []string{"outer=1", "probe.inner=2", "probe.dv.profile=8", " DEBUG msg"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestConsoleHandlerErrorValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo))
	logger.Error("probe failed", Error(errors.New("exit status 1")))
	if !strings.Contains(buf.String(), `error="exit status 1"`) {
		t.Fatalf("unexpected error rendering: %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "JSON", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("scan", "files", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if record["level"] != "debug" {
		t.Fatalf("level = %v, want debug", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if _, ok := record["time"]; ok {
		t.Fatalf("time key should be renamed, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewTeesIntoFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "vidaudit-2026-01-02.log")
	logger, err := New(Options{Level: "warn", Console: &console, FilePath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("file only")
	logger.Warn("both")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "file only") || !strings.Contains(string(data), "both") {
		t.Fatalf("file log missing records: %s", data)
	}
	if strings.Contains(console.String(), "file only") {
		t.Fatalf("console should stay at warn: %q", console.String())
	}
}

func TestNewFromConfigUsesDailyFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	var console bytes.Buffer
	logger, err := NewFromConfig(&cfg, &console)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello")
	logger.Close()

	if _, err := os.Stat(cfg.LogFilePath(time.Now())); err != nil {
		t.Fatalf("expected daily log file: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWarnWithContextFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newJSONHandler(&buf, slog.LevelDebug))

	WarnWithContext(logger, "probe failed; file skipped", "probe_failed", Path("/v/a.mov"), String(FieldImpact, "file excluded from tally"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[FieldEventType] != "probe_failed" {
		t.Fatalf("event_type = %v", record[FieldEventType])
	}
	if record[FieldErrorHint] != "check logs for details" {
		t.Fatalf("error_hint = %v", record[FieldErrorHint])
	}
	if record[FieldImpact] != "file excluded from tally" {
		t.Fatalf("impact overridden: %v", record[FieldImpact])
	}
	if record[FieldPath] != "/v/a.mov" {
		t.Fatalf("path = %v", record[FieldPath])
	}

	WarnWithContext(nil, "ignored", "noop")
	ErrorWithContext(nil, "ignored", "noop")
}

func TestWithContextAddsBatchID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(newJSONHandler(&buf, slog.LevelInfo))

	ctx := WithBatchID(context.Background(), "batch-1")
	WithContext(ctx, base).Info("started")
	if !strings.Contains(buf.String(), `"batch_id":"batch-1"`) {
		t.Fatalf("missing batch id: %s", buf.String())
	}

	if got := WithContext(context.Background(), base); got != base {
		t.Fatal("logger without context fields should be returned unchanged")
	}
	if _, ok := BatchIDFromContext(WithBatchID(context.Background(), "")); ok {
		t.Fatal("empty batch id should not be stored")
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "vidaudit-2020-01-01.log")
	current := filepath.Join(dir, "vidaudit-2026-01-02.log")
	keep := filepath.Join(dir, "vidaudit-2020-01-02.log")
	other := filepath.Join(dir, "notes.log")
	for _, p := range []string{old, current, keep, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -40)
	for _, p := range []string{old, keep, other} {
		if err := os.Chtimes(p, stale, stale); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	if removed := CleanupOldLogs(NewNop(), dir, 30, keep); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected %s removed", old)
	}
	for _, p := range []string{current, keep, other} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s kept: %v", p, err)
		}
	}
	if removed := CleanupOldLogs(nil, dir, 0, ""); removed != 0 {
		t.Fatalf("retention 0 should disable pruning, removed %d", removed)
	}
}
