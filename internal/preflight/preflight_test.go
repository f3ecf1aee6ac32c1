package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vidaudit/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || result.Detail == "" {
		t.Fatalf("expected failure with detail for missing dir, got %+v", result)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReadableDirectory_ReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckReadableDirectory("lib", dir); !result.Passed {
		t.Fatalf("read-only dir should be readable: %s", result.Detail)
	}
	if result := CheckDirectoryAccess("lib", dir); result.Passed {
		t.Fatal("read-only dir should fail the write check")
	}
}

func TestCheckParentWritable(t *testing.T) {
	dir := t.TempDir()
	fresh := CheckParentWritable("db", filepath.Join(dir, "history.db"))
	if !fresh.Passed {
		t.Fatalf("expected pass for creatable file: %s", fresh.Detail)
	}

	existing := filepath.Join(dir, "existing.db")
	if err := os.WriteFile(existing, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckParentWritable("db", existing); !result.Passed {
		t.Fatalf("expected pass for existing file: %s", result.Detail)
	}

	if result := CheckParentWritable("db", filepath.Join(dir, "missing", "history.db")); result.Passed {
		t.Fatal("expected failure when parent is missing")
	}
	if result := CheckParentWritable("db", ""); result.Passed {
		t.Fatal("expected failure for empty path")
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	ffprobe := filepath.Join(binDir, "ffprobe")
	if err := os.WriteFile(ffprobe, []byte("#!/bin/sh\necho 'ffprobe version 7.0'\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Paths.LogDir = base
	cfg.Paths.HistoryDB = filepath.Join(base, "history.db")
	cfg.Probe.FFprobeBinary = ffprobe
	cfg.Probe.ExiftoolBinary = "clearly-not-present-exiftool"
	return &cfg
}

func TestRunAllPassesWithOptionalToolMissing(t *testing.T) {
	cfg := testConfig(t)
	results := RunAll(context.Background(), cfg, t.TempDir())
	if failed := Failures(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	var sawFFprobe bool
	for _, r := range results {
		if r.Name == "ffprobe" {
			sawFFprobe = true
			if r.Detail != cfg.Probe.FFprobeBinary+" (ffprobe version 7.0)" {
				t.Fatalf("ffprobe detail = %q", r.Detail)
			}
		}
		if r.Name == "exiftool" {
			t.Fatal("optional exiftool should not be part of the scan preflight")
		}
	}
	if !sawFFprobe {
		t.Fatal("expected ffprobe check")
	}
}

func TestRunAllFailsOnMissingFFprobeAndRoot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Probe.FFprobeBinary = "clearly-not-present-ffprobe"
	cfg.Paths.ReportDir = t.TempDir()

	results := RunAll(context.Background(), cfg, filepath.Join(t.TempDir(), "missing"))
	failed := Failures(results)
	names := map[string]bool{}
	for _, f := range failed {
		names[f.Name] = true
	}
	if !names["Library"] || !names["ffprobe"] || len(failed) != 2 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, ""); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
