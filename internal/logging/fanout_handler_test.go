package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestTeeHandlerNilHandlers(t *testing.T) {
	h := TeeHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Fatalf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestTeeHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := TeeHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsPerHandlerLevels(t *testing.T) {
	var infoBuf, debugBuf bytes.Buffer
	info := slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	debug := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	h := TeeHandler(info, debug)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected tee to be enabled for debug")
	}

	logger := slog.New(h)
	logger.Debug("detail")
	logger.Info("summary")

	if strings.Contains(infoBuf.String(), "detail") {
		t.Fatalf("info handler received debug record: %s", infoBuf.String())
	}
	if !strings.Contains(infoBuf.String(), "summary") {
		t.Fatalf("info handler missing info record: %s", infoBuf.String())
	}
	if !strings.Contains(debugBuf.String(), "detail") || !strings.Contains(debugBuf.String(), "summary") {
		t.Fatalf("debug handler missing records: %s", debugBuf.String())
	}
}

func TestTeeHandlerPropagatesAttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	h := TeeHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))

	slog.New(h).With("batch_id", "b1").WithGroup("probe").Info("done", "files", 3)

	for name, buf := range map[string]*bytes.Buffer{"a": &a, "b": &b} {
		out := buf.String()
		if !strings.Contains(out, `"batch_id":"b1"`) {
			t.Fatalf("%s: missing batch_id: %s", name, out)
		}
		if !strings.Contains(out, `"probe":{"files":3}`) {
			t.Fatalf("%s: missing grouped attr: %s", name, out)
		}
	}
}
