package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureLine(t *testing.T, format logFormat, emit func(*slog.Logger)) string {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: aw,
		format: format,
	})
	emit(slog.New(handler))
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return strings.TrimSpace(buf.String())
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)
	line := captureLine(t, formatKV, func(l *slog.Logger) {
		LogEvent(ctx, l.With("component", CompDialog), slog.LevelInfo, "dialog.transition",
			slog.String("status", "OK"),
			slog.String("next_state", "rooms"),
			slog.String("state", "kitchen"),
		)
	})

	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=dialog", "event=dialog.transition", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "state=kitchen", "next_state=rooms"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-json")
	line := captureLine(t, formatJSON, func(l *slog.Logger) {
		LogEvent(ctx, l.With("component", CompHandoff), slog.LevelError, "handoff.failed",
			slog.String("sink", "manager"),
			slog.String("order_id", "5f1c"),
			Err(errors.New("boom")),
		)
	})

	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"handoff"`, `"event":"handoff.failed"`, `"rid":"rid-json"`, `"order_id":"5f1c"`, `"sink":"manager"`, `"err":"boom"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	rawRID := "123:456:789"
	ctx := WithRID(context.Background(), rawRID)
	emit := func(l *slog.Logger) { LogEvent(ctx, l, slog.LevelInfo, "rid.test") }

	kv := captureLine(t, formatKV, emit)
	if !strings.Contains(kv, "rid="+CompactRID(rawRID)) || strings.Contains(kv, "rid_full=") {
		t.Fatalf("unexpected kv rid: %s", kv)
	}
	js := captureLine(t, formatJSON, emit)
	if !strings.Contains(js, `"rid":"`+CompactRID(rawRID)+`"`) || !strings.Contains(js, `"rid_full":"`+rawRID+`"`) {
		t.Fatalf("unexpected json rid: %s", js)
	}
	if !strings.Contains(js, `"ts_unix_nano"`) {
		t.Fatalf("expected ts_unix_nano in JSON output, got %s", js)
	}
}

func TestStructuredHandlerNormalizesValues(t *testing.T) {
	line := captureLine(t, formatKV, func(l *slog.Logger) {
		l.LogAttrs(context.Background(), slog.LevelDebug, "",
			slog.Duration("took", 1500*time.Microsecond),
			slog.String("outcome", "bogus"),
			slog.String("input", "  Да  "),
			slog.String("empty", ""),
			slog.Group("queue", slog.Int("depth", 3)),
		)
	})
	for _, want := range []string{"level=DEBUG", "component=app", "event=unknown", "took_ms=2", "input=Да", "queue.depth=3"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %q in %s", want, line)
		}
	}
	for _, absent := range []string{"outcome=", "empty="} {
		if strings.Contains(line, absent) {
			t.Fatalf("unexpected %q in %s", absent, line)
		}
	}
}

func TestCompactRID(t *testing.T) {
	cases := map[string]string{
		"35:36:1":  "z.10.1",
		"rid-123":  "rid-123",
		"1:x:2":    "1:x:2",
		" 10:0:0 ": "a.0.0",
	}
	for in, want := range cases {
		if got := CompactRID(in); got != want {
			t.Fatalf("CompactRID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	var allowed int
	for i := 0; i < 9; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Fatalf("allowed = %d, want 3", allowed)
	}
	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow")
	}

	cases := map[string][2]int{"2/5": {2, 5}, "10": {1, 10}, "0": {0, 0}, "a/b": {0, 0}}
	for spec, want := range cases {
		if n, d := parseRatioSpec(spec); n != want[0] || d != want[1] {
			t.Fatalf("parseRatioSpec(%q) = %d/%d, want %v", spec, n, d, want)
		}
	}
}

func TestHelpersTolerateUninitializedLogger(t *testing.T) {
	Info(context.Background(), CompDialog, "noop")
	if got := SanitizeLimit("a\x00b\u200bcdef", 3); got != "abc" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	ctx := WithUpdateMeta(context.Background(), 5, 6, 7)
	if UpdateIDFrom(ctx) != 5 || UserIDFrom(ctx) != 6 || ChatIDFrom(ctx) != 7 {
		t.Fatal("update meta lost")
	}
}
