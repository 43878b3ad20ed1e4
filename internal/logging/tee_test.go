package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

var testTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

type failingHandler struct {
	slog.Handler
	err error
}

func (f failingHandler) Handle(context.Context, slog.Record) error { return f.err }

func TestTee_EachHandlerKeepsItsLevel(t *testing.T) {
	var term, file bytes.Buffer
	termH := NewHandler(&term, &slog.HandlerOptions{Level: slog.LevelWarn})
	termH.noTime = true
	logger := slog.New(NewTee(termH, NewJSONHandler(&file, slog.LevelDebug)))

	logger.With(KeyClient, "code").Debug("loaded client config", "servers", 2)
	logger.Warn("registry not found, starting empty")

	if strings.Contains(term.String(), "loaded client config") {
		t.Errorf("terminal handler got a debug record: %q", term.String())
	}
	if term.String() != "WRN registry not found, starting empty\n" {
		t.Errorf("terminal output = %q", term.String())
	}

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("file got %d records, want 2: %q", len(lines), file.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first["client"] != "code" || first["servers"] != float64(2) {
		t.Errorf("first record = %v", first)
	}
}

func TestTee_EnabledIfAnyHandlerIs(t *testing.T) {
	tee := NewTee(
		NewJSONHandler(&bytes.Buffer{}, slog.LevelError),
		NewJSONHandler(&bytes.Buffer{}, slog.LevelInfo),
	)
	if !tee.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be enabled")
	}
	if tee.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug to be disabled")
	}
}

func TestTee_JoinsErrors(t *testing.T) {
	errA := errors.New("disk full")
	errB := errors.New("closed pipe")
	var ok bytes.Buffer
	tee := NewTee(
		failingHandler{Handler: NewJSONHandler(&bytes.Buffer{}, slog.LevelInfo), err: errA},
		NewJSONHandler(&ok, slog.LevelInfo),
		failingHandler{Handler: NewJSONHandler(&bytes.Buffer{}, slog.LevelInfo), err: errB},
	)

	err := tee.Handle(context.Background(), slog.NewRecord(testTime, slog.LevelInfo, "applied servers", 0))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle() error = %v, want both failures", err)
	}
	if ok.Len() == 0 {
		t.Error("a failing handler kept the others from writing")
	}
}

func TestTee_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewTee(NewJSONHandler(&buf, slog.LevelInfo))).WithGroup("backup").Info("created", "id", "x")

	if !strings.Contains(buf.String(), `"backup":{"id":"x"}`) {
		t.Errorf("group not applied: %s", buf.String())
	}
}
