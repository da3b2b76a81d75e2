package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelByString(t *testing.T) {
	if lvl, ok := LevelByString("warn"); !ok || lvl != zapcore.WarnLevel {
		t.Errorf("warn = %v, %v", lvl, ok)
	}
	if _, ok := LevelByString("loud"); ok {
		t.Error("unknown level accepted")
	}
	if got := GetLoggerLevelByString("loud"); got != zapcore.DebugLevel {
		t.Errorf("fallback = %v; want debug", got)
	}
}

func TestInitLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogx(zapcore.InfoLevel, false, false)
	l.InitLogger(&buf)
	l.Debug("hidden")
	l.Infow("move", "to", "e4")
	if err := l.Sync(); err != nil {
		t.Fatal(err)
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("not a single JSON line: %q: %v", buf.String(), err)
	}
	if rec["MESSAGE"] != "move" || rec["to"] != "e4" || rec["LEVEL"] != "info" {
		t.Errorf("record = %v", rec)
	}
}

func TestDPanicDoesNotPanicOnObservedCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l Logger = NewLogxFromCore(core)
	l.DPanicf("broken %s", "board")
	if logs.FilterMessage("broken board").Len() != 1 {
		t.Errorf("entries = %v", logs.All())
	}
	NewNopLogx().Info("nothing")
}
