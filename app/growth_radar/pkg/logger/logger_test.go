package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestCallerFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, logrus.DebugLevel)

	l.WithField("source", "news").WithField("account", "u1").Warn("缓存写入失败")

	line := buf.String()
	if !strings.Contains(line, "[WARN]") {
		t.Errorf("missing level in %q", line)
	}
	if !strings.Contains(line, "logger_test.go:") {
		t.Errorf("missing caller in %q", line)
	}
	if !strings.HasSuffix(line, "缓存写入失败 account=u1 source=news\n") {
		t.Errorf("unexpected field order in %q", line)
	}
}

func TestInitLogger_FileSink(t *testing.T) {
	old := Log
	defer func() { Log = old }()

	path := filepath.Join(t.TempDir(), "logs", "engine.log")
	if err := InitLogger("not-a-level", path); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info fallback", Log.GetLevel())
	}
}
