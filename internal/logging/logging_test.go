package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetup_WritesToFile(t *testing.T) {
	prevOut, prevLevel := log.StandardLogger().Out, log.GetLevel()
	defer func() {
		log.SetOutput(prevOut)
		log.SetLevel(prevLevel)
	}()

	path := filepath.Join(t.TempDir(), "nested", "fm.log")
	closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.WithField("op", "paste").Info("hello from test")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "hello from test") || !strings.Contains(string(b), "op=paste") {
		t.Errorf("log file missing entry: %q", string(b))
	}
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("level: got %v", log.GetLevel())
	}
}

func TestSetup_BadLevel(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
