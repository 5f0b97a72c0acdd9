package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEngineLiteralAndRegexRules(t *testing.T) {
	t.Parallel()

	contents := `
# literal
pull request => PR
s/\bwhisper\s*one\b/whisper-1/g
`

	engine, err := Parse(contents, 30)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	output, err := engine.Apply("Whisper One pull request")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if output != "whisper-1 PR" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestEngineIteratesUntilStable(t *testing.T) {
	t.Parallel()

	engine, err := Parse("a => b\nb => c\n", 5)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	output, err := engine.Apply("a")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if output != "c" {
		t.Fatalf("expected chained substitution, got %q", output)
	}
}

func TestEngineRespectsLoopLimit(t *testing.T) {
	t.Parallel()

	// x => xx grows forever; the loop limit must stop it.
	engine, err := Parse("s/x/xx/", 3)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	output, err := engine.Apply("x")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(output) == 0 || len(output) > 16 {
		t.Fatalf("loop limit not applied, got %d chars", len(output))
	}
}

func TestEngineFirstMatchOnlyWithoutGlobalFlag(t *testing.T) {
	t.Parallel()

	engine, err := Parse("s/cat/dog/", 30)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	output, err := engine.Apply("cat cat")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if output != "dog cat" {
		t.Fatalf("expected first match only, got %q", output)
	}
}

func TestLoadMissingFileIsNoop(t *testing.T) {
	t.Parallel()

	engine, err := Load(filepath.Join(t.TempDir(), "nope.rules"), 30)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	output, err := engine.Apply("unchanged")
	if err != nil || output != "unchanged" {
		t.Fatalf("expected passthrough, got %q (%v)", output, err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.rules")
	if err := os.WriteFile(path, []byte("not a rule\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := Load(path, 30); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseRejectsUnsupportedFlag(t *testing.T) {
	t.Parallel()

	if _, err := Parse("s/a/b/q", 30); err == nil {
		t.Fatalf("expected flag error")
	}
}
