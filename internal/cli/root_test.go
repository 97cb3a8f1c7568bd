package cli

import (
	"bytes"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("expected output to contain %q, got %q", Version, out)
	}
}

func TestSeedRequiresCredentials(t *testing.T) {
	_, err := executeCommand("seed")
	if err == nil {
		t.Fatal("expected error when --email and --password are missing")
	}
}

func TestSeedRejectsShortPassword(t *testing.T) {
	_, err := executeCommand("seed", "--email", "admin@example.com", "--password", "short")
	if err == nil {
		t.Fatal("expected error for a password under 8 characters")
	}
	if !strings.Contains(err.Error(), "8 characters") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()
	if root.PersistentFlags().Lookup("env-file") == nil {
		t.Fatal("expected --env-file flag to exist")
	}
}
