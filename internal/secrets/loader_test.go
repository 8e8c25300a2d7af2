package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	secret, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret != "file-secret" {
		t.Fatalf("secret = %q, want trimmed file content", secret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INTROMATCH_TEST_SECRET", " env-secret ")

	secret, err := Load(Source{Name: "api key", Env: "INTROMATCH_TEST_SECRET"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret != "env-secret" {
		t.Fatalf("secret = %q, want trimmed env value", secret)
	}
}

func TestLoadInlineValue(t *testing.T) {
	t.Parallel()

	secret, err := Load(Source{Value: "inline"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret != "inline" {
		t.Fatalf("secret = %q, want %q", secret, "inline")
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	t.Setenv("INTROMATCH_TEST_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	secret, err := Load(Source{
		File:  path,
		Env:   "INTROMATCH_TEST_SECRET",
		Value: "from-value",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("file must win over env and value, got %q", secret)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("a whitespace-only file is not a secret")
	}
}

func TestLoadUnconfigured(t *testing.T) {
	t.Parallel()

	_, err := Load(Source{Name: "api key"})
	if err == nil {
		t.Fatal("expected an error for an empty source")
	}
	if !strings.Contains(err.Error(), "is not configured") {
		t.Fatalf("unexpected error: %v", err)
	}
}
