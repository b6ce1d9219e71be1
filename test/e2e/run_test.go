package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/minic/internal/driver"
)

// TestE2E runs the front end over every .mc file in testdata/.
// Each .golden file holds "ok" for a program that checks cleanly, or
// the first diagnostic reported for it.
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.mc")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .mc test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".mc")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile)
		})
	}
}

func runE2ETest(t *testing.T, mcFile string) {
	t.Helper()

	goldenFile := strings.TrimSuffix(mcFile, ".mc") + ".golden"
	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	got := firstDiagnostic(t, mcFile)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.WriteFile(goldenFile, []byte(got+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		return
	}

	want := strings.TrimSpace(string(expected))
	if got != want {
		t.Errorf("diagnostic mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

// firstDiagnostic compiles mcFile in-process under its base name and
// returns "ok" or the first diagnostic.
func firstDiagnostic(t *testing.T, mcFile string) string {
	t.Helper()

	src, err := os.ReadFile(mcFile)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	u := driver.Compile(context.Background(), filepath.Base(mcFile), src, driver.Options{})
	if u.OK() {
		if len(u.Diags) != 0 {
			t.Errorf("successful compilation reported %v", u.Diags)
		}
		return "ok"
	}
	if len(u.Diags) == 0 {
		t.Fatalf("compilation failed at %v without diagnostics: %v", u.Stage, u.Err)
	}
	if u.Diags[0] != u.Err {
		t.Errorf("first diagnostic %v is not the returned error %v", u.Diags[0], u.Err)
	}
	return u.Diags[0].Error()
}

// TestE2EParallel checks that compiling the corpus concurrently gives the
// same results as compiling each file alone.
func TestE2EParallel(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.mc")
	if err != nil {
		t.Fatal(err)
	}
	units, err := driver.CompileFiles(context.Background(), testFiles, driver.Options{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	for i, u := range units {
		want, err := os.ReadFile(strings.TrimSuffix(testFiles[i], ".mc") + ".golden")
		if err != nil {
			t.Fatal(err)
		}
		wantOK := strings.TrimSpace(string(want)) == "ok"
		if u.OK() != wantOK {
			t.Errorf("%s: OK = %v, want %v (%v)", testFiles[i], u.OK(), wantOK, u.Err)
		}
	}
}
