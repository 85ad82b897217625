package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestUniqueNameFirstFree(t *testing.T) {
	name, err := UniqueName(func(string) bool { return false })
	if err != nil || name != "noname000.txt" {
		t.Errorf("UniqueName = %q, %v; want noname000.txt", name, err)
	}
}

func TestUniqueNameSkipsTaken(t *testing.T) {
	taken := map[string]bool{}
	for i := 0; i < 5; i++ {
		taken[untitledName(i)] = true
	}
	var asked []string
	name, err := UniqueName(func(n string) bool {
		asked = append(asked, n)
		return taken[n]
	})
	if err != nil {
		t.Fatalf("UniqueName: %v", err)
	}
	if name != "noname005.txt" {
		t.Errorf("got %q, want noname005.txt", name)
	}
	if len(asked) != 6 {
		t.Errorf("exists called %d times, want 6 (candidates in order)", len(asked))
	}
}

func TestUniqueNameExhausted(t *testing.T) {
	calls := 0
	_, err := UniqueName(func(string) bool {
		calls++
		return true
	})
	if !errors.Is(err, ErrNoUniqueName) {
		t.Fatalf("expected ErrNoUniqueName, got %v", err)
	}
	if calls != 1000 {
		t.Errorf("tried %d names, want 1000", calls)
	}
}

func TestUniqueNameIn(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "noname000.txt"), nil, 0644)
	os.Mkdir(filepath.Join(dir, "noname001.txt"), 0755)

	got, err := UniqueNameIn(dir)
	if err != nil {
		t.Fatalf("UniqueNameIn: %v", err)
	}
	if want := filepath.Join(dir, "noname002.txt"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
