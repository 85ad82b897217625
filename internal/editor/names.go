package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	untitledPrefix = "noname"
	untitledSuffix = ".txt"
	untitledDigits = 3
)

// ErrNoUniqueName means every untitled name is taken. It points at a
// cluttered directory rather than anything the editor can recover from.
var ErrNoUniqueName = errors.New("no unused untitled file name left")

func untitledName(n int) string {
	return fmt.Sprintf("%s%0*d%s", untitledPrefix, untitledDigits, n, untitledSuffix)
}

// UniqueName proposes noname000.txt, noname001.txt, ... in order and
// returns the first candidate for which exists reports false.
func UniqueName(exists func(name string) bool) (string, error) {
	limit := 1
	for i := 0; i < untitledDigits; i++ {
		limit *= 10
	}
	for n := 0; n < limit; n++ {
		name := untitledName(n)
		if !exists(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s through %s all exist", ErrNoUniqueName, untitledName(0), untitledName(limit-1))
}

// UniqueNameIn returns an unused untitled path inside dir ("" is the
// working directory).
func UniqueNameIn(dir string) (string, error) {
	name, err := UniqueName(func(name string) bool {
		return pathExists(filepath.Join(dir, name))
	})
	if err != nil {
		return "", err
	}
	if dir == "" {
		return name, nil
	}
	return filepath.Join(dir, name), nil
}

// pathExists treats anything but a clean "not exist" as taken, so a name
// is never reused when the directory cannot be inspected.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return !errors.Is(err, os.ErrNotExist)
}
