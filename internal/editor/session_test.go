package editor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/stlalpha/vedit/internal/ansi"
	"github.com/stlalpha/vedit/internal/terminal"
)

// loopback plays the terminal device: what the editor writes is recorded,
// and a size request queues the reply on the input side.
type loopback struct {
	in    bytes.Buffer
	out   bytes.Buffer
	reply string
}

func (l *loopback) Read(p []byte) (int, error) { return l.in.Read(p) }
func (l *loopback) Len() int                   { return l.in.Len() }

func (l *loopback) Write(p []byte) (int, error) {
	l.out.Write(p)
	if bytes.Contains(p, []byte(ansi.SizeRequest())) {
		l.in.WriteString(l.reply)
	}
	return len(p), nil
}

func newLoopback(width, height int) (*loopback, *terminal.Terminal) {
	lb := &loopback{reply: "\x1b[8;" + strconv.Itoa(height) + ";" + strconv.Itoa(width) + "t"}
	return lb, terminal.New(lb, lb)
}

func noFiles(string) bool { return false }

func TestNewSession_NoPathsCreatesUntitled(t *testing.T) {
	_, term := newLoopback(80, 24)
	taken := map[string]bool{"noname000.txt": true, "noname001.txt": true}

	s, err := NewSession(term, Options{Exists: func(p string) bool { return taken[p] }})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 file, got %d", s.Len())
	}
	if got := s.Current().Path(); got != "noname002.txt" {
		t.Errorf("untitled path = %q, want noname002.txt", got)
	}
	if s.State() != Uninitialized {
		t.Errorf("state = %v, want uninitialized", s.State())
	}
	if s.Current().Format() != DefaultFormat {
		t.Errorf("format = %v, want default", s.Current().Format())
	}
}

func TestNewSession_UntitledDir(t *testing.T) {
	_, term := newLoopback(80, 24)
	var asked []string
	s, err := NewSession(term, Options{
		UntitledDir: "scratch",
		Exists: func(p string) bool {
			asked = append(asked, p)
			return false
		},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	want := filepath.Join("scratch", "noname000.txt")
	if s.Current().Path() != want || len(asked) != 1 || asked[0] != want {
		t.Errorf("path %q, asked %q; want %q", s.Current().Path(), asked, want)
	}
}

func TestNewSession_NamesExhausted(t *testing.T) {
	_, term := newLoopback(80, 24)
	_, err := NewSession(term, Options{Exists: func(string) bool { return true }})
	if !errors.Is(err, ErrNoUniqueName) {
		t.Errorf("expected ErrNoUniqueName, got %v", err)
	}
}

func TestNewSession_BadPathDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	os.WriteFile(good, []byte("x\ny"), 0644)
	missing := filepath.Join(dir, "missing.txt")

	_, term := newLoopback(80, 24)
	s, err := NewSession(term, Options{DefaultFormat: ASCII}, good, dir, missing)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	files := s.Files()
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	if files[0].LineCount() != 2 || files[0].OpenErr() != nil {
		t.Errorf("good file: %d lines, err %v", files[0].LineCount(), files[0].OpenErr())
	}
	if files[1].OpenErr() == nil {
		t.Error("directory should carry an open error")
	}
	if files[2].OpenErr() != nil || files[2].LineCount() != 0 {
		t.Error("missing file should be an empty buffer")
	}
	for _, fb := range files {
		if fb.Format() != ASCII {
			t.Errorf("%s: format %v, want ascii", fb.Name(), fb.Format())
		}
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("current = %d, want 0", s.CurrentIndex())
	}
}

// lineDecoder ignores the file and returns fixed lines.
type lineDecoder []string

func (d lineDecoder) Decode(io.Reader) ([]string, error) { return d, nil }

func TestStart_DrainsThenQueries(t *testing.T) {
	lb, term := newLoopback(132, 43)
	lb.in.WriteString("stray keys")

	s, err := NewSession(term, Options{Exists: noFiles})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if s.State() != Ready {
		t.Errorf("state = %v, want ready", s.State())
	}
	if s.Screen() != (terminal.ScreenSize{Width: 132, Height: 43}) {
		t.Errorf("screen = %v", s.Screen())
	}
	if w := s.Current().Window(); w != (Rect{X: 1, Y: 1, Width: 132, Height: 43}) {
		t.Errorf("window = %+v", w)
	}
	if lb.in.Len() != 0 {
		t.Errorf("%d input bytes left unread", lb.in.Len())
	}
	if lb.out.String() != ansi.SizeRequest() {
		t.Errorf("output = %q, want only the size request", lb.out.String())
	}
}

func TestStart_ProtocolErrorKeepsState(t *testing.T) {
	lb, term := newLoopback(80, 24)
	lb.reply = "\x1b[8;24;x80t"

	s, _ := NewSession(term, Options{Exists: noFiles})
	err := s.Start()
	if !errors.Is(err, terminal.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
	if s.State() != Uninitialized {
		t.Errorf("state = %v, want uninitialized", s.State())
	}
	if !errors.Is(s.DrawStatus(), ErrNotReady) {
		t.Error("DrawStatus must refuse before a successful Start")
	}
}

func TestStart_NoReply(t *testing.T) {
	lb, term := newLoopback(80, 24)
	lb.reply = ""

	s, _ := NewSession(term, Options{Exists: noFiles})
	if err := s.Start(); err == nil {
		t.Fatal("expected error when the terminal does not answer")
	}
	if s.State() != Uninitialized {
		t.Errorf("state = %v", s.State())
	}
}

func startedSession(t *testing.T, n int) (*Session, *loopback) {
	t.Helper()
	lb, term := newLoopback(80, 24)
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(t.TempDir(), "f"+strconv.Itoa(i)+".txt")
	}
	s, err := NewSession(term, Options{Exists: noFiles}, paths...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	lb.out.Reset()
	return s, lb
}

func TestSelectNextPrev(t *testing.T) {
	s, _ := startedSession(t, 3)

	if err := s.Next(); err != nil || s.CurrentIndex() != 1 {
		t.Errorf("Next -> %d, %v", s.CurrentIndex(), err)
	}
	s.Next()
	s.Next()
	if s.CurrentIndex() != 0 {
		t.Errorf("Next should wrap to 0, got %d", s.CurrentIndex())
	}
	s.Prev()
	if s.CurrentIndex() != 2 {
		t.Errorf("Prev should wrap to 2, got %d", s.CurrentIndex())
	}
	if w := s.Current().Window(); w.Width != 80 || w.Height != 24 {
		t.Errorf("selected file not laid out: %+v", w)
	}

	if err := s.Select(3); !errors.Is(err, ErrNoSuchFile) {
		t.Errorf("Select(3) = %v, want ErrNoSuchFile", err)
	}
	if err := s.Select(-1); !errors.Is(err, ErrNoSuchFile) {
		t.Errorf("Select(-1) = %v, want ErrNoSuchFile", err)
	}
	if s.CurrentIndex() != 2 {
		t.Errorf("failed Select changed current to %d", s.CurrentIndex())
	}
}

func TestOpenAndNewFile(t *testing.T) {
	s, _ := startedSession(t, 1)

	fb, err := s.Open(filepath.Join(t.TempDir(), "more.txt"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Current() != fb || s.Len() != 2 {
		t.Error("opened file should be current")
	}

	nf, err := s.NewFile()
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if s.Current() != nf || nf.Name() != "noname000.txt" {
		t.Errorf("new file %q current=%v", nf.Name(), s.Current() == nf)
	}
}

func TestCloseKeepsCurrentValid(t *testing.T) {
	s, _ := startedSession(t, 4)
	files := s.Files()

	s.Select(2)
	if err := s.Close(files[0].ID()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Current() != files[2] {
		t.Error("closing an earlier file should keep the same current file")
	}

	s.Select(s.Len() - 1)
	s.Close(files[3].ID())
	if s.Current() != files[2] || s.CurrentIndex() != s.Len()-1 {
		t.Errorf("closing the last current file should fall back, got index %d", s.CurrentIndex())
	}

	if err := s.Close(uuid.New()); !errors.Is(err, ErrNoSuchFile) {
		t.Errorf("Close(unknown) = %v, want ErrNoSuchFile", err)
	}
}

func TestCloseLastFileLeavesUntitled(t *testing.T) {
	s, _ := startedSession(t, 1)
	only := s.Current()

	if err := s.Close(only.ID()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Len() != 1 || s.Current() == only {
		t.Fatal("expected a fresh untitled file")
	}
	if !strings.HasPrefix(s.Current().Name(), "noname") {
		t.Errorf("replacement = %q", s.Current().Name())
	}
}

func TestResize(t *testing.T) {
	_, term := newLoopback(80, 24)
	s, _ := NewSession(term, Options{Exists: noFiles})
	if err := s.Resize(terminal.ScreenSize{Width: 100, Height: 30}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Resize before Start = %v, want ErrNotReady", err)
	}

	s.Start()
	if err := s.Resize(terminal.ScreenSize{Width: 0, Height: 30}); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Resize(0x30) = %v, want ErrInvalidWindow", err)
	}
	if err := s.Resize(terminal.ScreenSize{Width: 100, Height: 30}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w := s.Current().Window(); w.Width != 100 || w.Height != 30 {
		t.Errorf("window = %+v", w)
	}
}

func TestResizeFitsEveryWindow(t *testing.T) {
	s, _ := startedSession(t, 2)
	s.Select(1)
	s.Select(0)

	small := terminal.ScreenSize{Width: 40, Height: 10}
	if err := s.Resize(small); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	for i, fb := range s.Files() {
		w := fb.Window()
		if w.X+w.Width-1 > small.Width || w.Y+w.Height-1 > small.Height {
			t.Errorf("file %d window %+v outside screen %v", i, w, small)
		}
	}
	if w := s.Current().Window(); w != (Rect{X: 1, Y: 1, Width: 40, Height: 10}) {
		t.Errorf("current window = %+v", w)
	}
}

func TestSessionDecoderOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	os.WriteFile(path, []byte("ignored"), 0644)

	_, term := newLoopback(80, 24)
	s, err := NewSession(term, Options{
		DefaultFormat: UTF16LE,
		Decoders:      map[TextFormat]Decoder{UTF16LE: lineDecoder{"one", "two"}},
	}, path)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Current().LineCount() != 2 || s.Current().Line(2) != "two" {
		t.Errorf("decoder override not used: %q", s.Current().Lines())
	}
}
