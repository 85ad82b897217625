// Command vedit opens one or more text files in a terminal editing session.
//
// Usage:
//
//	./vedit [-config path] [-debug] [-log path] [file ...]
//
// With no files a new noname###.txt is created. The terminal is put in raw
// mode, its size is queried, a status line is drawn and the program waits
// for a key before restoring the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/stlalpha/vedit/internal/config"
	"github.com/stlalpha/vedit/internal/editor"
	"github.com/stlalpha/vedit/internal/logging"
	"github.com/stlalpha/vedit/internal/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to editor.json (default: $"+config.PathEnvVar+" or "+config.DefaultPath+")")
	debug := flag.Bool("debug", false, "Enable debug logging")
	logPath := flag.String("log", "", "Log file (default: from config)")
	flag.Parse()

	cfg, err := config.LoadEditorConfig(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	format, err := cfg.Format()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.DebugEnabled = *debug || cfg.Debug || logging.EnabledFromEnv()

	if *logPath == "" {
		*logPath = cfg.LogPath()
	}
	logFile, err := logging.ToFile(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg, format, flag.Args()); err != nil {
		log.Printf("ERROR: %v", err)
		logFile.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns the terminal for the session and always leaves it as it found it.
func run(cfg config.EditorConfig, format editor.TextFormat, paths []string) error {
	if err := terminal.EnableVirtualTerminal(); err != nil {
		log.Printf("WARN: cannot enable virtual terminal processing: %v", err)
	}

	t := terminal.NewStdio()
	if err := t.MakeRaw(); err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer t.Restore()

	if cfg.AltScreen {
		if err := t.EnterAlternateScreen(); err != nil {
			return fmt.Errorf("alternate screen: %w", err)
		}
		defer t.LeaveAlternateScreen()
	}

	sess, err := editor.NewSession(t, editor.Options{
		DefaultFormat: format,
		UntitledDir:   cfg.UntitledDir,
	}, paths...)
	if err != nil {
		return err
	}
	if err := sess.Start(); err != nil {
		return err
	}
	if err := sess.DrawStatus(); err != nil {
		return err
	}

	if _, err := t.ReadKey(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read key: %w", err)
	}
	log.Printf("INFO: session %s closed", sess.ID())
	return nil
}
