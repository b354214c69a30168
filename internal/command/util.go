package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"golang.org/x/term"

	"github.com/mmynk/spendtrack/internal/config"
	"github.com/mmynk/spendtrack/internal/storage/sqlite"
)

type configKey struct{}

func prompt(prompt string, mask bool) ([]byte, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if _, err := os.Stderr.WriteString(prompt); err != nil {
			return nil, err
		}
	}
	line, err := readLine(os.Stdin, mask)
	if mask && term.IsTerminal(int(os.Stdin.Fd())) {
		_, _ = os.Stderr.WriteString("\n")
	}
	return line, err
}

// readLine reads one line from stdin, without echo when mask is set and
// stdin is a terminal.
func readLine(stdin *os.File, mask bool) ([]byte, error) {
	if mask && term.IsTerminal(int(stdin.Fd())) {
		return term.ReadPassword(int(stdin.Fd()))
	}
	return readRawLine(stdin)
}

// readRawLine reads up to the next newline one byte at a time, so nothing
// past the line is consumed. Carriage returns are dropped and backspace
// erases the previous byte.
func readRawLine(r io.Reader) ([]byte, error) {
	var (
		b    [1]byte
		line []byte
	)
	for {
		n, err := r.Read(b[:])
		if n == 1 {
			switch c := b[0]; c {
			case '\n':
				return line, nil
			case '\r':
			case '\b':
				line = line[:max(len(line)-1, 0)]
			default:
				line = append(line, c)
			}
			continue
		}
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return line, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}

// loadConfig returns the config bound by the root command and opens the store.
// Callers must close the store.
func loadConfig(ctx context.Context) (*config.Config, *slog.Logger, *sqlite.SQLiteStore, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, nil, nil, errors.New("configuration was not loaded")
	}
	logger := slog.Default()
	store, err := sqlite.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, store, nil
}
