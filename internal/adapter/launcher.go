package adapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

var (
	execCommand = exec.Command
	lookPath    = exec.LookPath
)

// Launcher opens URLs in an external browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	logger  *slog.Logger
}

// NewLauncher creates a launcher from config
func NewLauncher(cfg BrowserConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: strings.TrimSpace(cfg.Command),
		args:    cfg.Args,
		logger:  logger,
	}
}

// Launch opens url in the configured browser or the system default
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return errors.New("empty url")
	}

	var (
		name string
		args []string
		err  error
	)
	if l.command != "" {
		name = l.command
		args = append(append([]string{}, l.args...), url)
		l.logger.Info("launching configured browser", "command", name, "args", args)
	} else {
		name, args, err = defaultCommand(runtime.GOOS, url)
		if err != nil {
			return err
		}
		l.logger.Info("launching with system default", "os", runtime.GOOS, "command", name, "url", url)
	}

	cmd := execCommand(name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", name, err)
	}
	// Reap the child without blocking the caller
	go cmd.Wait()
	return nil
}

// defaultCommand returns the system URL handler for goos
func defaultCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", url}, nil
	default:
		// Linux and other Unix-like systems
		if _, err := lookPath("xdg-open"); err == nil {
			return "xdg-open", []string{url}, nil
		}
		if _, err := lookPath("gio"); err == nil {
			return "gio", []string{"open", url}, nil
		}
		return "", nil, errors.New("no url opener found (need xdg-open or gio)")
	}
}
