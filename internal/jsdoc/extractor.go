package jsdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrToolNotFound is returned when no jsdoc executable can be located.
	ErrToolNotFound = errors.New("could not find jsdoc command")
	// ErrToolFailure is matched by every *ToolError.
	ErrToolFailure = errors.New("jsdoc failed")
)

// ToolError reports a jsdoc run that could not start or exited non-zero.
type ToolError struct {
	Path     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("jsdoc %s: %v", e.Path, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ToolError) Unwrap() []error {
	return []error{ErrToolFailure, e.Err}
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return "jsdoc.cmd"
	}
	return "jsdoc"
}

// Locate searches dir and each of its parents for node_modules/.bin/jsdoc,
// then falls back to $PATH.
func Locate(dir string) (string, error) {
	exe := executableName()
	folder, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(folder, "node_modules", ".bin", exe)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(folder)
		if parent == folder {
			break
		}
		folder = parent
	}
	if path, err := exec.LookPath(exe); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w (searched %s and $PATH)", ErrToolNotFound, dir)
}

// Extractor runs jsdoc in explain mode and decodes its doclet dump.
type Extractor struct {
	// Path overrides Locate when set.
	Path string
	// SearchDir is where Locate starts looking, "." when empty.
	SearchDir string
	Logger    *slog.Logger
}

// Extract documents files. An empty file list yields no records and does not
// start jsdoc.
func (x *Extractor) Extract(ctx context.Context, files []string) ([]Record, error) {
	if len(files) == 0 {
		return nil, nil
	}
	path := x.Path
	if path == "" {
		start := x.SearchDir
		if start == "" {
			start = "."
		}
		located, err := Locate(start)
		if err != nil {
			return nil, err
		}
		path = located
	}
	args := append([]string{"-X"}, files...)
	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if x.Logger != nil {
		x.Logger.Debug("running jsdoc", "path", path, "files", len(files))
	}
	if err := cmd.Run(); err != nil {
		toolErr := &ToolError{Path: path, Stderr: stderr.String(), Err: err, ExitCode: -1}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
		}
		return nil, toolErr
	}
	records, err := Decode(&stdout)
	if err != nil {
		return nil, &ToolError{Path: path, Stderr: stderr.String(), Err: err}
	}
	return records, nil
}
