// Package api contains the versioned configuration types and the file
// helpers used to read and write them.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aidrax/promptrec/pkg/yaml"
)

// AppName names the per-user configuration directory.
const AppName = "promptrec"

var (
	ErrIsDirectory    = errors.New("path is a directory")
	ErrNotRegularFile = errors.New("not a regular file")
)

// WriteAction describes what [WriteDefaultFile] did.
type WriteAction string

const (
	// Created means no file existed and the default was written.
	Created WriteAction = "created"
	// Kept means an existing file was left untouched.
	Kept WriteAction = "kept"
	// Replaced means an existing file was moved to a backup and the default
	// was written.
	Replaced WriteAction = "replaced"
)

// WriteResult is returned by [WriteDefaultFile].
type WriteResult struct {
	Action WriteAction
	Path   string
	// Backup is set when Action is [Replaced].
	Backup string
}

// GetConfigPath returns the path to filename in the user's config directory.
// It checks $XDG_CONFIG_HOME first, then falls back to ~/.config, and finally
// to a temp directory.
func GetConfigPath(filename string) string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, AppName, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", AppName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), AppName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", err),
	)

	return tmpPath
}

// ReadFile reads a regular file. A missing file yields an error matching
// [fs.ErrNotExist].
func ReadFile(path string) ([]byte, error) {
	_, err := statRegular(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// Exists reports whether path is present. Errors other than
// [fs.ErrNotExist] are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("stat file: %w", err)
}

// MarshalYAML serializes an object to YAML bytes.
func MarshalYAML(obj any) ([]byte, error) {
	var b bytes.Buffer

	enc := yaml.NewEncoder(&b)

	err := enc.Encode(obj)
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}

// WriteDefaultFile writes data to path unless a file is already there.
// With force, an existing file is renamed to a timestamped backup first.
// kind names the file in log messages.
func WriteDefaultFile(path string, data []byte, force bool, kind string) (WriteResult, error) {
	res := WriteResult{Action: Created, Path: path}

	exists, err := statRegular(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return res, err
	}

	switch {
	case exists && !force:
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		res.Action = Kept

		return res, nil

	case exists:
		res.Action = Replaced
		res.Backup = fmt.Sprintf("%s.%s.old", path, time.Now().UTC().Format("20060102T150405.000000000"))

		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", res.Backup),
		)

		err = os.Rename(path, res.Backup)
		if err != nil {
			return res, fmt.Errorf("rename existing %s file to backup: %w", kind, err)
		}

	default:
		err = os.MkdirAll(filepath.Dir(path), 0o700)
		if err != nil {
			return res, fmt.Errorf("create directories: %w", err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return res, fmt.Errorf("write %s file: %w", kind, err)
	}

	return res, nil
}

// statRegular reports whether path is a regular file. Missing paths return
// false with an error matching [fs.ErrNotExist]; other file types fail.
func statRegular(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat file: %w", err)
	}

	switch {
	case info.IsDir():
		return false, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	return true, nil
}
