package recommend

import (
	"errors"
	"fmt"
	"os"
)

// ErrPrecondition is wrapped by every error from [CheckInputs].
var ErrPrecondition = errors.New("precondition failed")

// Input names used in [*InputError].
const (
	InputManifest  = "manifest"
	InputSourceDir = "source directory"
	InputTargetDir = "target home"
)

// InputError reports an input path that does not have the expected type.
// It matches [ErrPrecondition] with [errors.Is].
type InputError struct {
	Input string
	Path  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %s not found: %s", ErrPrecondition, e.Input, e.Path)
}

func (e *InputError) Is(target error) bool {
	return target == ErrPrecondition
}

// Inputs names the filesystem inputs of a run.
type Inputs struct {
	Manifest  string
	SourceDir string
	TargetDir string
}

// CheckInputs verifies that the manifest is a regular file and that both
// roots are directories. It stops at the first failure.
func CheckInputs(in Inputs) error {
	err := RequireFile(InputManifest, in.Manifest)
	if err != nil {
		return err
	}

	err = RequireDir(InputSourceDir, in.SourceDir)
	if err != nil {
		return err
	}

	return RequireDir(InputTargetDir, in.TargetDir)
}

// RequireFile returns an error unless path is a regular file.
func RequireFile(what, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return &InputError{Input: what, Path: path}
	}

	return nil
}

// RequireDir returns an error unless path is a directory.
func RequireDir(what, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return &InputError{Input: what, Path: path}
	}

	return nil
}
