package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/aidrax/promptrec/pkg/profile"
	"github.com/aidrax/promptrec/pkg/recommend"
	"github.com/aidrax/promptrec/pkg/report"
)

// ErrorHandler renders command errors for [fang.WithErrorHandler].
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	if flag := inputFlag(err); flag != "" {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Check"),
			styles.Program.Flag.Render(flag),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("and try again."),
		)))
		mustN(fmt.Fprintln(w))
	}

	if isUsageError(err) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		)))
		mustN(fmt.Fprintln(w))
	}
}

// inputFlag returns the recommend flag that names the path behind a failed
// precondition.
func inputFlag(err error) string {
	var inErr *recommend.InputError
	if !errors.As(err, &inErr) {
		return ""
	}

	switch inErr.Input {
	case recommend.InputManifest:
		return "--manifest"
	case recommend.InputSourceDir:
		return "--source-dir"
	case recommend.InputTargetDir:
		return "--target-home"
	}

	return ""
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	if errors.Is(err, profile.ErrUnknownProfile) || errors.Is(err, report.ErrUnknownFormat) {
		return true
	}
	if errors.Is(err, recommend.ErrPrecondition) {
		return false
	}

	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"required flag(s)",
		"accepts ",
		"requires at least",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
