package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/aidrax/promptrec/internal/cli"
	"github.com/aidrax/promptrec/pkg/version"
)

func main() {
	// Variables already present in the environment take precedence.
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err = fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
