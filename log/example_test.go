package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/kaleidoscope/log"
)

func Example_plainText() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelInfo),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Debug("hidden")
	logger.Info("parse complete", slog.Int("statements", 3))
	// Output:
	// level=INFO msg="parse complete" statements=3
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelInfo),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithFormat(log.FormatJSON)).
		With(slog.String("session", "s1"))

	logger.InfoContext(context.Background(), "line accepted")
	// Output:
	// {"level":"INFO","msg":"line accepted","session":"s1"}
}
