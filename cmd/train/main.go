// The train command loads a dataset written by the pipeline and
// reports what it found. Model training itself is not implemented
// yet; this validates the data end of the contract.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/stratus/internal/training"
	"github.com/okian/stratus/pkg/logger"
)

func main() {
	dataPath := flag.String("data", "", "Path to the training dataset JSON file (required)")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *dataPath == "" {
		os.Stderr.WriteString("missing required -data flag\n")
		flag.Usage()
		os.Exit(2)
	}

	examples, err := training.LoadFile(ctx, *dataPath)
	if err != nil {
		log.Error(ctx, "failed to load training data", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "training data ready",
		logger.String("path", *dataPath),
		logger.Int("examples", len(examples)),
	)
}
