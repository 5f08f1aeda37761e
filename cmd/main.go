// The stratus command turns a raw sensor feed into training data:
// it calibrates and sorts the readings, archives them as CSV, builds
// windowed training examples, and writes the train/validation split.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/stratus/internal/adapters/export"
	"github.com/okian/stratus/internal/adapters/feed"
	app "github.com/okian/stratus/internal/app"
	"github.com/okian/stratus/internal/config"
	"github.com/okian/stratus/pkg/logger"
	"github.com/okian/stratus/pkg/metrics"
)

// Metrics server timeout constants.
const (
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	var (
		inputPath      = flag.String("input", "", "Raw feed JSON file produced by the scraper (required)")
		csvPath        = flag.String("csv", "", "Optional output path for the calibrated measurement CSV")
		trainPath      = flag.String("train", "train.json", "Output path for the training dataset")
		validationPath = flag.String("validation", "validation.json", "Output path for the validation dataset")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if *inputPath == "" {
		os.Stderr.WriteString("missing required -input flag\n")
		flag.Usage()
		os.Exit(2)
	}

	// Optionally expose metrics while the run is in flight.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr)
	}

	rawFeed, err := feed.ReadFile(ctx, *inputPath)
	if err != nil {
		log.Error(ctx, "failed to read feed", logger.String("input", *inputPath), logger.Error(err))
		os.Exit(1)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithHistoryLength(cfg.HistoryLength()),
		app.WithPredictionLength(cfg.PredictionLength()),
		app.WithSampleInterval(cfg.SampleInterval()),
		app.WithTrainSplit(cfg.TrainSplit),
		app.WithSeed(cfg.Seed),
		app.WithWorkers(cfg.Workers),
	)

	res, err := svc.Run(ctx, rawFeed)
	if err != nil {
		log.Error(ctx, "pipeline failed", logger.Error(err))
		os.Exit(1)
	}

	if *csvPath != "" {
		log.Info(ctx, "writing measurement csv",
			logger.String("path", *csvPath),
			logger.Int("entries", res.Series.Len()),
		)
		if err := export.WriteCSVFile(*csvPath, res.Series.Entries()); err != nil {
			log.Error(ctx, "failed to write csv", logger.Error(err))
			os.Exit(1)
		}
	}

	log.Info(ctx, "writing datasets",
		logger.String("train", *trainPath),
		logger.String("validation", *validationPath),
	)
	if err := export.WriteDatasetFile(*trainPath, res.Train); err != nil {
		log.Error(ctx, "failed to write training dataset", logger.Error(err))
		os.Exit(1)
	}
	if err := export.WriteDatasetFile(*validationPath, res.Validation); err != nil {
		log.Error(ctx, "failed to write validation dataset", logger.Error(err))
		os.Exit(1)
	}
}

// serveMetrics serves the Prometheus registry until ctx is done.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Get().Warn(ctx, "metrics server stopped", logger.Error(err))
	}
}
