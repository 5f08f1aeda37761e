// The scrape command exports sensor history from the PurpleAir API
// into the raw feed JSON the pipeline ingests.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/stratus/internal/adapters/purpleair"
	"github.com/okian/stratus/pkg/logger"
)

// Default scrape configuration constants.
const (
	defaultLookback = 14 * 24 * time.Hour
	defaultSleep    = 5 * time.Second
	outFilePerm     = 0o600
)

func main() {
	var (
		apiKey  = flag.String("key", "", "PurpleAir API key (required)")
		station = flag.Int("station", 0, "PurpleAir station to query (required)")
		start   = flag.String("start", time.Now().Add(-defaultLookback).Format(time.RFC3339),
			"Start of the export range in RFC 3339 form; default 2 weeks in the past")
		end     = flag.String("end", time.Now().Format(time.RFC3339), "End of the export range in RFC 3339 form")
		outfile = flag.String("outfile", "", "Where to write the feed JSON; default /tmp/<station>.json")
		sleep   = flag.Duration("sleep", defaultSleep, "Delay between API requests")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *apiKey == "" || *station == 0 {
		os.Stderr.WriteString("missing required -key or -station flag\n")
		flag.Usage()
		os.Exit(2)
	}

	startTS, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		log.Error(ctx, "invalid -start", logger.Error(err))
		os.Exit(2)
	}
	endTS, err := time.Parse(time.RFC3339, *end)
	if err != nil {
		log.Error(ctx, "invalid -end", logger.Error(err))
		os.Exit(2)
	}

	path := *outfile
	if path == "" {
		path = fmt.Sprintf("/tmp/%d.json", *station)
	}
	log.Info(ctx, "scraping station history",
		logger.Int("station", *station),
		logger.Time("start", startTS),
		logger.Time("end", endTS),
		logger.String("outfile", path),
	)

	client := purpleair.NewClient(*apiKey,
		purpleair.WithRequestDelay(*sleep),
		purpleair.WithLogger(log.Named("purpleair")),
	)

	if err := client.CheckKey(ctx); err != nil {
		log.Error(ctx, "unable to query PurpleAir API", logger.Error(err))
		os.Exit(1)
	}

	history, err := client.History(ctx, *station, startTS, endTS)
	if err != nil {
		log.Error(ctx, "history fetch failed", logger.Error(err))
		os.Exit(1)
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		log.Error(ctx, "failed to encode feed", logger.Error(err))
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, outFilePerm); err != nil {
		log.Error(ctx, "failed to write feed", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "wrote feed",
		logger.String("outfile", path),
		logger.Int("samples", len(history.Data)),
	)
}
