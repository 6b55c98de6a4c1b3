package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func init() {
	InitializeLogger()
}

// Populated by ldflags
var (
	version            string
	buildUnixTimestamp string
	commitHash         string
)

func main() {
	ts, _ := strconv.ParseInt(buildUnixTimestamp, 10, 64)
	buildInfo := BuildInfo{
		Version:    version,
		BuildTime:  time.Unix(ts, 0),
		CommitHash: commitHash,
	}

	versionFlag := flag.Bool("version", false, "Print version")
	systemdFlag := flag.Bool("systemd", false, "Print systemd service file")
	configFlag := flag.String("config", "", "Path to looper.toml")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Looper version:", buildInfo.Version)
		fmt.Println("Built on:", buildInfo.BuildTime)
		fmt.Println("Commit hash:", buildInfo.CommitHash)
		return
	}

	if *systemdFlag {
		params, err := DefaultServiceParams(*configFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not describe service")
		}
		if err := SystemdServiceFile(os.Stdout, params); err != nil {
			log.Fatal().Err(err).Msg("Could not render service file")
		}
		return
	}

	log.Info().
		Str("version", buildInfo.Version).
		Str("build_timestamp", buildInfo.BuildTime.Format(time.RFC3339)).
		Str("commit_hash", buildInfo.CommitHash).
		Msg("Initializing Looper")

	config, err := NewConfig(NewLooperOSFS(), Flags{ConfigPath: *configFlag}, os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("Config initialization failed")
	}
	SetLogLevel(config.LogLevel())
	log.Info().Str("path", config.Path()).Int("entries", len(config.Entries())).Msg("Loaded config")

	metrics := NewMetrics()
	sequencer, err := NewSequencer(config, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("Sequencer initialization failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sequencer.Run(ctx)
	})
	g.Go(func() error {
		return StartServer(ctx, config, NewRouter(config, buildInfo, sequencer, metrics))
	})

	if err := g.Wait(); err != nil {
		log.Err(err).Msg("Looper exited with error")
		os.Exit(1)
	}
	log.Info().Msg("Looper stopped")
}
