// Command rtspd runs the RTSP server: it loads a YAML config file (one
// positional argument, default "default.yaml"), registers the configured
// media items, and serves RTSP connections until interrupted. Grounded on
// gortsplib's examples/server/main.go for the minimal flag-based wiring
// shape and camsRelay's choice of zerolog + go-colorable for terminal
// logging (spec §6 CLI collaborator: "one positional argument, path to
// config file; default default.yaml. Log level from environment LOG.").
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oddity-ai/oddity-rtsp/internal/config"
	"github.com/oddity-ai/oddity-rtsp/internal/metrics"
	"github.com/oddity-ai/oddity-rtsp/internal/rtpio"
	"github.com/oddity-ai/oddity-rtsp/internal/rtspserver"
	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
	"github.com/oddity-ai/oddity-rtsp/internal/session"
	"github.com/oddity-ai/oddity-rtsp/internal/source"
)

const serverHeader = "oddity-rtsp/1.0"

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [config-path]\n", os.Args[0])
		flag.PrintDefaults()
	}
	metricsAddr := flag.String("metrics-addr", ":9100", "address to serve /metrics on")
	flag.Parse()

	configPath := "default.yaml"
	if flag.NArg() > 0 {
		configPath = flag.Arg(0)
	}

	setupLogging()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("rtspd: failed to load config")
		return 1
	}

	rt := runtime.New()
	m := metrics.New()
	sources := source.NewManager(rt, m)
	sessions := session.NewManager(rt, m)

	for _, media := range cfg.Media {
		descriptor, err := descriptorFor(media)
		if err != nil {
			log.Error().Err(err).Str("media", media.Name).Msg("rtspd: skipping unsupported media item")
			continue
		}
		if err := sources.Register(media.Path, descriptor); err != nil {
			log.Error().Err(err).Str("media", media.Name).Msg("rtspd: failed to register source")
			return 1
		}
		log.Info().Str("name", media.Name).Str("path", media.Path).Msg("rtspd: registered source")
	}

	ctx := &rtspserver.SharedContext{Sources: sources, Sessions: sessions, Server: serverHeader}
	srv, err := rtspserver.NewServer(cfg.Server.Addr(), ctx, rt)
	if err != nil {
		log.Error().Err(err).Msg("rtspd: failed to bind RTSP listener")
		return 1
	}
	log.Info().Str("addr", srv.Addr().String()).Msg("rtspd: listening")

	metricsSrv := &http.Server{Addr: *metricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("rtspd: metrics server failed")
		}
	}()

	serveErrCh := make(chan error, 1)
	go func() { serveErrCh <- srv.Serve() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("rtspd: shutting down")
	case err := <-serveErrCh:
		log.Error().Err(err).Msg("rtspd: listener stopped unexpectedly")
	}

	srv.Close()
	_ = metricsSrv.Close()
	sessions.Stop()
	sources.Stop()
	rt.Stop()

	return 0
}

// descriptorFor builds the rtpio.Descriptor this server knows how to open
// for a configured media item. Only Kind == file is backed by an in-repo
// reader; Kind == stream names a live network source whose demuxer is an
// opaque external collaborator (spec §1), so no Descriptor exists here for
// it yet.
func descriptorFor(media config.Media) (rtpio.Descriptor, error) {
	switch media.Kind {
	case config.KindFile:
		return rtpio.FileDescriptor{Path: media.Source, FPS: 25}, nil
	default:
		return nil, fmt.Errorf("media kind %q has no backing reader in this build", media.Kind)
	}
}

func setupLogging() {
	level := zerolog.InfoLevel
	if v := os.Getenv("LOG"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: colorable.NewColorableStdout()}).
		With().Timestamp().Logger()
}
