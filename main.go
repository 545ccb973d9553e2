package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"

	"github.com/coastalhacks/tideclock/pkg/config"
	"github.com/coastalhacks/tideclock/pkg/daemon"
	"github.com/coastalhacks/tideclock/pkg/display"
	"github.com/coastalhacks/tideclock/pkg/handlers"
	"github.com/coastalhacks/tideclock/pkg/localtime"
	"github.com/coastalhacks/tideclock/pkg/logger"
	"github.com/coastalhacks/tideclock/pkg/metrics"
	"github.com/coastalhacks/tideclock/pkg/noaa"
	"github.com/coastalhacks/tideclock/pkg/store"
	"github.com/coastalhacks/tideclock/pkg/sunset"
	"github.com/coastalhacks/tideclock/pkg/visualize"
)

const shutdownTimeout = 10 * time.Second

func main() {
	settings := flag.String("settings", config.DefaultFile, "settings file to load before the environment")
	flag.Parse()

	cfg, err := config.Load(*settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't load config: %v\n", err)
		os.Exit(1)
	}

	log, sync, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't build logger: %v\n", err)
		os.Exit(1)
	}
	defer sync()

	m := metrics.New()
	clock := clockwork.NewRealClock()

	timebase := localtime.New(clock, cfg.Location(), cfg.NTPServer, log)
	if cfg.NTPSync {
		if err := timebase.Sync(); err != nil {
			m.NTPSyncTotal.WithLabelValues("error").Inc()
			log.Warnf("can't sync clock, running on system time: %v", err)
		} else {
			m.NTPSyncTotal.WithLabelValues("success").Inc()
		}
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("can't open day cache %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	client := noaa.NewClient(noaa.ClientOptions{
		Timeout:       cfg.FetchTimeout,
		RetryCount:    cfg.RetryCount,
		RetryWaitTime: cfg.RetryWait,
		RetryMaxWait:  cfg.RetryMaxWait,
	}, log)

	var sinks display.Fanout
	if cfg.Console {
		sinks = append(sinks, display.NewConsole(os.Stdout))
	}
	if cfg.MQTT.Enabled {
		mq, err := display.NewMQTT(cfg.MQTT)
		if err != nil {
			log.Fatalf("can't connect to MQTT broker: %v", err)
		}
		sinks = append(sinks, mq)
	}
	defer sinks.Close()

	runner := daemon.New(daemon.Options{
		Station:        noaa.Station(cfg.Station),
		UpdateInterval: cfg.UpdateInterval,
		TickInterval:   cfg.TickInterval,
		RenderMode:     cfg.RenderMode,
		Scheme:         visualize.Scheme(cfg.ColorScheme),
		MaxFailures:    cfg.MaxFailures,
	}, client, sinks, db, timebase, clock, log, m)

	r := mux.NewRouter().StrictSlash(true)
	handlers.Register(r, runner, m, handlers.Options{
		Place:  sunset.Place{Lat: cfg.Lat, Long: cfg.Lon},
		Logger: log,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: m.LatencyHandler(r),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("status server listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("status server: %v", err)
		}
	}()

	go func() {
		log.Infof("tide clock starting for station %d", cfg.Station)
		if err := runner.Run(ctx); err != nil {
			log.Errorf("tide loop: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("status server shutdown: %v", err)
	}
}
