package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gruis/nsetrack/config"
	"github.com/gruis/nsetrack/httpx"
	"github.com/gruis/nsetrack/report"
	"github.com/gruis/nsetrack/runner"
	"github.com/gruis/nsetrack/source"
	"github.com/gruis/nsetrack/tracker"
)

const AppName = config.DefaultName

const (
	modeMenu     = "menu"
	modeSchedule = "schedule"
	modeOnce     = "once"
)

type AppConfig struct {
	Indices       []tracker.Index `mapstructure:"indices"`
	Schedule      []string        `mapstructure:"schedule"`
	Timezone      string          `mapstructure:"timezone"`
	PollInterval  time.Duration   `mapstructure:"poll-interval"`
	HTTPTimeout   time.Duration   `mapstructure:"http-timeout"`
	NSEURL        string          `mapstructure:"nse-url"`
	FallbackCodes []string        `mapstructure:"fallback-codes"`
	OutputDir     string          `mapstructure:"output-dir"`
	Mode          string          `mapstructure:"mode"`
}

func init() {
	config.AddStringSlice("schedule", []string{"09:15", "15:30"}, "daily update times (HH:MM)")
	config.AddString("timezone", "Asia/Kolkata", "time zone the schedule is expressed in")
	config.AddDuration("poll-interval", runner.DefaultInterval, "how often the scheduler checks for due updates")
	config.AddDuration("http-timeout", 15*time.Second, "timeout for a single provider request")
	config.AddString("nse-url", source.DefaultNSEURL, "base URL of the NSE index quote API")
	config.AddStringSlice("fallback-codes", source.DefaultCodes, "index codes the NSE fallback will serve")
	config.AddString("output-dir", ".", "directory for summary files saved without a name")
	config.AddString("mode", modeMenu, "run mode; choices: menu, schedule, once")
}

// app is everything wired from one AppConfig
type app struct {
	tracker   *tracker.Tracker
	reporter  *report.Reporter
	scheduler *runner.Scheduler
}

func build(cfg AppConfig) (*app, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}

	hc := httpx.New(cfg.HTTPTimeout)
	logger := log.StandardLogger()

	tr := tracker.New(tracker.Tracker{
		Indices:  cfg.Indices,
		Primary:  source.NewYahoo(source.NewFinanceClient(hc.HTTP), loc, logger),
		Fallback: source.NewNSE(source.NSEConfig{BaseURL: cfg.NSEURL, Codes: cfg.FallbackCodes}, hc),
		Logger:   logger,
	})

	sched := runner.NewScheduler(runner.Scheduler{
		Location: loc,
		Interval: cfg.PollInterval,
		Logger:   logger,
	})
	for _, at := range cfg.Schedule {
		if err := sched.At(at, func(ctx context.Context) { tr.Update(ctx) }); err != nil {
			return nil, err
		}
	}

	return &app{
		tracker:   tr,
		reporter:  report.New(report.Reporter{Tracker: tr, OutputDir: cfg.OutputDir, Logger: logger}),
		scheduler: sched,
	}, nil
}

// untilSignal is canceled on SIGINT or SIGTERM
func untilSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func run(ctx context.Context, cfg AppConfig) error {
	a, err := build(cfg)
	if err != nil {
		return err
	}

	switch cfg.Mode {
	case modeMenu, "":
		m := newMenu(a, os.Stdin, os.Stdout)
		m.untilSignal = untilSignal
		return m.Run(ctx)
	case modeSchedule:
		sctx, stop := untilSignal(ctx)
		defer stop()
		return a.scheduler.Run(sctx)
	case modeOnce:
		a.tracker.Update(ctx)
		return a.reporter.Summary(ctx, os.Stdout)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func main() {
	if err := config.Load(AppName); err != nil {
		log.WithError(err).Error("cannot load configuration")
		os.Exit(1)
	}
	log.WithField("args", flag.Args()).Debug("command line parsed")

	var appConfig AppConfig
	if err := viper.Unmarshal(&appConfig); err != nil {
		log.WithError(err).Error("cannot parse configuration")
		os.Exit(1)
	}

	if err := run(context.Background(), appConfig); err != nil {
		log.WithError(err).Error("exiting")
		os.Exit(1)
	}
}
