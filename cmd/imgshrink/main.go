package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/put0/imgshrink/config"
	"github.com/put0/imgshrink/metrics"
	"github.com/put0/imgshrink/optimize"
	"github.com/put0/imgshrink/sentry"
	"github.com/put0/imgshrink/util"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	reporting := sentry.Init()
	defer sentry.PanicHandler()

	var configFile, manifest string
	var quality int
	var exclude stringList
	flag.StringVar(&configFile, "config", "", "Path to a JSON config file.")
	flag.IntVar(&quality, "quality", 0, "Lossy WebP quality, 0 to 100 (default 80).")
	flag.Var(&exclude, "exclude", "Glob of root-relative paths to leave untouched. Can be repeated.")
	flag.StringVar(&manifest, "manifest", "", "If set, a JSON list of converted files is written there.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <root>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if util.IsDebug() {
		fmt.Println("Running in debug mode")
		if reporting {
			fmt.Println("Reporting failures to Sentry")
		}
	}

	cfg := config.Default()
	if configFile != "" {
		f, err := config.ReadFile(configFile)
		if err != nil {
			log.Fatalf("could not read config: %s", err)
		}
		cfg.Apply(f)
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "quality":
			cfg.Quality = quality
		case "exclude":
			cfg.Exclude = append(cfg.Exclude, exclude...)
		case "manifest":
			cfg.Manifest = manifest
		}
	})
	if root := flag.Arg(0); root != "" {
		cfg.Root = root
	}
	if cfg.Root == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	if reporting {
		sentry.SetRoot(cfg.Root)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = util.ContextWithEntries(ctx, util.GetStandardEntries(util.GetConsoleLogger())...)

	summary, err := optimize.Run(ctx, cfg, optimize.WebpEncoder{Options: cfg.Options()})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("could not shrink %s: %s", cfg.Root, err)
	}

	if cfg.Manifest != "" {
		if err := optimize.WriteManifest(cfg.Manifest, cfg.Root, summary); err != nil {
			log.Printf("failed to write manifest: %s", err)
		}
	}

	if util.HasMetrics() {
		if err := metrics.PushRun(metrics.RunCounters{
			Converted:  summary.Converted,
			Discarded:  summary.Discarded,
			Failed:     summary.Failed,
			SavedBytes: summary.SavedBytes,
		}); err != nil {
			log.Printf("failed to push metrics: %s", err)
		}
	}

	if ctx.Err() != nil {
		os.Exit(130)
	}
}
