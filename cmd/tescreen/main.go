package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/craibuc/trustedemployee/pkg/notifier"
	"github.com/craibuc/trustedemployee/pkg/reportstore"
	"github.com/craibuc/trustedemployee/pkg/trustedemployee"
	util_log "github.com/craibuc/trustedemployee/pkg/util/log"
	util_xml "github.com/craibuc/trustedemployee/pkg/util/xml"
	gklog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v2"
)

type config struct {
	Client      trustedemployee.Config `yaml:"client"`
	ReportStore reportstore.Config     `yaml:"report_store"`
	Notifier    *notifier.Config       `yaml:"notifier"`
	Log         util_log.Config        `yaml:"log"`
}

func main() {
	var (
		configFile = flag.String("config", "tescreen.yaml", "path to the config file")
		verbose    = flag.Bool("verbose", false, "print the assembled request before sending")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	logger := util_log.NewDefaultLogger(cfg.Log.LogLevel, cfg.Log.LogFormat)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tescreen [-config file] [-verbose] submit|status|download|watch ...")
		os.Exit(2)
	}

	client, err := trustedemployee.New(cfg.Client, prometheus.NewPedanticRegistry(), logger)
	util_log.CheckFatal("creating client", err, logger)

	ctx := context.Background()

	switch args[0] {
	case "submit":
		err = runSubmit(ctx, client, logger, *verbose, args[1:])
	case "status":
		err = runStatus(ctx, client, cfg, logger, args[1:])
	case "download":
		err = runDownload(ctx, client, cfg, logger, args[1:])
	case "watch":
		err = runWatch(ctx, client, cfg, logger)
	default:
		err = errors.Errorf("unknown command: %s", args[0])
	}

	util_log.CheckFatal("running "+args[0], err, logger)
}

func loadConfig(path string) (*config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	cfg := &config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}

	if cfg.Log.LogLevel.String() == "" {
		_ = cfg.Log.LogLevel.Set("info")
	}
	if cfg.Log.LogFormat.String() == "" {
		_ = cfg.Log.LogFormat.Set("logfmt")
	}

	return cfg, nil
}

func runSubmit(ctx context.Context, client *trustedemployee.Client, logger gklog.Logger, verbose bool, args []string) error {
	if len(args) != 1 {
		return errors.New("submit requires an applicants file")
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrap(err, "read applicants file")
	}

	var applicants []trustedemployee.Applicant
	if err := yaml.Unmarshal(b, &applicants); err != nil {
		return errors.Wrap(err, "parse applicants file")
	}

	sub := client.NewSubmission()
	for i := range applicants {
		if err := sub.Add(&applicants[i]); err != nil {
			return errors.Wrapf(err, "applicant %d", i+1)
		}
	}

	if verbose {
		formatted, err := util_xml.Format(sub.Request())
		if err != nil {
			return errors.Wrap(err, "format request")
		}
		fmt.Fprintln(os.Stderr, formatted)
	}

	doc, err := sub.Send(ctx)
	if err != nil {
		return err
	}

	out, err := doc.WriteToString()
	if err != nil {
		return errors.Wrap(err, "serialize response")
	}

	fmt.Println(out)
	level.Info(logger).Log("msg", "batch submitted", "applicants", sub.Len())

	return nil
}

func runStatus(ctx context.Context, client *trustedemployee.Client, cfg *config, logger gklog.Logger, fileNos []string) error {
	if len(fileNos) == 0 {
		return errors.New("status requires at least one file number")
	}

	results, err := client.FetchStatus(ctx, fileNos)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.ErrorText != "":
			level.Warn(logger).Log("msg", "report error", "file_no", r.FileNo, "error_text", r.ErrorText)
		case r.Available():
			level.Info(logger).Log("msg", "report available", "file_no", r.FileNo)
		default:
			level.Info(logger).Log("msg", "report pending", "file_no", r.FileNo)
		}
	}

	if cfg.Notifier != nil {
		n, err := notifier.New(*cfg.Notifier, logger)
		if err != nil {
			return err
		}
		if err := n.NotifyAvailable(results); err != nil {
			return err
		}
	}

	return nil
}

func runDownload(ctx context.Context, client *trustedemployee.Client, cfg *config, logger gklog.Logger, fileNos []string) error {
	if len(fileNos) == 0 {
		return errors.New("download requires at least one file number")
	}

	store, err := reportstore.NewWriter(cfg.ReportStore)
	if err != nil {
		return err
	}

	results := client.DownloadReports(ctx, store, fileNos)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	level.Info(logger).Log("msg", "downloads finished", "total", len(results), "failed", failed)

	if failed > 0 {
		return errors.Errorf("%d of %d downloads failed", failed, len(results))
	}

	return nil
}

func runWatch(ctx context.Context, client *trustedemployee.Client, cfg *config, logger gklog.Logger) error {
	if cfg.Notifier == nil {
		return errors.New("watch requires a notifier config")
	}

	store, err := reportstore.NewWriter(cfg.ReportStore)
	if err != nil {
		return err
	}

	w, err := notifier.NewWatcher(*cfg.Notifier, logger)
	if err != nil {
		return err
	}

	err = w.Watch(func(fileNo string) {
		client.DownloadReports(ctx, store, []string{fileNo})
	})
	if err != nil {
		return err
	}

	level.Info(logger).Log("msg", "watching for available reports")
	select {}
}
