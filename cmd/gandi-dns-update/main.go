// Command gandi-dns-update points the A records of a set of dynamic items at
// the caller's current public IPv4 address, using Gandi LiveDNS as the
// registrar. It is meant to run unattended from cron or a similar scheduler;
// each invocation is a complete, stateless reconciliation pass.
//
// The exit code tells the scheduler what happened: 0 when every record was
// already current, 2 when updates were applied successfully, 1 on a fatal
// error or when any single record failed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/bwolf/gandi-dns-update/config"
	"github.com/bwolf/gandi-dns-update/discover"
	"github.com/bwolf/gandi-dns-update/gandi"
	"github.com/bwolf/gandi-dns-update/resolver"
	"github.com/bwolf/gandi-dns-update/updater"
)

const programName = "gandi-dns-update"

const (
	exitNoChange = 0
	exitFatal    = 1
	exitUpdated  = 2
)

type options struct {
	helpFlag     bool
	versionFlag  bool
	debugFlag    bool
	dryRunFlag   bool
	recursive    string
	queryTimeout time.Duration
}

func parseOptions(args []string, out *os.File) (*options, int, bool) {
	opts := &options{}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.BoolVarP(&opts.helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&opts.versionFlag, "version", "v", false, "Print version")
	fs.BoolVar(&opts.debugFlag, "log-debug", false, "Log every DNS and HTTP exchange")
	fs.BoolVarP(&opts.dryRunFlag, "dry-run", "n", false,
		"Report records needing update without writing to the registrar")
	fs.StringVar(&opts.recursive, "recursive-server", discover.DefaultRecursiveServer,
		"Trusted recursive DNS server for bootstrap lookups")
	fs.DurationVar(&opts.queryTimeout, "query-timeout", resolver.QueryTimeout,
		"Deadline applied to each individual DNS query")

	if err := fs.Parse(args); err != nil {
		return nil, exitFatal, true
	}
	if opts.helpFlag {
		fmt.Fprintln(out, programName, "- keep Gandi A records pointed at this host's public IP")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Configuration comes from the environment: GANDI_API_KEY,")
		fmt.Fprintln(out, "DOMAIN_FQDN (with trailing dot), DOMAIN_DYNAMIC_ITEMS (comma-separated)")
		fmt.Fprintln(out, "and optionally DOMAIN_IP to skip public IP discovery.")
		fmt.Fprintln(out)
		fs.PrintDefaults()
		return nil, exitNoChange, true
	}
	if opts.versionFlag {
		fmt.Fprintf(out, "%s %s (%s)\n", programName, Version, ReleaseDate)
		return nil, exitNoChange, true
	}

	return opts, 0, false
}

func main() {
	opts, code, stop := parseOptions(os.Args[1:], os.Stderr)
	if stop {
		os.Exit(code)
	}

	logger := newLogger(opts.debugFlag)
	os.Exit(run(context.Background(), opts, logger))
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

func run(ctx context.Context, opts *options, logger zerolog.Logger) int {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return exitFatal
	}

	res := resolver.New(logger, opts.queryTimeout)
	disc := discover.New(res, opts.recursive, logger)
	registrar := gandi.New(cfg.APIKey, logger)

	result, err := updater.New(cfg, disc, registrar, logger, opts.dryRunFlag).Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return exitFatal
	}

	updated := result.Count(updater.Updated)
	failed := result.Count(updater.UpdateFailed)
	skipped := result.Count(updater.Skipped)

	logger.Info().
		Stringer("public_ip", result.PublicIP).
		Int("up_to_date", result.Count(updater.UpToDate)).
		Int("updated", updated).
		Int("failed", failed).
		Int("skipped", skipped).
		Msg("run complete")

	return exitCode(result)
}

// exitCode maps a run's outcome onto the process exit contract.
func exitCode(result *updater.Result) int {
	switch {
	case !result.OK():
		return exitFatal
	case result.Count(updater.Updated) > 0:
		return exitUpdated
	}

	return exitNoChange
}
