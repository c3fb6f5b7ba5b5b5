package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/cmd/dflagsdemo/internal/server"
	"github.com/apstndb/dflags/cmd/dflagsdemo/internal/storage"
	"github.com/apstndb/dflags/conversion"
	"github.com/apstndb/dflags/scan"
	"github.com/apstndb/dflags/usage"
)

const owner = "dflagsdemo"

type options struct {
	Dump   *dflags.Flag[bool]   `desc:"print the parsed configuration"`
	Line   *dflags.Flag[string] `desc:"more arguments as one shell-quoted string"`
	Strict *dflags.Flag[bool]   `desc:"fail on unknown, ambiguous and value-less flags"`
}

func (*options) FlagDescription() string {
	return "Demo settings"
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	logger *zap.Logger

	registry    *dflags.Registry
	conversions *conversion.Table
	opts        *options
	server      *server.Flags
	storage     *storage.Flags
}

func newApp(stdout, stderr io.Writer, fs afero.Fs, logger *zap.Logger) (*app, error) {
	r := dflags.NewRegistry()
	conversions := conversion.NewTable()
	server.RegisterConversions(conversions)
	storage.RegisterConversions(conversions)

	opts := &options{}
	if err := scan.Struct(r, opts, scan.WithOwner(owner)); err != nil {
		return nil, err
	}
	srv, err := server.Register(r, conversions)
	if err != nil {
		return nil, err
	}

	return &app{
		stdout:      stdout,
		stderr:      stderr,
		fs:          fs,
		logger:      logger,
		registry:    r,
		conversions: conversions,
		opts:        opts,
		server:      srv,
		storage:     storage.Register(r),
	}, nil
}

func (a *app) parse(args []string) (*dflags.Result, error) {
	res, err := dflags.NewParser(a.registry,
		dflags.WithConversions(a.conversions),
		dflags.WithLogger(a.logger),
		dflags.WithErrorPolicy(dflags.PolicyCollect),
	).Parse(args)
	if err != nil {
		return nil, NewExitCodeError(exitCodeUsage, err)
	}
	return res, nil
}

type snapshot struct {
	Server  server.Config
	Storage storage.Config
	Args    []string
}

func (a *app) run(args []string) error {
	res, err := a.parse(args)
	if err != nil {
		return err
	}
	positionals, problems := res.Args, res.Problems

	if line := a.opts.Line.Get(); line != "" {
		extra, err := shellquote.Split(line)
		if err != nil {
			return NewExitCodeError(exitCodeUsage, fmt.Errorf("--line: %w", err))
		}
		res, err := a.parse(extra)
		if err != nil {
			return err
		}
		positionals = append(positionals, res.Args...)
		problems = append(problems, res.Problems...)
	}

	if len(problems) > 0 {
		if a.opts.Strict.Get() {
			return NewExitCodeError(exitCodeUsage, errors.Join(problems...))
		}
		for _, p := range problems {
			fmt.Fprintf(a.stderr, "warning: %v\n", p)
		}
	}

	s := snapshot{
		Server:  a.server.Config(),
		Storage: a.storage.Config(),
		Args:    positionals,
	}
	a.logger.Info("configured",
		zap.String("addr", s.Server.Addr),
		zap.String("dir", s.Storage.Dir),
		zap.Int("args", len(s.Args)))

	if a.opts.Dump.Get() {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		_, err := printer.Fprintln(a.stdout, s)
		return err
	}

	_, err = fmt.Fprintf(a.stdout, "serving %s, storing in %s\nargs: %s\n",
		s.Server.Addr, s.Storage.Dir, shellquote.Join(s.Args...))
	return err
}

func (a *app) printUsage(format, output, prefix string) error {
	f, err := usage.ParseFormat(format)
	if err != nil {
		return NewExitCodeError(exitCodeUsage, err)
	}

	opts := []usage.Option{usage.WithFormat(f), usage.WithOwnerPrefix(prefix)}
	if output == "" {
		return usage.New(a.stdout, opts...).Print(a.registry)
	}

	file, err := a.fs.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer file.Close()

	if err := usage.New(file, append(opts, usage.WithColor(false))...).Print(a.registry); err != nil {
		return err
	}
	return file.Close()
}
