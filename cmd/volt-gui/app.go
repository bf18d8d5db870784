package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"voltgui/internal/apply"
	"voltgui/internal/catalog"
	"voltgui/internal/config"
	"voltgui/internal/configdir"
	"voltgui/internal/fsutil"
	"voltgui/internal/logging"
	"voltgui/internal/options"
	"voltgui/internal/procexec"
	"voltgui/internal/profile"
	"voltgui/internal/reconcile"
	"voltgui/internal/sysfs"
)

// app is the component graph shared by the TUI and every subcommand.
type app struct {
	cfg    config.Config
	logger *logging.Logger

	set        *catalog.Set
	reader     *sysfs.Reader
	query      procexec.Runner
	planner    *reconcile.Planner
	controller *apply.Controller
	profiles   *profile.Store
	options    *options.Store
	userDir    string
	stateDir   string
}

// newRunners returns the bounded runner used for queries and the unbounded
// one used for the helper. Tests replace it.
var newRunners = func(cfg config.Config, logger *logging.Logger) (query, privileged procexec.Runner) {
	r := procexec.NewExecRunner(cfg.ProcessTimeout(), cfg.Paths.BundleDir, logger)
	return r, r.Unbounded()
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func newApp(cfg config.Config, logger *logging.Logger) (*app, error) {
	set, err := catalog.New(catalog.Options{SchedulerSearch: cfg.Paths.SchedulerSearch})
	if err != nil {
		return nil, fmt.Errorf("build catalogs: %w", err)
	}

	query, privileged := newRunners(cfg, logger)
	reader := sysfs.NewReader(cfg.Paths.SysfsRoot, cfg.Paths.ICDDir, logger)
	helper := reconcile.Helper{Elevator: cfg.Helper.Elevator, Path: cfg.Helper.Path}
	userDir := configdir.UserDir()

	return &app{
		cfg:        cfg,
		logger:     logger,
		set:        set,
		reader:     reader,
		query:      query,
		planner:    reconcile.NewPlanner(set, reader, query, helper, logger),
		controller: apply.NewController(privileged, logger),
		profiles:   profile.NewStore(userDir, set, logger),
		options:    options.NewStore(userDir, logger),
		userDir:    userDir,
		stateDir:   fsutil.StateDir(),
	}, nil
}

// cliApp builds the app for a non-interactive command, logging to stderr.
func cliApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLoggerTo(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Logging.Level))
	return newApp(cfg, logger)
}

// activeProfile returns the remembered profile, or Default when the
// remembered one no longer exists.
func (a *app) activeProfile() string {
	opts, err := a.options.Load()
	if err != nil || opts.LastActiveProfile == "" || !a.profiles.Exists(opts.LastActiveProfile) {
		return profile.DefaultName
	}
	return opts.LastActiveProfile
}

// selections loads a named profile. Only Default may be missing.
func (a *app) selections(name string) (profile.Selections, error) {
	if name == "" {
		name = a.activeProfile()
	}
	sel, ok, err := a.profiles.Load(name)
	if err != nil {
		return sel, err
	}
	if !ok && name != profile.DefaultName {
		return sel, fmt.Errorf("%w: %s", profile.ErrNotFound, name)
	}
	return sel, nil
}

func (a *app) envScript(sel profile.Selections) reconcile.EnvScript {
	return reconcile.BuildEnvScript(a.set, sel.GPU, sel.LaunchOptions, a.cfg.Paths.ICDDir, a.logger)
}

// plan builds the helper plan for one subsystem. The GPU plan writes the
// environment file first.
func (a *app) plan(ctx context.Context, sub reconcile.Subsystem, sel profile.Selections) (reconcile.HelperPlan, error) {
	switch sub {
	case reconcile.SubsystemCPU:
		return a.planner.PlanCPU(ctx, sel.CPU), nil
	case reconcile.SubsystemKernel:
		return a.planner.PlanKernel(sel.Kernel), nil
	case reconcile.SubsystemDisk:
		return a.planner.PlanDisk(sel.Disk), nil
	}

	path, err := a.envScript(sel).WriteTemp(a.cfg.Paths.ScriptDir)
	if err != nil {
		return reconcile.HelperPlan{}, fmt.Errorf("write environment file: %w", err)
	}
	return a.planner.PlanGPU(path), nil
}
