package apply

import (
	"context"
	"sync"
	"sync/atomic"

	"voltgui/internal/logging"
	"voltgui/internal/procexec"
	"voltgui/internal/reconcile"
)

// Completion reports the end of one helper run.
type Completion struct {
	Subsystem reconcile.Subsystem
	ExitCode  int
	Output    string
	Err       error
}

// OK reports whether the helper succeeded.
func (c Completion) OK() bool {
	return c.Err == nil && c.ExitCode == 0
}

// PanelState is what a front-end shows for one subsystem.
type PanelState struct {
	Applying bool
	// Applied is set once a run of this subsystem succeeded.
	Applied bool
	Last    *Completion
}

// Controller runs helper plans in the background, at most one per
// subsystem. A request for a busy subsystem is dropped, not queued.
type Controller struct {
	runner procexec.Runner
	logger *logging.Logger

	busy   map[reconcile.Subsystem]*atomic.Bool
	events chan Completion

	mu      sync.Mutex
	applied map[reconcile.Subsystem]bool
	last    map[reconcile.Subsystem]Completion
}

// NewController creates a controller. The runner must not impose a
// timeout: authentication prompts wait for the user.
func NewController(runner procexec.Runner, logger *logging.Logger) *Controller {
	c := &Controller{
		runner:  runner,
		logger:  logger,
		busy:    make(map[reconcile.Subsystem]*atomic.Bool, len(reconcile.Subsystems)),
		events:  make(chan Completion, len(reconcile.Subsystems)),
		applied: map[reconcile.Subsystem]bool{},
		last:    map[reconcile.Subsystem]Completion{},
	}
	for _, s := range reconcile.Subsystems {
		c.busy[s] = &atomic.Bool{}
	}
	return c
}

// Next waits for the next completion and releases its subsystem. A
// subsystem stays busy until its completion has been received, so at most
// one completion per subsystem is ever queued.
func (c *Controller) Next(ctx context.Context) (Completion, error) {
	select {
	case done := <-c.events:
		if flag, ok := c.busy[done.Subsystem]; ok {
			flag.Store(false)
		}
		return done, nil
	case <-ctx.Done():
		return Completion{}, ctx.Err()
	}
}

// Start launches plan in the background. It returns false when the plan
// has nothing to do or its subsystem is already applying.
func (c *Controller) Start(plan reconcile.HelperPlan) bool {
	if plan.AlreadyApplied || plan.Empty() {
		c.logger.Info("apply.skipped", "Nothing to apply", map[string]interface{}{
			"subsystem": string(plan.Subsystem),
		})
		return false
	}

	flag, ok := c.busy[plan.Subsystem]
	if !ok {
		c.logger.Warn("apply.unknown", "Unknown subsystem", map[string]interface{}{
			"subsystem": string(plan.Subsystem),
		})
		return false
	}
	if !flag.CompareAndSwap(false, true) {
		c.logger.Warn("apply.dropped", "Apply already in progress, request dropped", map[string]interface{}{
			"subsystem": string(plan.Subsystem),
		})
		return false
	}

	c.logger.Info("apply.start", "Starting privileged helper", map[string]interface{}{
		"subsystem": string(plan.Subsystem),
		"args":      plan.Args,
	})

	go func() {
		c.events <- c.run(context.Background(), plan)
	}()
	return true
}

// RunSync runs plan in the calling goroutine, ignoring the busy flag.
func (c *Controller) RunSync(ctx context.Context, plan reconcile.HelperPlan) Completion {
	if plan.Empty() {
		return Completion{Subsystem: plan.Subsystem}
	}
	return c.run(ctx, plan)
}

func (c *Controller) run(ctx context.Context, plan reconcile.HelperPlan) Completion {
	name, args := plan.Command()
	res := c.runner.Run(ctx, name, args...)

	done := Completion{
		Subsystem: plan.Subsystem,
		ExitCode:  res.ExitCode,
		Output:    res.Stdout,
		Err:       res.Err,
	}

	c.mu.Lock()
	c.last[plan.Subsystem] = done
	if done.OK() {
		c.applied[plan.Subsystem] = true
	}
	c.mu.Unlock()

	if done.OK() {
		c.logger.Info("apply.done", "Helper finished", map[string]interface{}{
			"subsystem": string(plan.Subsystem),
		})
	} else {
		payload := map[string]interface{}{
			"subsystem": string(plan.Subsystem),
			"exit_code": done.ExitCode,
		}
		if done.Err != nil {
			payload["error"] = done.Err.Error()
		}
		c.logger.Error("apply.failed", "Helper failed", payload)
	}
	return done
}

// Busy reports whether a plan for sub is running or its completion has not
// been received yet.
func (c *Controller) Busy(sub reconcile.Subsystem) bool {
	flag, ok := c.busy[sub]
	return ok && flag.Load()
}

// State returns the panel state of sub.
func (c *Controller) State(sub reconcile.Subsystem) PanelState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := PanelState{Applying: c.Busy(sub), Applied: c.applied[sub]}
	if last, ok := c.last[sub]; ok {
		st.Last = &last
	}
	return st
}

// Applied lists the subsystems with at least one successful run, in apply
// order.
func (c *Controller) Applied() []reconcile.Subsystem {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []reconcile.Subsystem
	for _, s := range reconcile.Subsystems {
		if c.applied[s] {
			out = append(out, s)
		}
	}
	return out
}
