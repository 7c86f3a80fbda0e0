package teamsplit

// Option configures a Planner with optional dependencies.
type Option func(*plannerOptions)

// plannerOptions holds optional Planner configuration.
type plannerOptions struct {
	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger
	strategy AssignmentStrategy
}

// WithHooks sets planner event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	hooks := &teamsplit.Hooks{
//	    OnFallback: func(ctx context.Context, roster, from, to string, cause error) error {
//	        alert.Send(roster + ": " + cause.Error())
//	        return nil
//	    },
//	}
//	planner, err := teamsplit.NewPlanner(&cfg, src, teamsplit.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *plannerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// The collector is shared by the Planner and both engines.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.NewRegistry(), "teamsplit")
//	planner, err := teamsplit.NewPlanner(&cfg, src, teamsplit.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *plannerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	planner, err := teamsplit.NewPlanner(&cfg, src, teamsplit.WithLogger(logging.NewSlogDefault()))
func WithLogger(logger Logger) Option {
	return func(o *plannerOptions) {
		o.logger = logger
	}
}

// WithStrategy replaces automatic engine selection with a fixed strategy.
//
// Config.Strategy is ignored and no fallback happens.
//
// Parameters:
//   - strategy: AssignmentStrategy implementation
//
// Returns:
//   - Option: Functional option for NewPlanner
func WithStrategy(strategy AssignmentStrategy) Option {
	return func(o *plannerOptions) {
		o.strategy = strategy
	}
}
