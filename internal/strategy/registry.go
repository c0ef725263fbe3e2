package strategy

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/optionsim/internal/models"
)

// Registry maps execution types to strategy implementations. It is built
// once at startup, immutable afterwards, and injected into the orchestrator.
// Lookups never fail: unknown tags fall back to buy & hold.
type Registry struct {
	strategies map[models.ExecutionType]Strategy
	fallback   Strategy
	logger     *logrus.Logger
}

// NewRegistry builds a registry from the given implementations, keyed by
// each implementation's own Type. The buy & hold implementation doubles as
// the fallback for unrecognized persisted tags.
func NewRegistry(logger *logrus.Logger, impls ...Strategy) *Registry {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	strategies := make(map[models.ExecutionType]Strategy, len(impls))
	for _, impl := range impls {
		strategies[impl.Type()] = impl
	}

	fallback, ok := strategies[models.ExecutionBuyHoldStock]
	if !ok {
		fallback = NewBuyHoldStrategy(logger)
		strategies[models.ExecutionBuyHoldStock] = fallback
	}

	return &Registry{
		strategies: strategies,
		fallback:   fallback,
		logger:     logger,
	}
}

// DefaultRegistry builds the registry with every builtin payoff model
func DefaultRegistry(logger *logrus.Logger) *Registry {
	return NewRegistry(logger,
		NewBuyHoldStrategy(logger),
		NewLongCallStrategy(logger),
	)
}

// Get returns the implementation for the execution type, or the buy & hold
// fallback with a warning when the tag is unknown
func (r *Registry) Get(executionType models.ExecutionType) Strategy {
	if impl, ok := r.strategies[executionType]; ok {
		return impl
	}
	r.logger.WithField("execution_type", executionType).
		Warn("Unknown strategy execution type, falling back to buy & hold")
	return r.fallback
}

// Types returns the registered execution types
func (r *Registry) Types() []models.ExecutionType {
	types := make([]models.ExecutionType, 0, len(r.strategies))
	for t := range r.strategies {
		types = append(types, t)
	}
	return types
}
