package strategy

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Constructor builds a fresh Strategy from YAML params.
type Constructor func(params []byte) (Strategy, error)

// Registry maps strategy names to constructors.
type Registry interface {
	Register(name string, constructor Constructor) error
	Create(name string, params []byte) (Strategy, error)
	List() []string
}

type registryV1 struct {
	constructors map[string]Constructor
	mu           sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() Registry {
	return &registryV1{
		constructors: make(map[string]Constructor),
	}
}

// NewDefaultRegistry creates a registry holding every built-in strategy.
func NewDefaultRegistry() Registry {
	r := NewRegistry()

	builtins := map[string]Constructor{
		NameSMACrossover:   NewSMACrossover,
		NameRSI:            NewRSI,
		NameMACD:           NewMACD,
		NameBollingerBands: NewBollingerBands,
		NameBreakout:       NewBreakout,
		NameRuleBased:      NewRuleBased,
	}

	for name, constructor := range builtins {
		_ = r.Register(name, constructor)
	}

	return r
}

func (r *registryV1) Register(name string, constructor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "strategy %s already registered", name)
	}

	r.constructors[name] = constructor

	return nil
}

// Create returns a new instance, so concurrent runs never share strategy state.
func (r *registryV1) Create(name string, params []byte) (Strategy, error) {
	r.mu.RLock()
	constructor, exists := r.constructors[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
	}

	return constructor(params)
}

func (r *registryV1) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
