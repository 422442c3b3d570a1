package indicator

import (
	"slices"
	"sync"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// IndicatorRegistry resolves indicator names used in rule operands.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name IndicatorType) (Indicator, error)
	ListIndicators() []IndicatorType
	RemoveIndicator(name IndicatorType) error
}

type indicatorRegistry struct {
	mu         sync.RWMutex
	indicators map[IndicatorType]Indicator
}

// NewIndicatorRegistry creates an empty registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &indicatorRegistry{indicators: map[IndicatorType]Indicator{}}
}

// NewDefaultIndicatorRegistry creates a registry holding every built-in indicator.
func NewDefaultIndicatorRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()

	for _, ind := range []Indicator{
		NewClose(),
		NewVolume(),
		NewMA(),
		NewVolumeMA(),
		NewEMA(),
		NewRSI(),
		NewMomentum(),
		NewBollingerUpper(),
		NewBollingerLower(),
		NewDonchianHigh(),
		NewDonchianLow(),
	} {
		// names are unique
		_ = registry.RegisterIndicator(ind)
	}

	return registry
}

func (r *indicatorRegistry) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, ok := r.indicators[name]; ok {
		return errors.Newf(errors.ErrCodeInvalidParameter, "indicator %s is already registered", name)
	}

	r.indicators[name] = indicator

	return nil
}

func (r *indicatorRegistry) GetIndicator(name IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ind, ok := r.indicators[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s not found", name)
	}

	return ind, nil
}

// ListIndicators returns the registered names in lexical order.
func (r *indicatorRegistry) ListIndicators() []IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]IndicatorType, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (r *indicatorRegistry) RemoveIndicator(name IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.indicators[name]; !ok {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s not found", name)
	}

	delete(r.indicators, name)

	return nil
}
