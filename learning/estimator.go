// Package learning implements model-free Q-learning over states and actions
// observed one transition at a time.
package learning

import (
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Estimator stores Q-value estimates. Update moves the estimate of
// (state, action) towards sample, the observed one-step return.
type Estimator[S comparable, A comparable] interface {
	QValue(state S, action A) float64
	Update(state S, action A, sample, alpha float64)
}

type key[S comparable, A comparable] struct {
	state  S
	action A
}

// Table keeps one Q-value per (state, action) pair. Unseen pairs are worth 0.
type Table[S comparable, A comparable] struct {
	values map[key[S, A]]float64
}

func NewTable[S comparable, A comparable]() *Table[S, A] {
	return &Table[S, A]{values: make(map[key[S, A]]float64)}
}

func (t *Table[S, A]) QValue(state S, action A) float64 {
	return t.values[key[S, A]{state, action}]
}

func (t *Table[S, A]) Update(state S, action A, sample, alpha float64) {
	k := key[S, A]{state, action}
	t.values[k] = (1-alpha)*t.values[k] + alpha*sample
}

// Len is the number of pairs with a stored value.
func (t *Table[S, A]) Len() int {
	return len(t.values)
}

// FeatureExtractor decomposes a (state, action) pair into named features.
type FeatureExtractor[S comparable, A comparable] interface {
	Features(state S, action A) map[string]float64
}

// FeatureFunc adapts a function to a FeatureExtractor.
type FeatureFunc[S comparable, A comparable] func(state S, action A) map[string]float64

func (f FeatureFunc[S, A]) Features(state S, action A) map[string]float64 {
	return f(state, action)
}

// IdentityExtractor emits a single indicator feature per (state, action)
// pair, which makes a linear approximation behave like a table.
type IdentityExtractor[S comparable, A comparable] struct{}

func (IdentityExtractor[S, A]) Features(state S, action A) map[string]float64 {
	return map[string]float64{fmt.Sprintf("%v|%v", state, action): 1}
}

// LinearApproximation estimates Q(s, a) as the dot product of a weight
// vector with the features of (s, a). Pairs that share a feature name share
// its weight.
type LinearApproximation[S comparable, A comparable] struct {
	extractor FeatureExtractor[S, A]
	weights   map[string]float64
}

func NewLinearApproximation[S comparable, A comparable](extractor FeatureExtractor[S, A]) *LinearApproximation[S, A] {
	if extractor == nil {
		panic("feature extractor is nil")
	}
	return &LinearApproximation[S, A]{extractor: extractor, weights: make(map[string]float64)}
}

// aligned returns the feature names in a fixed order with the matching
// feature values and weights.
func (l *LinearApproximation[S, A]) aligned(features map[string]float64) (names []string, values, weights []float64) {
	names = slices.Sorted(maps.Keys(features))
	values = make([]float64, len(names))
	weights = make([]float64, len(names))
	for i, name := range names {
		values[i] = features[name]
		weights[i] = l.weights[name]
	}
	return names, values, weights
}

func (l *LinearApproximation[S, A]) QValue(state S, action A) float64 {
	_, values, weights := l.aligned(l.extractor.Features(state, action))
	if len(values) == 0 {
		return 0
	}
	return floats.Dot(weights, values)
}

func (l *LinearApproximation[S, A]) Update(state S, action A, sample, alpha float64) {
	names, values, weights := l.aligned(l.extractor.Features(state, action))
	if len(values) == 0 {
		return
	}
	correction := sample - floats.Dot(weights, values)

	// w += alpha * correction * features
	floats.AddScaled(weights, alpha*correction, values)
	for i, name := range names {
		l.weights[name] = weights[i]
	}
}

// Weight returns the weight of a feature, 0 if it was never updated.
func (l *LinearApproximation[S, A]) Weight(feature string) float64 {
	return l.weights[feature]
}

// Weights returns a copy of the weight vector.
func (l *LinearApproximation[S, A]) Weights() map[string]float64 {
	return maps.Clone(l.weights)
}
