package filter

import (
	"context"

	"github.com/s0up4200/goplaces/places"
)

// Filter defines the basic interface for spot filters
type Filter interface {
	// Evaluate checks if a spot matches the filter criteria
	Evaluate(spot *places.Spot) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the filter expression as written
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against spots
type Evaluator interface {
	// Evaluate returns the spots matching filter, in their input order
	Evaluate(ctx context.Context, filter CompiledFilter, spots []*places.Spot) ([]*places.Spot, error)
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator interface {
	// EvaluateBatch evaluates multiple filters against spots concurrently
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, spots []*places.Spot) (map[string][]*places.Spot, error)
}
