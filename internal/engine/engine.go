// Package engine applies emission factors to activity documents and renders
// the per-category and overall totals.
package engine

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/footprint/internal/factors"
	"github.com/rshade/footprint/internal/greenops"
	"github.com/rshade/footprint/internal/ingest"
	"github.com/rshade/footprint/internal/logging"
)

// Engine computes emissions from a factor table and a suggestion table.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	table          *factors.Table
	suggestions    *factors.Suggestions
	strict         bool
	maxConcurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithStrict makes unknown activity names an error for their category
// instead of being skipped.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithMaxConcurrency computes up to n categories at once. Values below 2
// keep analysis sequential.
func WithMaxConcurrency(n int) Option {
	return func(e *Engine) { e.maxConcurrency = n }
}

// New returns an Engine over the given tables. Nil tables behave as empty.
func New(table *factors.Table, suggestions *factors.Suggestions, opts ...Option) *Engine {
	if table == nil {
		table = factors.NewTable(nil)
	}
	if suggestions == nil {
		suggestions = factors.NewSuggestions(nil)
	}
	e := &Engine{table: table, suggestions: suggestions}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefault returns an Engine over the built-in tables.
func NewDefault(opts ...Option) *Engine {
	return New(factors.Default(), factors.DefaultSuggestions(), opts...)
}

// Table returns the factor table the engine uses.
func (e *Engine) Table() *factors.Table { return e.table }

// SuggestAlternative returns the reduction suggestion for category, or
// factors.FallbackSuggestion when there is none.
func (e *Engine) SuggestAlternative(category string) string {
	return e.suggestions.For(factors.Category(category))
}

// ComputeCategoryEmission sums factor*quantity over the activities in details
// that the factor table knows for category. Unknown names are skipped unless
// the engine is strict.
//
// It returns *UnknownCategoryError when category is not in the table and
// *InvalidShapeError when details is not a mapping of name to non-negative
// number. In both cases the category has no subtotal.
func (e *Engine) ComputeCategoryEmission(category string, details any) (CategoryResult, error) {
	cat := factors.Category(category)
	if !e.table.HasCategory(cat) {
		return CategoryResult{}, &UnknownCategoryError{Category: category}
	}

	obj, ok := details.(ingest.Object)
	if !ok {
		return CategoryResult{}, &InvalidShapeError{
			Category: category,
			Reason:   "expected a mapping of activity to quantity, got " + describe(details),
		}
	}

	result := CategoryResult{Category: cat, Activities: []ActivityEmission{}}
	for _, field := range obj {
		factor, known := e.table.Factor(cat, field.Name)
		if !known {
			if e.strict {
				return CategoryResult{}, &UnknownActivityError{Category: category, Activity: field.Name}
			}
			result.Ignored = append(result.Ignored, field.Name)
			continue
		}

		qty, isNumber := field.Value.(float64)
		if !isNumber {
			return CategoryResult{}, &InvalidShapeError{
				Category: category,
				Reason:   fmt.Sprintf("quantity for %q is %s, not a number", field.Name, describe(field.Value)),
			}
		}
		if qty < 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
			return CategoryResult{}, &InvalidShapeError{
				Category: category,
				Reason:   fmt.Sprintf("quantity for %q must be a non-negative number", field.Name),
			}
		}

		emission := factor * qty
		result.Activities = append(result.Activities, ActivityEmission{
			Name:     field.Name,
			Quantity: qty,
			Factor:   factor,
			Emission: emission,
		})
		result.Subtotal += emission
	}

	result.Suggestion = e.suggestions.For(cat)
	return result, nil
}

// outcome is the per-entry result gathered before assembly.
type outcome struct {
	result CategoryResult
	err    error
}

// Analyze visits every category of doc exactly once, in document order.
// A failing category becomes a Warning, contributes nothing to the total and
// does not stop the remaining categories.
func (e *Engine) Analyze(ctx context.Context, doc *ingest.Document) *Result {
	log := logging.FromContext(ctx)

	res := &Result{Categories: []CategoryResult{}, Unit: Unit}
	if doc == nil {
		doc = &ingest.Document{}
	}
	res.Source = doc.Source

	outcomes := e.computeAll(doc.Entries)
	for i, o := range outcomes {
		key := doc.Entries[i].Name
		if o.err != nil {
			log.Debug().
				Ctx(ctx).
				Str("component", "engine").
				Str("operation", "analyze").
				Str("category", key).
				Err(o.err).
				Msg("skipping category")
			res.Warnings = append(res.Warnings, Warning{Category: key, Message: o.err.Error(), Err: o.err})
			continue
		}
		res.Categories = append(res.Categories, o.result)
		res.TotalKg += o.result.Subtotal
	}

	eq, err := greenops.Calculate(res.TotalKg)
	if err != nil {
		log.Warn().Ctx(ctx).Str("component", "engine").Err(err).Msg("equivalency calculation failed")
	} else if !eq.IsEmpty() {
		res.Equivalency = &eq
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Int("categories", len(res.Categories)).
		Int("warnings", len(res.Warnings)).
		Float64("total_kg", res.TotalKg).
		Msg("analysis complete")

	return res
}

// computeAll computes every entry, fanning out when maxConcurrency allows.
// Results are indexed by entry so assembly keeps document order.
func (e *Engine) computeAll(entries ingest.Object) []outcome {
	outcomes := make([]outcome, len(entries))

	if e.maxConcurrency < 2 || len(entries) < 2 {
		for i, entry := range entries {
			outcomes[i].result, outcomes[i].err = e.ComputeCategoryEmission(entry.Name, entry.Value)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(e.maxConcurrency)
	for i, entry := range entries {
		g.Go(func() error {
			outcomes[i].result, outcomes[i].err = e.ComputeCategoryEmission(entry.Name, entry.Value)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error
	return outcomes
}

// describe names the JSON type of v for diagnostics.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case ingest.Object:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
