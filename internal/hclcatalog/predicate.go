package hclcatalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/flightgraph/internal/availability"
	"github.com/specialistvlad/flightgraph/internal/nodespec"
)

// isAbsent reports whether expr is the null placeholder gohcl assigns to an
// optional hcl.Expression field that was not written.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if len(expr.Variables()) > 0 {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

// evaluate runs expr against one availability set.
func evaluate(expr hcl.Expression, available availability.Set, deps []string) (bool, error) {
	v, diags := expr.Value(evalContext(available, deps))
	if diags.HasErrors() {
		return false, diags
	}
	b, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("%s: can_operate must be a bool: %w", expr.Range(), err)
	}
	if b.IsNull() || !b.IsKnown() {
		return false, fmt.Errorf("%s: can_operate must be a known, non-null bool", expr.Range())
	}
	return b.True(), nil
}

// compilePredicate turns a can_operate expression into a nodespec.Predicate.
// The expression is trial-run against no dependencies and all dependencies
// so that type and reference errors surface at load time.
func compilePredicate(expr hcl.Expression, deps []string) (nodespec.Predicate, error) {
	if isAbsent(expr) {
		return nil, nil
	}
	for _, trial := range []availability.Set{availability.New(), availability.New(deps...)} {
		if _, err := evaluate(expr, trial, deps); err != nil {
			return nil, err
		}
	}
	return func(available availability.Set) bool {
		ok, err := evaluate(expr, available, deps)
		return err == nil && ok
	}, nil
}
