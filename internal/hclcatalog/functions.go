package hclcatalog

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/flightgraph/internal/availability"
)

var namesAndSetParams = []function.Parameter{
	{Name: "names", Type: cty.List(cty.String)},
	{Name: "available", Type: cty.Set(cty.String)},
}

// allOfFunc is all_of(names, available): every name is in available.
var allOfFunc = function.New(&function.Spec{
	Params: namesAndSetParams,
	Type:   function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.BoolVal(countPresent(args[0], args[1]) == args[0].LengthInt()), nil
	},
})

// anyOfFunc is any_of(names, available): at least one name is in available.
var anyOfFunc = function.New(&function.Spec{
	Params: namesAndSetParams,
	Type:   function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.BoolVal(countPresent(args[0], args[1]) > 0), nil
	},
})

var functions = map[string]function.Function{
	"all_of":   allOfFunc,
	"any_of":   anyOfFunc,
	"contains": stdlib.ContainsFunc,
	"length":   stdlib.LengthFunc,
}

func countPresent(names, available cty.Value) int {
	n := 0
	for it := names.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if available.HasElement(v).True() {
			n++
		}
	}
	return n
}

func stringSet(names []string) cty.Value {
	if len(names) == 0 {
		return cty.SetValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(names))
	for i, n := range names {
		vals[i] = cty.StringVal(n)
	}
	return cty.SetVal(vals)
}

func stringList(names []string) cty.Value {
	if len(names) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(names))
	for i, n := range names {
		vals[i] = cty.StringVal(n)
	}
	return cty.ListVal(vals)
}

func evalContext(available availability.Set, deps []string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"available":    stringSet(available.Names()),
			"dependencies": stringList(deps),
		},
		Functions: functions,
	}
}
