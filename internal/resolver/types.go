package resolver

import "fmt"

// Status is the three-valued result of resolving a name.
type Status int

const (
	// Unresolved is the zero value; a resolved graph never reports it.
	Unresolved Status = iota
	// Operable names will be computed or are recorded.
	Operable
	// Inoperable registered nodes failed their predicate or sit on a cycle.
	Inoperable
	// Unavailable leaves are not present in the recording.
	Unavailable
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Operable:
		return "operable"
	case Inoperable:
		return "inoperable"
	case Unavailable:
		return "unavailable"
	default:
		return "unresolved"
	}
}

// Reason says why a name is not operable.
type Reason int

const (
	// ReasonNone is reported for operable names.
	ReasonNone Reason = iota
	// ReasonNotRecorded: leaf absent from the recording.
	ReasonNotRecorded
	// ReasonPredicate: canOperate returned false.
	ReasonPredicate
	// ReasonCircular: reached again while on its own active path.
	ReasonCircular
	// ReasonUnregistered: requested target that is neither registered nor recorded.
	ReasonUnregistered
)

// String returns the reason as shown in reports; empty for ReasonNone.
func (r Reason) String() string {
	switch r {
	case ReasonNotRecorded:
		return "not recorded"
	case ReasonPredicate:
		return "predicate"
	case ReasonCircular:
		return "circular"
	case ReasonUnregistered:
		return "unregistered"
	default:
		return ""
	}
}

// Outcome is the memoised result for one name.
type Outcome struct {
	Status Status
	Reason Reason
}

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind int

const (
	// Circular reports a dependency cycle.
	Circular DiagnosticKind = iota
	// Unregistered reports a target nobody can satisfy.
	Unregistered
)

func (k DiagnosticKind) String() string {
	if k == Circular {
		return "circular"
	}
	return "unregistered"
}

// Diagnostic is a non-fatal finding produced during resolution.
type Diagnostic struct {
	Kind DiagnosticKind
	// Node is the name forced inoperable or the unsatisfiable target.
	Node string
	// Cycle is the closed path for Circular diagnostics, e.g.
	// [Heading, Heading True, Heading].
	Cycle   []string
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}

// Options tune a resolution pass.
type Options struct {
	// IncludeRoot appends the synthetic root to Order, for diagnostics.
	IncludeRoot bool
	// CheckPredicates evaluates every predicate twice and panics if the two
	// answers differ.
	CheckPredicates bool
}

// Result is the output of Resolve.
type Result struct {
	// Order lists operable names so that dependencies come first.
	Order       []string
	Outcomes    map[string]Outcome
	Diagnostics []Diagnostic
}

// Outcome returns the outcome recorded for name.
func (r *Result) Outcome(name string) Outcome {
	return r.Outcomes[name]
}

// Operable reports whether name resolved operable.
func (r *Result) Operable(name string) bool {
	return r.Outcomes[name].Status == Operable
}

// Count returns how many names resolved to status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

func circularMessage(cycle []string) string {
	msg := "circular dependency: "
	for i, n := range cycle {
		if i > 0 {
			msg += " -> "
		}
		msg += n
	}
	return msg
}

func unregisteredMessage(name string) string {
	return fmt.Sprintf("requested target %q is neither a registered node nor a recorded parameter", name)
}
