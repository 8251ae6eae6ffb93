package nodespec

import "fmt"

// Kind tags the type of output a node produces.
type Kind int

const (
	// DerivedParameter is a time series computed from other series.
	DerivedParameter Kind = iota
	// MultistateParameter is a discrete-state time series.
	MultistateParameter
	// KeyTimeInstance marks instants of interest (e.g. Liftoff).
	KeyTimeInstance
	// KeyPointValue is a value measured at an instant (e.g. Mach Max).
	KeyPointValue
	// FlightPhase is a set of intervals (e.g. Airborne).
	FlightPhase
	// Attribute is a scalar describing the whole flight.
	Attribute
)

var kindNames = map[Kind]string{
	DerivedParameter:    "derived_parameter",
	MultistateParameter: "multistate_parameter",
	KeyTimeInstance:     "key_time_instance",
	KeyPointValue:       "key_point_value",
	FlightPhase:         "flight_phase",
	Attribute:           "attribute",
}

// String returns the catalogue spelling of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a catalogue spelling back into a Kind. An empty string
// is a DerivedParameter.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return DerivedParameter, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}
