package realize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStructure is returned by ParseStructure for unsupported names.
var ErrUnknownStructure = errors.New("realize: unknown structure")

// Structure selects how a design is realized.
type Structure int

const (
	// DirectForm realizes (b, a) as a single recursion.
	DirectForm Structure = iota
	// Cascade realizes the design as second-order sections.
	Cascade
)

// String returns "direct" or "cascade", the names used in exported files.
func (s Structure) String() string {
	switch s {
	case DirectForm:
		return "direct"
	case Cascade:
		return "cascade"
	default:
		return fmt.Sprintf("Structure(%d)", int(s))
	}
}

// ParseStructure accepts "direct", "df2", "cascade" and "sos",
// case-insensitively.
func ParseStructure(name string) (Structure, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct", "direct-form", "df2":
		return DirectForm, nil
	case "cascade", "sos":
		return Cascade, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStructure, name)
	}
}
