// Package plate represents a vehicle license plate in the system. Both the
// legacy format (ABC1234) and the Mercosul format (ABC1D23) are accepted.
package plate

import (
	"fmt"
	"regexp"
	"strings"
)

// Plate represents a license plate in the system.
type Plate struct {
	value string
}

// String returns the value of the plate.
func (p Plate) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Plate) Equal(p2 Plate) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Plate) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// =============================================================================

var plateRegEx = regexp.MustCompile(`^[A-Z]{3}[0-9][0-9A-Z][0-9]{2}$`)

// Parse parses the string value and returns a plate if the value complies
// with the rules for a license plate. Hyphens and case are normalized.
func Parse(value string) (Plate, error) {
	value = strings.ToUpper(strings.ReplaceAll(value, "-", ""))

	if !plateRegEx.MatchString(value) {
		return Plate{}, fmt.Errorf("invalid plate %q", value)
	}

	return Plate{value}, nil
}

// MustParse parses the string value and returns a plate if the value
// complies with the rules for a license plate. If an error occurs the
// function panics.
func MustParse(value string) Plate {
	plate, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return plate
}
