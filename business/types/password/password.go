// Package password represents a plaintext password in the system. The value
// is kept out of logs by the String implementation.
package password

import "fmt"

// Password represents a password in the system.
type Password struct {
	value string
}

// String hides the value of the password.
func (p Password) String() string {
	return "**********"
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// Raw returns the plaintext value for hashing.
func (p Password) Raw() string {
	return p.value
}

// =============================================================================

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if len(value) < 8 || len(value) > 72 {
		return Password{}, fmt.Errorf("password must be between 8 and 72 characters")
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function
// panics.
func MustParse(value string) Password {
	password, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return password
}
