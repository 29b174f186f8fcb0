package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// IsLuna reports whether s passes the Luhn checksum. Intake only records the
// result; it never rejects on it.
func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}
