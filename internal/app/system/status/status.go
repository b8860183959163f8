// Package status defines the lifecycle states shared by records that
// carry a soft active flag.
package status

const (
	Active   = "active"
	Inactive = "inactive"
)

// IsValid reports whether s is a known status value.
func IsValid(s string) bool {
	return s == Active || s == Inactive
}
