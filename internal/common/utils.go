package common

import "strings"

// ContainsFold reports whether sub is within s, ignoring case and surrounding space.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
