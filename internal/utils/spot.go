package utils

import (
	"fmt"
	"strings"
)

// SpotLabel builds the display label for the n-th spot of a lot:
// the uppercased first three characters of the lot name, a dash, and
// the zero-padded sequence number ("Lakeview", 7 -> "LAK-007").
// Names shorter than three characters keep whatever is there. Labels
// are not globally unique; identity lives on the spot row itself.
func SpotLabel(lotName string, n int) string {
	prefix := []rune(strings.TrimSpace(lotName))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%03d", strings.ToUpper(string(prefix)), n)
}
