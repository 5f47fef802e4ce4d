package bom

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.\-]`)

// ParseQuantity parses "1 234,50", "1.234,5", "500" and similar cells,
// tolerating NBSP/thin-space thousands separators. ok=false means the
// cell is not a number.
func ParseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	repl := strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "")
	s = repl.Replace(s)
	// "1.234,5" -> thousands dot + decimal comma
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
