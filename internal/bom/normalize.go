package bom

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"bommatch-service/internal/catalog"
)

// The normalizers are pure and never panic: unrecognized input yields a
// miss (ok=false) or a pass-through token, never an error.

// foldDiacritics strips combining marks so "țeavă" and "teava" compare equal.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		return s
	}
	return out
}

// familySynonyms maps folded lowercase free text to the fixed vocabulary.
var familySynonyms = map[string]catalog.Family{
	"profiles": catalog.FamilyProfiles, "profile": catalog.FamilyProfiles,
	"profil": catalog.FamilyProfiles, "profile metalice": catalog.FamilyProfiles,
	"laminate": catalog.FamilyProfiles,

	"plates": catalog.FamilyPlates, "plate": catalog.FamilyPlates,
	"tabla": catalog.FamilyPlates, "table": catalog.FamilyPlates,
	"sheet": catalog.FamilyPlates, "tabla groasa": catalog.FamilyPlates,

	"pipes": catalog.FamilyPipes, "pipe": catalog.FamilyPipes,
	"teava": catalog.FamilyPipes, "tevi": catalog.FamilyPipes,
	"tube": catalog.FamilyPipes, "tubes": catalog.FamilyPipes,

	"fasteners": catalog.FamilyFasteners, "fastener": catalog.FamilyFasteners,
	"suruburi": catalog.FamilyFasteners, "organe de asamblare": catalog.FamilyFasteners,

	"stainless": catalog.FamilyStainless, "inox": catalog.FamilyStainless,
	"stainless steel": catalog.FamilyStainless, "otel inoxidabil": catalog.FamilyStainless,

	"nonferrous": catalog.FamilyNonferrous, "non-ferrous": catalog.FamilyNonferrous,
	"neferoase": catalog.FamilyNonferrous, "metale neferoase": catalog.FamilyNonferrous,
	"aluminiu": catalog.FamilyNonferrous, "aluminium": catalog.FamilyNonferrous,
	"cupru": catalog.FamilyNonferrous, "alama": catalog.FamilyNonferrous,
}

// NormalizeFamily maps free text onto the fixed family vocabulary.
func NormalizeFamily(s string) (catalog.Family, bool) {
	key := strings.ToLower(fold(strings.TrimSpace(s)))
	key = strings.Join(strings.Fields(key), " ")
	if key == "" {
		return "", false
	}
	if f, ok := familySynonyms[key]; ok {
		return f, true
	}
	return "", false
}

var (
	dimSeparators = strings.NewReplacer("×", "X", "*", "X", "Ø", "", "Φ", "", "∅", "")
	reTrailingMM  = regexp.MustCompile(`(\d)\s*MM$`)
	reDigits      = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// NormalizeDimension collapses a free-text dimension into a canonical token:
// whitespace removed, separators unified to X, profile prefixes uppercased,
// a trailing MM suffix dropped. Numeric sequences are preserved exactly,
// no unit conversion happens here.
func NormalizeDimension(s string) (string, bool) {
	t := strings.ToUpper(fold(strings.TrimSpace(s)))
	if t == "" {
		return "", false
	}
	t = dimSeparators.Replace(t)
	t = strings.ReplaceAll(t, ",", ".")
	t = strings.Join(strings.Fields(t), "")
	t = reTrailingMM.ReplaceAllString(t, "$1")
	if t == "" {
		return "", false
	}
	return t, true
}

// numericSeq extracts the numeric sequences of a canonical dimension token,
// in order. "HEA100" -> [100], "40X20X2" -> [40 20 2].
func numericSeq(dim string) []string {
	return reDigits.FindAllString(dim, -1)
}

// knownGrades are the material grade codes the catalog trades in. Unknown
// codes are passed through and flagged as a row warning, never rejected.
var knownGrades = map[string]struct{}{
	"S235JR": {}, "S235J0": {}, "S235J2": {},
	"S275JR": {}, "S275J0": {},
	"S355JR": {}, "S355J0": {}, "S355J2": {}, "S355K2": {},
	"DC01": {}, "DC03": {}, "DC04": {}, "DX51D": {},
	"C45": {}, "E235": {}, "E355": {},
	"1.4301": {}, "1.4307": {}, "1.4401": {}, "1.4404": {}, "1.4016": {},
	"304": {}, "304L": {}, "316": {}, "316L": {}, "430": {},
	"A2-70": {}, "A4-80": {}, "8.8": {}, "10.9": {}, "12.9": {},
	"EN-AW-6060": {}, "EN-AW-6082": {}, "CUZN37": {}, "CU-ETP": {},
}

var knownStandards = map[string]struct{}{
	"EN10025": {}, "EN10051": {}, "EN10130": {}, "EN10088": {},
	"EN10219": {}, "EN10255": {}, "EN10305": {}, "EN10210": {},
	"EN755": {}, "EN1172": {},
	"DIN931": {}, "DIN933": {}, "DIN934": {}, "DIN125": {},
	"ISO4014": {}, "ISO4017": {},
}

func canonCode(s string) string {
	t := strings.ToUpper(fold(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(t), "")
}

// NormalizeGrade uppercases and strips internal spaces; known reports
// whether the code is on the whitelist.
func NormalizeGrade(s string) (token string, known bool) {
	t := canonCode(s)
	if t == "" {
		return "", false
	}
	_, ok := knownGrades[t]
	return t, ok
}

// NormalizeStandard works like NormalizeGrade over the standards whitelist.
func NormalizeStandard(s string) (token string, known bool) {
	t := canonCode(s)
	if t == "" {
		return "", false
	}
	_, ok := knownStandards[t]
	return t, ok
}

// ParseUnit maps a raw unit cell to the accepted enum. Synonyms cover the
// spellings seen in uploads; empty input is a miss, not an error.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(fold(strings.TrimSpace(s))) {
	case "kg", "kilogram", "kilograme":
		return UnitKg, true
	case "buc", "buc.", "bucati", "pcs", "pieces":
		return UnitBuc, true
	case "m", "ml", "metri", "metru":
		return UnitM, true
	case "ton", "t", "tone", "tona":
		return UnitTon, true
	default:
		return "", false
	}
}
