package handler

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"bommatch-service/internal/bom"
)

// The upload column contract (Romanian labels). Alternatives are separated
// by "|"; matching is diacritics- and case-insensitive.
const (
	colFamily    = "Familie|Familia|Categorie"
	colStandard  = "Standard"
	colGrade     = "Grad|Calitate|Marca"
	colDimension = "Dimensiune|Dimensiuni|Profil"
	colLength    = "Lungime (m)|Lungime"
	colQuantity  = "Cantitate|Cant"
	colUnit      = "Unitate|UM|U.M."
	colFinish    = "Finisaj|Acoperire"
	colNotes     = "Note|Observatii|Obs"
)

var (
	foldMarks    = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// normHeaderKey folds a column label: lowercase, no diacritics, single spaces.
func normHeaderKey(s string) string {
	if out, _, err := transform.String(foldMarks, s); err == nil {
		s = out
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the actual map key for a wanted column name, trying
// exact, normalized-exact and containment matches over the alternatives.
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	var nWantAll []string
	for _, a := range alts {
		nWantAll = append(nWantAll, normHeaderKey(a))
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if n != "" && (strings.Contains(nk, n) || strings.Contains(n, nk)) {
				if len(n) > score {
					score = len(n)
				}
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && k < bestKey) {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// toRowInputs converts parsed spreadsheet records to matcher inputs,
// skipping records with no usable cells. The original ordinal is kept.
func toRowInputs(maps []map[string]string) []bom.RowInput {
	rows := make([]bom.RowInput, 0, len(maps))
	for i, rec := range maps {
		in := bom.RowInput{
			Index:     i,
			Family:    cell(rec, colFamily),
			Standard:  cell(rec, colStandard),
			Grade:     cell(rec, colGrade),
			Dimension: cell(rec, colDimension),
			Length:    cell(rec, colLength),
			Quantity:  cell(rec, colQuantity),
			Unit:      cell(rec, colUnit),
			Finish:    cell(rec, colFinish),
			Notes:     cell(rec, colNotes),
		}
		if in.Family == "" && in.Dimension == "" && in.Quantity == "" {
			continue
		}
		rows = append(rows, in)
	}
	return rows
}

func cell(rec map[string]string, want string) string {
	return strings.TrimSpace(rec[resolveKey(rec, want)])
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
