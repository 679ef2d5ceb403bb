package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// "Décembre" -> "Decembre", "pondération" -> "ponderation"
func FoldAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// lowercases, strips accents and replaces every non-alphanumeric run
// with a single underscore. "Déc. 2024" -> "dec_2024", returns ""
// when nothing survives.
func NormalizeHeader(s string) string {
	s = FoldAccents(strings.ToLower(s))
	s = nonAlnumRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

var numberJunk = strings.NewReplacer(
	" ", " ",
	" ", " ",
	" ", " ",
	"\n", " ",
	"%", "",
)

// strips currency junk out of a number cell: non-breaking/thin spaces,
// percent signs, thousands separators, then "," -> "." so the result
// parses with strconv. "1 234,5 %" -> "1234.5"
func NormalizeNumber(s string) string {
	s = numberJunk.Replace(s)
	s = whitespaceRegex.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, ",", ".")
}

var numericRegex = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(NormalizeNumber(s))
}

var numberRunRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// pulls the last number out of a cell where several values ran
// together ("122.6 124.4"). cells already holding a single clean
// number pass through normalized.
func TrailingNumber(s string) (string, bool) {
	if IsNumeric(s) {
		return NormalizeNumber(s), true
	}
	// keep the whitespace, it's the only separator left
	cleaned := strings.ReplaceAll(numberJunk.Replace(s), ",", ".")
	runs := numberRunRegex.FindAllString(cleaned, -1)
	if len(runs) == 0 {
		return "", false
	}
	return runs[len(runs)-1], true
}

func ContainsDigit(s string) bool {
	for _, c := range s {
		if unicode.IsDigit(c) {
			return true
		}
	}
	return false
}
