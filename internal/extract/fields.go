package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/campaignkit/internal/model"
)

// FindAnswer returns the answer whose question best matches terms, or "".
//
// Matching runs in two tiers. First, every term (in the order given) is
// compared case-insensitively for an exact question match. Only if no term
// matches exactly does the second tier run: the first question in submission
// order that contains any term wins.
func FindAnswer(formData []model.QAPair, terms []string) string {
	if qa, ok := FindPair(formData, terms); ok {
		return qa.Answer
	}
	return ""
}

// FindPair is FindAnswer returning the matched pair
func FindPair(formData []model.QAPair, terms []string) (model.QAPair, bool) {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
			lowered = append(lowered, t)
		}
	}

	for _, term := range lowered {
		for _, qa := range formData {
			if normalizeQuestion(qa.Question) == term {
				return qa, true
			}
		}
	}

	for _, qa := range formData {
		question := normalizeQuestion(qa.Question)
		for _, term := range lowered {
			if strings.Contains(question, term) {
				return qa, true
			}
		}
	}

	return model.QAPair{}, false
}

// normalizeQuestion lowercases and drops trailing punctuation such as "?" or ":"
func normalizeQuestion(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = strings.TrimRight(q, "?:*. ")
	return strings.Join(strings.Fields(q), " ")
}

// Answers returns every non-empty answer in document order
func Answers(formData []model.QAPair) []string {
	var out []string
	for _, qa := range formData {
		if strings.TrimSpace(qa.Answer) != "" {
			out = append(out, qa.Answer)
		}
	}
	return out
}

var amountPattern = regexp.MustCompile(`(-?\d[\d,]*(?:\.\d+)?)(?:\s*([kKmM])(?:[^a-zA-Z]|$))?`)

// ParseAmount extracts a monetary amount, ignoring currency symbols, codes and
// thousands separators. "5k" and "1.2m" are expanded. Returns 0 when no
// number is present.
func ParseAmount(s string) float64 {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	switch strings.ToLower(m[2]) {
	case "k":
		value *= 1_000
	case "m":
		value *= 1_000_000
	}

	return value
}

var (
	ordinalPattern = regexp.MustCompile(`(\d)(st|nd|rd|th)\b`)

	dateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02",
		"1/2/2006",
		"01/02/2006",
		"1/2/2006 3:04 PM",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 15:04",
		"1/2/06",
		"1-2-2006",
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
		"2 January 2006",
		"2 Jan 2006",
		"02 Jan 2006",
		"Monday, January 2, 2006",
		"Monday, 2 January 2006",
		"Mon, 02 Jan 2006",
		"Mon Jan 2 2006",
	}
)

// ParseDate returns the date as YYYY-MM-DD, or "" if it cannot be read.
// Numeric day/month dates are read month first.
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = ordinalPattern.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

var intPattern = regexp.MustCompile(`\d+`)

const (
	minTargetAge = 13
	maxTargetAge = 99
)

// ParseAgeRange reads a targeting age band such as "18-34" or "25 to 54".
// With only one number, it becomes the lower bound when <= 30 and the
// upper bound otherwise. Out-of-range values yield an empty range.
func ParseAgeRange(s string) model.AgeRange {
	matches := intPattern.FindAllString(s, -1)

	var nums []int
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}

	switch {
	case len(nums) >= 2:
		lo, hi := nums[0], nums[1]
		if minTargetAge <= lo && lo <= hi && hi <= maxTargetAge {
			return model.AgeRange{Min: lo, Max: hi}
		}
	case len(nums) == 1:
		n := nums[0]
		if n < minTargetAge || n > maxTargetAge {
			return model.AgeRange{}
		}
		if n <= 30 {
			return model.AgeRange{Min: n}
		}
		return model.AgeRange{Max: n}
	}

	return model.AgeRange{}
}

// NormalizeList turns a list-shaped answer into flat lowercase tokens. The
// answer may be a JSON array (nested arrays are flattened) or a comma,
// semicolon or newline separated string.
func NormalizeList(answer string) []string {
	s := strings.TrimSpace(answer)
	if s == "" {
		return []string{}
	}

	var raw []string
	if strings.HasPrefix(s, "[") {
		var decoded interface{}
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			raw = flatten(decoded)
		}
	}
	if raw == nil {
		raw = strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ';' || r == '\n'
		})
	}

	seen := make(map[string]bool)
	tokens := make([]string, 0, len(raw))
	for _, item := range raw {
		token := strings.ToLower(strings.Trim(strings.TrimSpace(item), `"'`))
		token = strings.Join(strings.Fields(token), " ")
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

func flatten(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := []string{}
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case string:
		return []string{t}
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(t)}
	}
}
