// Package nlp interprets free-text chat messages using deterministic
// pattern matching: structured token extraction plus an ordered
// intent-rule table. There is no learned model.
package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bobmcallan/chatfolio/internal/models"
)

var (
	// symbolPattern matches ticker-like runs of 2-4 uppercase letters.
	// The rule is purely lexical, not a ticker-validity check: common
	// short English words match after uppercasing. That false-positive
	// rate is an accepted limitation of the lexical rule.
	symbolPattern = regexp.MustCompile(`\b[A-Z]{2,4}\b`)

	// numberPattern matches an integer with an optional fractional part.
	numberPattern = regexp.MustCompile(`\d+\.?\d*`)
)

var (
	aboveWords = []string{"above", "over", "higher"}
	belowWords = []string{"below", "under", "lower"}
)

// Extract pulls symbols, numbers and a directional condition out of raw
// text. It is pure and total: no input produces an error. Fields with
// no matches stay at their zero value and are omitted from the wire
// format.
func Extract(text string) models.Entities {
	var entities models.Entities

	// Symbols are scanned on the uppercased text, in order of
	// appearance, duplicates included.
	entities.Symbols = symbolPattern.FindAllString(strings.ToUpper(text), -1)

	// Numbers are scanned on the original text.
	for _, match := range numberPattern.FindAllString(text, -1) {
		if n, err := strconv.ParseFloat(match, 64); err == nil {
			entities.Numbers = append(entities.Numbers, n)
		}
	}

	// Above-words are checked first: text containing both directions
	// yields "above".
	lower := strings.ToLower(text)
	if containsAny(lower, aboveWords) {
		entities.Condition = string(models.AlertAbove)
	} else if containsAny(lower, belowWords) {
		entities.Condition = string(models.AlertBelow)
	}

	return entities
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
