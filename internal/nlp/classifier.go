package nlp

import (
	"regexp"
	"strings"

	"github.com/bobmcallan/chatfolio/internal/models"
)

const (
	// MatchConfidence is reported for any table match; it is a fixed
	// constant, not a match-strength score.
	MatchConfidence = 0.8

	// FallbackConfidence is reported when no pattern matches and the
	// classifier falls back to stock_price.
	FallbackConfidence = 0.5
)

// intentRule pairs an intent with its ordered pattern list.
type intentRule struct {
	action   models.IntentAction
	patterns []*regexp.Regexp
}

// intentRules is evaluated in fixed order: the first intent whose any
// pattern matches wins. The order is a documented tie-break policy, not
// an incidental detail — compare_stocks' broad ".*vs.*" must not shadow
// the intents above it, and "i.*bought" (add_holding) loses to
// "if.*i.*bought" (simulate) only because simulate sits earlier.
var intentRules = []intentRule{
	{models.ActionShowPortfolio, compile(
		`show.*portfolio`, `my.*holdings`, `portfolio.*summary`,
		`what.*do.*i.*own`, `current.*portfolio`,
	)},
	{models.ActionAddAlert, compile(
		`alert.*me.*if`, `notify.*when`, `tell.*me.*if`,
		`set.*alert`, `watch.*for`,
	)},
	{models.ActionCompareStocks, compile(
		`compare.*vs`, `compare.*and`, `.*vs.*`,
		`difference.*between`, `which.*better`,
	)},
	{models.ActionSimulate, compile(
		`what.*if.*buy`, `simulate.*buying`, `if.*i.*bought`,
		`scenario.*where`, `what.*would.*happen`,
	)},
	{models.ActionAddHolding, compile(
		`i.*bought`, `add.*to.*portfolio`, `i.*own`,
		`purchased.*shares`, `bought.*shares`,
	)},
	{models.ActionStockPrice, compile(
		`price.*of`, `current.*price`, `how.*much.*is`,
		`what.*is.*trading`, `.*price.*now`,
	)},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Classify matches text against the rule table and returns the
// resulting intent. It cannot fail: when nothing matches it falls back
// to stock_price at lower confidence. Entities are always extracted
// from the original (unlowered) text.
func Classify(text string) models.Intent {
	lower := strings.ToLower(text)

	for _, rule := range intentRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(lower) {
				return models.Intent{
					Action:     rule.action,
					Entities:   Extract(text),
					Confidence: MatchConfidence,
				}
			}
		}
	}

	return models.Intent{
		Action:     models.ActionStockPrice,
		Entities:   Extract(text),
		Confidence: FallbackConfidence,
	}
}
