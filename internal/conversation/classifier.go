// Package conversation implements keyword-based intent classification.
package conversation

import (
	"context"
	"strings"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentClassifier = (*Classifier)(nil)

// Classifier matches normalized message text against an ordered rule list.
// Rule order is the precedence: the first match wins, so a message that
// mentions both shopping and a recipe resolves to the shopping plan.
// Swap this out for an LLM-backed classifier when ready.
type Classifier struct {
	store domain.SessionStore
	log   *logger.Logger
	rules []keywordRule
}

type keywordRule struct {
	match  func(string) bool
	intent domain.Intent
}

// NewClassifier creates a keyword-based intent classifier. The session
// store is consulted first: a user mid-walkthrough always classifies as a
// continuation, whatever they typed.
func NewClassifier(store domain.SessionStore, log *logger.Logger) *Classifier {
	c := &Classifier{store: store, log: log}
	c.rules = []keywordRule{
		{anyOf("shopping", "3-day"), domain.IntentShoppingPlan},
		{func(s string) bool {
			return strings.Contains(s, "side dish") &&
				(strings.Contains(s, "want more") || strings.Contains(s, "a bit more"))
		}, domain.IntentExtraDish},
		{anyOf("step-by-step"), domain.IntentStartStepRecipe},
		{anyOf("all together"), domain.IntentBulkRecipe},
		{anyOf("recipe", "ingredient", "can make", "cooking", "menu", "make"), domain.IntentRecipeRequest},
		{anyOf("1 week"), domain.IntentWeeklyPlan},
		{anyOf("shopping", "list"), domain.IntentShoppingList},
	}
	return c
}

// Classify maps a message to an intent. An active walkthrough session
// short-circuits every keyword rule: the only continuation signal honored
// mid-walkthrough is the next message, whatever it says. That is the
// intended behavior, not an oversight.
func (c *Classifier) Classify(ctx context.Context, userID, text string) domain.Intent {
	if sess, err := c.store.Get(ctx, userID); err == nil && sess.Active() {
		c.log.Debug("user %s has an active walkthrough, continuing", userID)
		return domain.IntentContinueStep
	}

	norm := Normalize(text)
	for _, rule := range c.rules {
		if rule.match(norm) {
			c.log.Debug("matched intent %s for %q", rule.intent, norm)
			return rule.intent
		}
	}

	c.log.Debug("no keyword match for %q, falling through to free chat", norm)
	return domain.IntentFreeChat
}

// anyOf builds a predicate that matches if the text contains any keyword.
func anyOf(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
		return false
	}
}
