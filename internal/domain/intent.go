package domain

// Intent classifies what the user wants from an inbound message.
// It is computed per message and never persisted.
type Intent int

const (
	// IntentFreeChat is the catch-all when no rule matches.
	IntentFreeChat Intent = iota
	IntentContinueStep
	IntentShoppingPlan
	IntentExtraDish
	IntentStartStepRecipe
	IntentBulkRecipe
	IntentRecipeRequest
	IntentWeeklyPlan
	IntentShoppingList
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentContinueStep:
		return "continue_step"
	case IntentShoppingPlan:
		return "shopping_plan"
	case IntentExtraDish:
		return "extra_dish"
	case IntentStartStepRecipe:
		return "start_step_recipe"
	case IntentBulkRecipe:
		return "bulk_recipe"
	case IntentRecipeRequest:
		return "recipe_request"
	case IntentWeeklyPlan:
		return "weekly_plan"
	case IntentShoppingList:
		return "shopping_list"
	case IntentFreeChat:
		return "free_chat"
	default:
		return "unknown"
	}
}

// TimeBucket is a coarse classification of the local hour, used to pick
// the greeting tone for free conversation.
type TimeBucket int

const (
	BucketOther TimeBucket = iota
	BucketMorning
	BucketEvening
	BucketLateNight
)

// String returns a human-readable bucket name.
func (b TimeBucket) String() string {
	switch b {
	case BucketMorning:
		return "morning"
	case BucketEvening:
		return "evening"
	case BucketLateNight:
		return "late_night"
	default:
		return "other"
	}
}
