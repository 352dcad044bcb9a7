package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
	"github.com/mtakahash/recipedog/internal/storage"
)

func TestClassifyKeywords(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	c := NewClassifier(store, log)
	ctx := context.Background()

	tests := []struct {
		input string
		want  domain.Intent
	}{
		// Shopping plan
		{"shopping for the weekend", domain.IntentShoppingPlan},
		{"give me a 3-day plan", domain.IntentShoppingPlan},

		// Extra dish needs both halves
		{"I want more, maybe a side dish", domain.IntentExtraDish},
		{"a bit more please, some side dish", domain.IntentExtraDish},
		{"side dish ideas", domain.IntentFreeChat}, // "side dish" without "want more" is not enough

		// Stepped and bulk recipes
		{"teach me step-by-step", domain.IntentStartStepRecipe},
		{"give it to me all together", domain.IntentBulkRecipe},

		// Recipe requests
		{"recipe for eggs", domain.IntentRecipeRequest},
		{"what can I cook with this ingredient", domain.IntentRecipeRequest},
		{"what can make me dinner", domain.IntentRecipeRequest},
		{"tonight's menu?", domain.IntentRecipeRequest},

		// Weekly plan and shopping list
		{"plan 1 week of dinners", domain.IntentWeeklyPlan},
		{"write me a list", domain.IntentShoppingList},

		// Free chat
		{"good morning!", domain.IntentFreeChat},
		{"", domain.IntentFreeChat},
		{"how was your day", domain.IntentFreeChat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := c.Classify(ctx, "user-1", tt.input)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	c := NewClassifier(store, log)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  domain.Intent
	}{
		// Earlier rules always win over later ones.
		{"shopping beats recipe", "shopping for recipe ingredients", domain.IntentShoppingPlan},
		{"step-by-step beats recipe", "recipe please, step-by-step: egg, cabbage", domain.IntentStartStepRecipe},
		{"all together beats recipe", "the whole recipe all together", domain.IntentBulkRecipe},
		{"recipe beats weekly plan", "a menu for 1 week", domain.IntentRecipeRequest},
		{"shopping always outranks list", "shopping list please", domain.IntentShoppingPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ctx, "user-1", tt.input)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyActiveSessionWins(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	c := NewClassifier(store, log)
	ctx := context.Background()

	err := store.Put(ctx, &domain.Session{
		UserID:    "user-1",
		Mode:      domain.ModeWalkthrough,
		Steps:     []string{"intro ", "1 chop ", "2 fry"},
		StepIndex: 1,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mid-walkthrough, every message is a continuation -- even one that
	// looks like a brand-new request.
	for _, input := range []string{"next", "shopping", "recipe for curry", ""} {
		if got := c.Classify(ctx, "user-1", input); got != domain.IntentContinueStep {
			t.Errorf("Classify(%q) with active session = %s, want continue_step", input, got)
		}
	}

	// A different user is unaffected.
	if got := c.Classify(ctx, "user-2", "recipe for curry"); got != domain.IntentRecipeRequest {
		t.Errorf("Classify for other user = %s, want recipe_request", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Recipe Please  ", "recipe please"},
		// Full-width spaces and full-width latin fold to ASCII.
		{"egg　cabbage　tuna", "egg cabbage tuna"},
		{"ＲＥＣＩＰＥ", "recipe"},
		{"a \t\n b", "a b"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
