// Package bot routes classified intents to their response producers.
package bot

import (
	"context"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/engine"
	"github.com/mtakahash/recipedog/internal/logger"
	"github.com/mtakahash/recipedog/internal/persona"
)

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithGenerateTimeout bounds every generator call. A timeout takes the same
// fallback path as any other generation failure.
func WithGenerateTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		disp.generateTimeout = d
	}
}

// WithClock overrides the time source used for greeting buckets, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// Dispatcher turns an inbound message into reply text. It owns the
// classify-then-branch control flow and is the only place generator
// failures are converted into the user-facing fallback line.
type Dispatcher struct {
	classifier domain.IntentClassifier
	engine     *engine.Engine
	recipes    domain.RecipeGenerator
	chat       domain.ChatGenerator
	format     domain.Formatter
	log        *logger.Logger

	generateTimeout time.Duration
	now             func() time.Time
}

// New creates a dispatcher with the given collaborators and options.
func New(
	classifier domain.IntentClassifier,
	eng *engine.Engine,
	recipes domain.RecipeGenerator,
	chat domain.ChatGenerator,
	format domain.Formatter,
	log *logger.Logger,
	opts ...Option,
) *Dispatcher {
	d := &Dispatcher{
		classifier:      classifier,
		engine:          eng,
		recipes:         recipes,
		chat:            chat,
		format:          format,
		log:             log,
		generateTimeout: 30 * time.Second,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch classifies the message and produces the reply text. It never
// fails: generator errors come back as the fixed apology line, and session
// state is only touched on successful paths, so a failed generation can
// never corrupt or half-advance a walkthrough.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, text string) string {
	intent := d.classifier.Classify(ctx, userID, text)
	d.log.Debug("user %s -> %s", userID, intent)

	switch intent {
	case domain.IntentContinueStep:
		reply, err := d.engine.Advance(ctx, userID)
		if err != nil {
			// The session vanished between classify and advance
			// (completed concurrently or evicted). Fall back to
			// treating the message as conversation.
			d.log.Warn("advance for user %s failed: %v", userID, err)
			return d.freeChat(ctx, text)
		}
		return reply

	case domain.IntentShoppingPlan:
		return persona.LineShoppingPlan()

	case domain.IntentExtraDish:
		return persona.LineExtraDish()

	case domain.IntentStartStepRecipe:
		recipeText, err := d.generateRecipe(ctx, text)
		if err != nil {
			return persona.LineGenerationFallback()
		}
		reply, err := d.engine.Start(ctx, userID, recipeText)
		if err != nil {
			d.log.Error("starting walkthrough for user %s: %v", userID, err)
			// The recipe itself is fine; serve it ungapped.
			return recipeText
		}
		return reply

	case domain.IntentBulkRecipe, domain.IntentRecipeRequest:
		recipeText, err := d.generateRecipe(ctx, text)
		if err != nil {
			return persona.LineGenerationFallback()
		}
		return recipeText

	case domain.IntentWeeklyPlan:
		return persona.LineWeeklyPlan()

	case domain.IntentShoppingList:
		return persona.LineShoppingList()

	default:
		return d.freeChat(ctx, text)
	}
}

// generateRecipe calls the recipe generator under the timeout and applies
// the persona to the result.
func (d *Dispatcher) generateRecipe(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.generateTimeout)
	defer cancel()

	out, err := d.recipes.GenerateRecipe(ctx, query)
	if err != nil {
		d.log.Error("recipe generation: %v", err)
		return "", err
	}
	return d.format.Format(out), nil
}

// freeChat calls the chat generator with the current greeting bucket.
func (d *Dispatcher) freeChat(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, d.generateTimeout)
	defer cancel()

	bucket := persona.BucketForHour(d.now().Hour())
	out, err := d.chat.GenerateChat(ctx, text, bucket)
	if err != nil {
		d.log.Error("chat generation: %v", err)
		return persona.LineGenerationFallback()
	}
	return d.format.Format(out)
}
