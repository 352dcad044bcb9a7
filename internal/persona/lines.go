// lines.go centralises every canned user-facing string. Edit this file to
// change the bot's personality; nothing here touches state.
package persona

// LineWelcome is sent when a user follows the bot.
func LineWelcome() string {
	return "Woof! I'm Ollie, your recipe helper dog. " +
		"Send me whatever is in your fridge, or the name of a dish, " +
		"and I'll fetch you an easy recipe. " +
		"Try 'eggs cabbage tuna', or ask for a recipe step-by-step!"
}

// LineShoppingPlan is the canned 3-day shopping plan template.
func LineShoppingPlan() string {
	return "Here's a thrifty 3-day shopping plan, woof!\n" +
		"Day 1: a whole chicken, cabbage, eggs -- roast the chicken, save the bones.\n" +
		"Day 2: noodles and spring onion -- chicken-bone broth noodles.\n" +
		"Day 3: rice, leftover chicken, frozen peas -- fried rice night.\n" +
		"One shop, three dinners. Good dog economics!"
}

// LineExtraDish is the canned extra side dish suggestion.
func LineExtraDish() string {
	return "Want a little something on the side, woof?\n" +
		"Quick pickles: slice cucumber thin, salt it, squeeze, splash of vinegar and sugar. " +
		"Ready before the main dish is done!"
}

// LineWeeklyPlan is the weekly meal plan placeholder.
func LineWeeklyPlan() string {
	return "A full week of menus is still in training, woof! " +
		"Hang tight a little longer -- for now, send me today's ingredients and I'll fetch a recipe."
}

// LineShoppingList is the shopping list placeholder.
func LineShoppingList() string {
	return "Shopping lists are still in training, woof! " +
		"Tell me which ingredients you have and I'll help from there."
}

// LineContinuePrompt asks the user for the next-step signal during a
// walkthrough.
func LineContinuePrompt() string {
	return "Send 'next' when you're ready for the following step, woof!"
}

// LineWalkthroughDone closes out a finished walkthrough.
func LineWalkthroughDone() string {
	return "That was the last step -- all done, woof! Enjoy your meal, and come back anytime!"
}

// LineGenerationFallback is the fixed apology used whenever the generator
// call fails. Never expose the raw error to the user.
func LineGenerationFallback() string {
	return "I'm so sorry, woof... I couldn't fetch that recipe. Could you try once more?"
}
