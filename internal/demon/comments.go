package demon

// Comments is the built-in phrase list a demon picks from.
var Comments = []string{
	"You call that a sentence?",
	"Nobody is going to read this.",
	"Wow. Riveting. Truly.",
	"Maybe try a different hobby?",
	"That word doesn't mean what you think it means.",
	"Your first draft is also your last, huh?",
	"I've seen better prose on cereal boxes.",
	"Are you sure that's how commas work?",
	"Delete it. Delete all of it.",
	"Your English teacher would be so disappointed.",
	"This plot has more holes than a sieve.",
	"Have you considered just... stopping?",
	"Every word is worse than the last.",
	"Even autocorrect gave up on you.",
	"That metaphor is crying for help.",
	"Bold choice. Wrong, but bold.",
	"Is this a story or a grocery list?",
	"The blank page looked better.",
	"You're not a writer, you're a typist.",
	"I'm bored already.",
	"Real authors would never write that.",
	"Go on, stare at the cursor a little longer.",
	"That paragraph should be illegal.",
	"Plot twist: it's still bad.",
	"You'll never finish this.",
}
