package changeset

import "math/rand/v2"

var (
	adjectives = []string{
		"bouncy", "brave", "calm", "clean", "cool", "damp", "epic", "fair",
		"fast", "firm", "flat", "free", "glad", "gold", "good", "gray", "huge",
		"keen", "kind", "lazy", "lean", "lush", "mild", "neat", "nice", "noble",
		"pure", "rare", "rich", "safe", "sharp", "slim", "slow", "soft", "swift",
		"tall", "tame", "tidy", "tiny", "tough", "trim", "true", "vast", "warm",
		"wild", "wise",
	}
	animals = []string{
		"ant", "bear", "bee", "bird", "bug", "cat", "crab", "crow", "deer",
		"dog", "dove", "duck", "elk", "fish", "frog", "goat", "hawk", "lamb",
		"lark", "lion", "lynx", "mole", "moth", "mule", "owl", "pony", "puma",
		"raven", "slug", "snail", "swan", "toad", "vole", "wasp", "wolf", "wren",
		"yak",
	}
	verbs = []string{
		"bite", "bolt", "burn", "buzz", "call", "cast", "chase", "chew", "claw",
		"climb", "crawl", "dart", "dash", "dive", "draw", "drift", "drop", "eat",
		"fall", "find", "flee", "flip", "flow", "fly", "glow", "gnaw", "growl",
		"howl", "hunt", "jump", "kick", "leap", "lick", "lift", "lurk", "pace",
		"peck", "play", "race", "roam", "roar", "roll", "run", "skim", "sniff",
		"soar", "spin", "swim", "wade", "walk",
	}
)

// GenerateSlug returns an adjective-animal-verb name such as
// "brave-owl-dash". A nil rng uses the global source.
//
// Slugs are not checked against existing records; two sessions that draw
// the same words overwrite each other's file.
func GenerateSlug(rng *rand.Rand) string {
	pick := func(words []string) string {
		if rng == nil {
			return words[rand.IntN(len(words))]
		}
		return words[rng.IntN(len(words))]
	}
	return pick(adjectives) + "-" + pick(animals) + "-" + pick(verbs)
}
