package stylist

// Three-tier vibe taxonomy used by onboarding and scoring. Free-text labels,
// but the fixed lists below are the only ones that carry tag preferences.

var PositiveVibes = []string{
	"happy", "confident", "energetic", "excited", "romantic",
	"playful", "bold", "glamorous", "adventurous", "grateful",
}

var NeutralVibes = []string{
	"relaxed", "minimal", "focused", "calm", "balanced",
	"practical", "professional", "independent", "reflective", "curious",
}

var NegativeVibes = []string{
	"stressed", "anxious", "sad", "tired", "overwhelmed",
	"frustrated", "lonely", "insecure", "unmotivated", "gloomy",
}

var negativeVibeSet = func() map[string]bool {
	set := make(map[string]bool, len(NegativeVibes))
	for _, v := range NegativeVibes {
		set[v] = true
	}
	return set
}()

func IsNegativeVibe(vibe string) bool {
	return negativeVibeSet[vibe]
}

func AllVibes() []string {
	all := make([]string, 0, len(PositiveVibes)+len(NeutralVibes)+len(NegativeVibes))
	all = append(all, PositiveVibes...)
	all = append(all, NeutralVibes...)
	all = append(all, NegativeVibes...)
	return all
}

// Tags to prefer when the user reports negative vibes.
var ComfortTags = []string{"casual", "cozy", "basic", "everyday", "versatile", "minimal", "comfortable"}

// Tags to demote on negative vibes, unless the user also picked
// bold/glamorous/confident.
var StatementTags = []string{"elegant", "evening", "formal", "feminine", "bold"}

// VibeTagMap maps each vibe to the wardrobe tags scoring should prefer.
var VibeTagMap = map[string][]string{
	// positive
	"happy":       {"casual", "everyday", "sporty", "weekend", "playful"},
	"confident":   {"formal", "elegant", "classic", "office", "bold"},
	"energetic":   {"sporty", "casual", "everyday", "weekend"},
	"excited":     {"bold", "evening", "playful", "weekend"},
	"romantic":    {"elegant", "feminine", "evening"},
	"playful":     {"casual", "playful", "weekend", "sporty"},
	"bold":        {"bold", "elegant", "evening", "formal"},
	"glamorous":   {"elegant", "evening", "formal", "feminine"},
	"adventurous": {"casual", "sporty", "versatile", "layering"},
	"grateful":    {"casual", "cozy", "everyday"},
	// neutral
	"relaxed":      {"casual", "cozy", "basic", "everyday"},
	"minimal":      {"basic", "versatile", "everyday", "minimal"},
	"focused":      {"office", "smart-casual", "classic"},
	"calm":         {"cozy", "basic", "casual", "everyday"},
	"balanced":     {"versatile", "casual", "smart-casual"},
	"practical":    {"versatile", "everyday", "basic"},
	"professional": {"office", "formal", "classic", "smart-casual"},
	"independent":  {"versatile", "casual", "everyday"},
	"reflective":   {"cozy", "basic", "casual"},
	"curious":      {"casual", "versatile", "everyday"},
	// negative, all comfort oriented
	"stressed":    {"cozy", "casual", "basic", "comfortable", "everyday"},
	"anxious":     {"cozy", "basic", "casual", "comfortable", "minimal"},
	"sad":         {"cozy", "comfortable", "casual", "basic", "everyday"},
	"tired":       {"casual", "cozy", "comfortable", "basic", "everyday"},
	"overwhelmed": {"basic", "minimal", "casual", "comfortable", "cozy"},
	"frustrated":  {"casual", "comfortable", "basic", "cozy"},
	"lonely":      {"cozy", "comfortable", "casual", "basic"},
	"insecure":    {"basic", "casual", "everyday", "comfortable", "versatile"},
	"unmotivated": {"casual", "cozy", "basic", "comfortable"},
	"gloomy":      {"cozy", "casual", "comfortable", "basic", "everyday"},
}
