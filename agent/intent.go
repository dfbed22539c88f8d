package agent

import (
	"regexp"
	"strings"

	"glamapi/models"
)

type Intent string

const (
	IntentHelp        Intent = "HELP"
	IntentGenerate    Intent = "GENERATE"
	IntentModify      Intent = "MODIFY"
	IntentActionWorn  Intent = "ACTION_WORN"
	IntentActionDirty Intent = "ACTION_DIRTY"
	IntentUnknown     Intent = "UNKNOWN"
)

// Keyword patterns backing the intent decision list. Input is lowercased
// before matching, so the patterns stay lowercase.
var (
	generateRe    = regexp.MustCompile(`\b(wear|outfit|dressed|ready|recommend|choose|pick|find|get)\b`)
	weatherRe     = regexp.MustCompile(`\b(cold|hot|warm|rain|sunny|snow|freezing|chilly|mild)\b`)
	moodRe        = regexp.MustCompile(`\b(happy|sad|stressed|tired|energetic|confident|glam|lazy|anxious|nervous|romantic)\b`)
	occasionRe    = regexp.MustCompile(`\b(work|office|date|party|gym|workout|travel|vacation|formal|casual)\b`)
	modifyRe      = regexp.MustCompile(`\b(warmer|cooler|formal|casual|color|comfortable|comfy|shoes|jacket)\b`)
	actionWornRe  = regexp.MustCompile(`\b(mark.*worn|wore.*this)\b`)
	actionDirtyRe = regexp.MustCompile(`\b(mark.*dirty|wash)\b`)
	helpRe        = regexp.MustCompile(`\b(help|start|hi|hello|hey|menu)\b`)
)

// Classify runs the ordered decision list over a lowercased utterance.
// The order is a precedence policy: greetings that also ask for an outfit
// are generation requests, generation beats modification, and so on.
func Classify(text string) Intent {
	switch {
	case helpRe.MatchString(text) && !generateRe.MatchString(text):
		return IntentHelp
	case generateRe.MatchString(text) || moodRe.MatchString(text) || occasionRe.MatchString(text):
		return IntentGenerate
	case modifyRe.MatchString(text):
		return IntentModify
	case actionWornRe.MatchString(text):
		return IntentActionWorn
	case actionDirtyRe.MatchString(text):
		return IntentActionDirty
	default:
		return IntentUnknown
	}
}

// ExtractMood resolves the mood slot by ordered substring groups,
// defaulting to happy when nothing hits.
func ExtractMood(text string) models.Mood {
	switch {
	case strings.Contains(text, "stress") || strings.Contains(text, "tired") || strings.Contains(text, "anxious"):
		return models.MoodRelaxed
	case strings.Contains(text, "confident") || strings.Contains(text, "bold") || strings.Contains(text, "glam"):
		return models.MoodConfident
	case strings.Contains(text, "energetic") || strings.Contains(text, "gym"):
		return models.MoodEnergetic
	case strings.Contains(text, "romantic") || strings.Contains(text, "date") || strings.Contains(text, "love"):
		return models.MoodRomantic
	case strings.Contains(text, "minimal") || strings.Contains(text, "simple"):
		return models.MoodMinimal
	default:
		return models.MoodHappy
	}
}

// ExtractOccasion resolves the occasion slot, defaulting to casual.
func ExtractOccasion(text string) models.Occasion {
	switch {
	case strings.Contains(text, "work") || strings.Contains(text, "office"):
		return models.OccasionWork
	case strings.Contains(text, "date"):
		return models.OccasionDateNight
	case strings.Contains(text, "party"):
		return models.OccasionParty
	case strings.Contains(text, "gym") || strings.Contains(text, "workout"):
		return models.OccasionSport
	case strings.Contains(text, "formal"):
		return models.OccasionFormal
	case strings.Contains(text, "travel"):
		return models.OccasionTravel
	default:
		return models.OccasionCasual
	}
}

// ExtractWeather returns the first weather keyword in the text, empty when
// none is present. The agent never guesses weather on the chat path, it asks.
func ExtractWeather(text string) string {
	return weatherRe.FindString(text)
}
