package agent

import (
	"testing"

	"glamapi/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text   string
		intent Intent
	}{
		{"hello", IntentHelp},
		{"hi there", IntentHelp},
		{"help", IntentHelp},
		// greeting that also asks for an outfit is a generation request
		{"hey, what should i wear today", IntentGenerate},
		{"find me an outfit for work", IntentGenerate},
		{"get me ready for a date", IntentGenerate},
		{"i feel stressed", IntentGenerate},
		{"something for the office", IntentGenerate},
		{"make it warmer", IntentModify},
		{"more comfy please", IntentModify},
		{"i wore this today", IntentActionWorn},
		{"mark these as dirty", IntentActionDirty},
		{"what is the meaning of life", IntentUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.intent, Classify(c.text), "text: %s", c.text)
	}
}

func TestExtractMood(t *testing.T) {
	assert.Equal(t, models.MoodRelaxed, ExtractMood("i'm so stressed out"))
	assert.Equal(t, models.MoodRelaxed, ExtractMood("feeling tired"))
	assert.Equal(t, models.MoodConfident, ExtractMood("i want to look confident"))
	assert.Equal(t, models.MoodConfident, ExtractMood("glam me up"))
	assert.Equal(t, models.MoodEnergetic, ExtractMood("gym time"))
	assert.Equal(t, models.MoodRomantic, ExtractMood("date tonight"))
	assert.Equal(t, models.MoodMinimal, ExtractMood("keep it simple"))
	assert.Equal(t, models.MoodHappy, ExtractMood("whatever works"))
	// stress beats confident when both appear, ordered groups
	assert.Equal(t, models.MoodRelaxed, ExtractMood("stressed but want to look confident"))
}

func TestExtractOccasion(t *testing.T) {
	assert.Equal(t, models.OccasionWork, ExtractOccasion("outfit for the office"))
	assert.Equal(t, models.OccasionDateNight, ExtractOccasion("a date outfit"))
	assert.Equal(t, models.OccasionParty, ExtractOccasion("party tonight"))
	assert.Equal(t, models.OccasionSport, ExtractOccasion("gym clothes"))
	// "workout" contains "work", and the work group is checked first
	assert.Equal(t, models.OccasionWork, ExtractOccasion("workout clothes"))
	assert.Equal(t, models.OccasionFormal, ExtractOccasion("formal event"))
	assert.Equal(t, models.OccasionTravel, ExtractOccasion("travel fit"))
	assert.Equal(t, models.OccasionCasual, ExtractOccasion("anything really"))
	// work beats date in the ordered groups
	assert.Equal(t, models.OccasionWork, ExtractOccasion("office date"))
}

func TestExtractWeather(t *testing.T) {
	assert.Equal(t, "cold", ExtractWeather("it's cold out"))
	assert.Equal(t, "rain", ExtractWeather("lots of rain today"))
	assert.Equal(t, "", ExtractWeather("no idea"))
	// whole-word match only
	assert.Equal(t, "", ExtractWeather("warmer please"))
}
