package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodConfident Mood = "confident"
	MoodRelaxed   Mood = "relaxed"
	MoodEnergetic Mood = "energetic"
	MoodRomantic  Mood = "romantic"
	MoodMinimal   Mood = "minimal"
)

func (l *Mood) Scan(value interface{}) error {
	*l = Mood(value.(string))
	return nil
}

func (l Mood) Value() (string, error) {
	return string(l), nil
}

func ValidateMood(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^happy|confident|relaxed|energetic|romantic|minimal$", fl.Field().String())
	return matched
}

func ValidateMoodRaw(value string) bool {
	matched, _ := regexp.MatchString("^happy|confident|relaxed|energetic|romantic|minimal$", value)
	return matched
}
