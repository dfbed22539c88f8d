package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type Occasion string

const (
	OccasionWork      Occasion = "work"
	OccasionCasual    Occasion = "casual"
	OccasionDateNight Occasion = "date-night"
	OccasionParty     Occasion = "party"
	OccasionSport     Occasion = "sport"
	OccasionTravel    Occasion = "travel"
	OccasionFormal    Occasion = "formal"
)

func (l *Occasion) Scan(value interface{}) error {
	*l = Occasion(value.(string))
	return nil
}

func (l Occasion) Value() (string, error) {
	return string(l), nil
}

func ValidateOccasion(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^work|casual|date-night|party|sport|travel|formal$", fl.Field().String())
	return matched
}

func ValidateOccasionRaw(value string) bool {
	matched, _ := regexp.MatchString("^work|casual|date-night|party|sport|travel|formal$", value)
	return matched
}
