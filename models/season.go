package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type Season string

const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
	SeasonWinter Season = "WINTER"
	SeasonAll    Season = "ALL"
)

func (l *Season) Scan(value interface{}) error {
	*l = Season(value.(string))
	return nil
}

func (l Season) Value() (string, error) {
	return string(l), nil
}

func ValidateSeason(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^SPRING|SUMMER|FALL|WINTER|ALL$", fl.Field().String())
	return matched
}

func ValidateSeasonRaw(value string) bool {
	matched, _ := regexp.MatchString("^SPRING|SUMMER|FALL|WINTER|ALL$", value)
	return matched
}
