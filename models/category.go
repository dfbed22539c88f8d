package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type Category string

const (
	CategoryTop       Category = "TOP"
	CategoryBottom    Category = "BOTTOM"
	CategoryShoes     Category = "SHOES"
	CategoryOuter     Category = "OUTER"
	CategoryAccessory Category = "ACCESSORY"
)

func (l *Category) Scan(value interface{}) error {
	*l = Category(value.(string))
	return nil
}

func (l Category) Value() (string, error) {
	return string(l), nil
}

func ValidateCategory(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^TOP|BOTTOM|SHOES|OUTER|ACCESSORY$", fl.Field().String())
	return matched
}

func ValidateCategoryRaw(value string) bool {
	matched, _ := regexp.MatchString("^TOP|BOTTOM|SHOES|OUTER|ACCESSORY$", value)
	return matched
}
