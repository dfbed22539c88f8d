package models

import (
	"strings"
	"time"
)

type ClothingItem struct {
	JsonModel
	Name     string      `json:"name"`
	Category Category    `sql:"type:ENUM('TOP', 'BOTTOM', 'SHOES', 'OUTER', 'ACCESSORY')" json:"category"`
	Color    string      `json:"color"`
	Season   Season      `sql:"type:ENUM('SPRING', 'SUMMER', 'FALL', 'WINTER', 'ALL')" json:"season"`
	Tags     string      `json:"-"` // comma separated, see TagList
	ImageURL *string     `json:"image_url"`
	Owner    UserAccount `json:"-"`
	OwnerID  uint        `json:"-"`

	TimesWorn int        `gorm:"default:0" json:"times_worn"`
	LastWorn  *time.Time `json:"last_worn"`
}

// TagList splits the stored comma separated tags. Order preserved for
// display, scoring treats it as a set.
func (c *ClothingItem) TagList() []string {
	return TagsToSlice(c.Tags)
}

func (c *ClothingItem) SetTags(tags []string) {
	c.Tags = TagsToString(tags)
}

func TagsToSlice(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return []string{}
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func TagsToString(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

type Outfit struct {
	JsonModel
	Explanation    string      `json:"explanation"`
	Mood           Mood        `json:"mood"`
	Occasion       Occasion    `json:"occasion"`
	WeatherSummary string      `json:"weather_summary"`
	Owner          UserAccount `json:"-"`
	OwnerID        uint        `json:"-"`

	Items    []OutfitItem     `json:"items"`
	Feedback []OutfitFeedback `json:"feedback"`
}

type OutfitItem struct {
	JsonModel
	OutfitID       uint         `json:"-"`
	ClothingItemID uint         `json:"-"`
	ClothingItem   ClothingItem `json:"clothing_item"`
}

type OutfitFeedback struct {
	JsonModel
	OutfitID uint    `json:"outfit_id"`
	Rating   int     `json:"rating"`
	Liked    bool    `json:"liked"`
	Note     *string `json:"note"`
}

// PlannedOutfit pins an outfit to a calendar date, one per date per user.
type PlannedOutfit struct {
	JsonModel
	Date     string `gorm:"uniqueIndex:idx_owner_date" json:"date"` // YYYY-MM-DD
	OutfitID uint   `json:"outfit_id"`
	Outfit   Outfit `json:"outfit"`
	OwnerID  uint   `gorm:"uniqueIndex:idx_owner_date" json:"-"`
}
