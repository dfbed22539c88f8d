package stylist

import (
	"fmt"
	"sort"
	"strings"

	"glamapi/models"
)

// Item is an immutable wardrobe snapshot value the engine scores against.
// Controllers map gorm rows into this, the engine never mutates wear stats.
type Item struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Category  models.Category `json:"category"`
	Color     string          `json:"color"`
	Season    models.Season   `json:"season"`
	Tags      []string        `json:"tags"`
	TimesWorn int             `json:"times_worn"`
}

type Params struct {
	Mood     models.Mood
	Occasion models.Occasion
	Weather  string
	Vibes    []string
}

type ScoreResult struct {
	Score   int
	Reasons []string
}

type Generated struct {
	Items       []Item `json:"items"`
	Explanation string `json:"explanation"`
}

// SUMMER and WINTER are mutually opposed, the shoulder seasons only oppose
// the extreme on their far side. ALL goes with everything.
var oppositeSeasons = map[models.Season][]models.Season{
	models.SeasonSummer: {models.SeasonWinter},
	models.SeasonWinter: {models.SeasonSummer},
	models.SeasonSpring: {models.SeasonWinter},
	models.SeasonFall:   {models.SeasonSummer},
	models.SeasonAll:    {},
}

// Ordered substring table, first hit wins. Keep the order: "cold rainy"
// must resolve through "cold", not "rainy".
var weatherSeasonTable = []struct {
	keyword string
	seasons []models.Season
}{
	{"hot", []models.Season{models.SeasonSummer, models.SeasonAll}},
	{"warm", []models.Season{models.SeasonSpring, models.SeasonSummer, models.SeasonAll}},
	{"mild", []models.Season{models.SeasonSpring, models.SeasonFall, models.SeasonAll}},
	{"cool", []models.Season{models.SeasonFall, models.SeasonSpring, models.SeasonAll}},
	{"cold", []models.Season{models.SeasonWinter, models.SeasonFall, models.SeasonAll}},
	{"rainy", []models.Season{models.SeasonFall, models.SeasonSpring, models.SeasonAll}},
}

var moodTags = map[models.Mood][]string{
	models.MoodHappy:     {"casual", "everyday", "sporty", "weekend"},
	models.MoodConfident: {"formal", "elegant", "classic", "office"},
	models.MoodRelaxed:   {"casual", "cozy", "basic", "everyday"},
	models.MoodEnergetic: {"sporty", "casual", "everyday", "weekend"},
	models.MoodRomantic:  {"elegant", "feminine", "evening"},
	models.MoodMinimal:   {"basic", "versatile", "everyday"},
}

var occasionTags = map[models.Occasion][]string{
	models.OccasionWork:      {"office", "formal", "classic", "smart-casual"},
	models.OccasionCasual:    {"casual", "everyday", "basic", "weekend"},
	models.OccasionDateNight: {"elegant", "evening", "feminine", "formal"},
	models.OccasionParty:     {"evening", "elegant", "formal"},
	models.OccasionSport:     {"sporty", "casual", "everyday"},
	models.OccasionTravel:    {"versatile", "casual", "everyday", "layering"},
	models.OccasionFormal:    {"formal", "classic", "elegant", "office"},
}

// InferSeasons maps a free-text weather phrase to the seasons that suit it.
// No keyword match falls back to the ALL bucket, which is how the direct
// API path gets away with a missing weather value.
func InferSeasons(weather string) []models.Season {
	w := strings.ToLower(weather)
	for _, entry := range weatherSeasonTable {
		if strings.Contains(w, entry.keyword) {
			return entry.seasons
		}
	}
	return []models.Season{models.SeasonAll}
}

func seasonsCompatible(a, b models.Season) bool {
	if a == models.SeasonAll || b == models.SeasonAll {
		return true
	}
	for _, opposite := range oppositeSeasons[a] {
		if opposite == b {
			return false
		}
	}
	return true
}

func containsSeason(seasons []models.Season, s models.Season) bool {
	for _, candidate := range seasons {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func countMatches(preferred []string, itemTags []string) int {
	count := 0
	for _, t := range preferred {
		if containsTag(itemTags, t) {
			count++
		}
	}
	return count
}

// ScoreOutfit evaluates one candidate against the request context.
// Deterministic and pure; the rule order below fixes both the point total
// and the order of the explanation reasons.
func ScoreOutfit(items []Item, params Params) ScoreResult {
	score := 0
	reasons := []string{}

	goodSeasons := InferSeasons(params.Weather)
	var allItemTags []string
	for _, item := range items {
		allItemTags = append(allItemTags, item.Tags...)
	}

	hasNegativeVibes := false
	hasStatementOverride := false
	for _, v := range params.Vibes {
		if IsNegativeVibe(v) {
			hasNegativeVibes = true
		}
		if v == "bold" || v == "glamorous" || v == "confident" {
			hasStatementOverride = true
		}
	}

	// 1. season compatibility across all pairs, one verdict per candidate
	seasonOk := true
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if !seasonsCompatible(items[i].Season, items[j].Season) {
				seasonOk = false
			}
		}
	}
	if seasonOk {
		score += 3
		reasons = append(reasons, "Season-compatible pieces")
	} else {
		score -= 5
		reasons = append(reasons, "Season mismatch detected")
	}

	// 2. weather match
	weatherMatches := 0
	for _, item := range items {
		if containsSeason(goodSeasons, item.Season) {
			weatherMatches++
		}
	}
	if weatherMatches == len(items) {
		score += 3
		reasons = append(reasons, fmt.Sprintf("Suitable for %s weather", params.Weather))
	} else if weatherMatches > 0 {
		score += 1
	}

	// 3. color clash between every top/bottom pair
	hasClash := false
	for _, top := range items {
		if top.Category != models.CategoryTop {
			continue
		}
		for _, bottom := range items {
			if bottom.Category != models.CategoryBottom {
				continue
			}
			if ColorsClash(top.Color, bottom.Color) {
				hasClash = true
			}
		}
	}
	if !hasClash {
		score += 2
		reasons = append(reasons, "Colors harmonize well")
	} else {
		score -= 3
	}

	// 4. mood tag match, uncapped
	if moodMatches := countMatches(moodTags[params.Mood], allItemTags); moodMatches > 0 {
		score += moodMatches
		reasons = append(reasons, fmt.Sprintf("Matches your %s mood", params.Mood))
	}

	// 5. occasion tag match
	if occasionMatches := countMatches(occasionTags[params.Occasion], allItemTags); occasionMatches > 0 {
		score += occasionMatches
		reasons = append(reasons, fmt.Sprintf("Great for %s", params.Occasion))
	}

	// 6+7. vibes
	if len(params.Vibes) > 0 {
		var vibePrefTags []string
		seen := map[string]bool{}
		for _, v := range params.Vibes {
			for _, tag := range VibeTagMap[v] {
				if !seen[tag] {
					seen[tag] = true
					vibePrefTags = append(vibePrefTags, tag)
				}
			}
		}
		if vibeMatches := countMatches(vibePrefTags, allItemTags); vibeMatches > 0 {
			score += vibeMatches
			reasons = append(reasons, "Matches your selected vibes")
		}

		// negative vibes boost comfort, demote statement pieces
		if hasNegativeVibes {
			activeNegVibe := "low-energy"
			for _, v := range params.Vibes {
				if IsNegativeVibe(v) {
					activeNegVibe = v
					break
				}
			}
			if comfortCount := countMatches(ComfortTags, allItemTags); comfortCount > 0 {
				score += comfortCount * 2
				reasons = append(reasons, fmt.Sprintf("Chosen to match a %s day: comfort + low-effort pieces", activeNegVibe))
			}
			if !hasStatementOverride {
				if statementCount := countMatches(StatementTags, allItemTags); statementCount > 0 {
					score -= statementCount
					reasons = append(reasons, fmt.Sprintf("Reducing statement pieces for a %s day", activeNegVibe))
				}
			}
		}
	}

	// 8. wear frequency balance, prefer less worn pieces
	totalWorn := 0
	for _, item := range items {
		totalWorn += item.TimesWorn
	}
	avgWorn := float64(totalWorn) / float64(len(items))
	if avgWorn <= 3 {
		score += 2
		reasons = append(reasons, "Features fresh pieces from your wardrobe")
	} else if avgWorn > 7 {
		score -= 1
	}

	// 9. layering bonus
	for _, item := range items {
		if item.Category == models.CategoryOuter {
			score += 1
			reasons = append(reasons, "Includes layering piece")
			break
		}
	}

	return ScoreResult{Score: score, Reasons: reasons}
}

type candidate struct {
	items   []Item
	score   int
	reasons []string
}

func candidateKey(items []Item) string {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = int(item.ID)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

// GenerateOutfits enumerates TOP x BOTTOM x SHOES, each also tried with every
// OUTER individually, scores all candidates and returns the top 3 distinct
// item sets. Returns an empty slice when any base category is missing.
//
// Complexity is O(tops*bottoms*shoes*(1+outers)) score calls, fine for a
// personal wardrobe of tens of items per category; do not feed it a catalog.
func GenerateOutfits(wardrobe []Item, params Params) []Generated {
	var tops, bottoms, shoes, outers []Item
	for _, item := range wardrobe {
		switch item.Category {
		case models.CategoryTop:
			tops = append(tops, item)
		case models.CategoryBottom:
			bottoms = append(bottoms, item)
		case models.CategoryShoes:
			shoes = append(shoes, item)
		case models.CategoryOuter:
			outers = append(outers, item)
		}
	}

	if len(tops) == 0 || len(bottoms) == 0 || len(shoes) == 0 {
		return []Generated{}
	}

	var candidates []candidate
	for _, top := range tops {
		for _, bottom := range bottoms {
			for _, shoe := range shoes {
				base := []Item{top, bottom, shoe}
				r := ScoreOutfit(base, params)
				candidates = append(candidates, candidate{items: base, score: r.Score, reasons: r.Reasons})

				for _, outer := range outers {
					withOuter := []Item{top, bottom, shoe, outer}
					r2 := ScoreOutfit(withOuter, params)
					candidates = append(candidates, candidate{items: withOuter, score: r2.Score, reasons: r2.Reasons})
				}
			}
		}
	}

	// stable keeps generation order as the tie break
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	seen := map[string]bool{}
	results := []Generated{}
	for _, c := range candidates {
		if len(results) >= 3 {
			break
		}
		key := candidateKey(c.items)
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, Generated{
			Items:       c.items,
			Explanation: strings.Join(c.reasons, ". ") + ".",
		})
	}

	return results
}
