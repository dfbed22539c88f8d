// Package agent is the rule-based conversational layer over the stylist
// engine. It is a closed decision list, not a learned model: every reply
// carries a trace of the rules that fired so behavior stays reproducible.
//
// The "7-day exclusion" mentioned in the mark-dirty reply is stated intent
// only; nothing in scoring or generation enforces it yet.
package agent

import (
	"fmt"
	"strings"

	"glamapi/models"
	"glamapi/stylist"
)

// Context is the caller-owned session state threaded between turns.
// Single writer per session: the agent mutates it after a successful
// generation, nothing else may touch it concurrently.
type Context struct {
	Wardrobe    []stylist.Item
	LastOutfits []stylist.Generated
	LastParams  *stylist.Params
}

type Action struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Type    string `json:"type"` // GENERATE, MODIFY, MARK_WORN, MARK_DIRTY, ADD_CALENDAR, NAVIGATE, SEND_MSG
	Payload string `json:"payload,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// Trace is the explainability contract: which intent resolved, which slots
// were parsed, which named rules fired and in what order.
type Trace struct {
	Intent         Intent            `json:"intent"`
	ParsedParams   map[string]string `json:"parsed_params"`
	RulesTriggered []string          `json:"rules_triggered"`
	Confidence     float64           `json:"confidence"`
}

type Response struct {
	Content string              `json:"content"`
	Outfits []stylist.Generated `json:"outfits,omitempty"`
	Actions []Action            `json:"actions,omitempty"`
	Trace   Trace               `json:"trace"`
}

type rule struct {
	intent Intent
	handle func(text string, ctx *Context) Response
}

// Ordered dispatch table mirroring Classify's precedence, kept as explicit
// intent->handler pairs so each rule is testable on its own.
var rules = []rule{
	{IntentHelp, handleHelp},
	{IntentGenerate, handleGenerate},
	{IntentModify, handleModify},
	{IntentActionWorn, handleActionWorn},
	{IntentActionDirty, handleActionDirty},
}

// ProcessMessage runs one conversational turn. Pure except for the context
// updates after a successful generation.
func ProcessMessage(input string, ctx *Context) Response {
	text := strings.ToLower(input)
	intent := Classify(text)
	for _, r := range rules {
		if r.intent == intent {
			return r.handle(text, ctx)
		}
	}
	return handleUnknown(text, ctx)
}

func handleHelp(_ string, _ *Context) Response {
	return Response{
		Content: "Hi! I'm your AI style assistant. I can generate outfits for any occasion, adjust them to your needs, or help manage your wardrobe.",
		Actions: []Action{
			{ID: "gen_today", Label: "Get me ready for today", Type: "SEND_MSG", Payload: "Get me ready for today", Primary: true},
			{ID: "gen_date", Label: "Plan a date night outfit", Type: "SEND_MSG", Payload: "Find a date night outfit"},
			{ID: "nav_wardrobe", Label: "Add new item", Type: "NAVIGATE", Payload: "/wardrobe"},
		},
		Trace: Trace{
			Intent:         IntentHelp,
			ParsedParams:   map[string]string{},
			RulesTriggered: []string{"Greeting Rule"},
			Confidence:     1.0,
		},
	}
}

func handleGenerate(text string, ctx *Context) Response {
	mood := ExtractMood(text)
	occasion := ExtractOccasion(text)
	weather := ExtractWeather(text)

	moodMatch := moodRe.FindString(text)
	occMatch := occasionRe.FindString(text)

	trace := Trace{
		Intent: IntentGenerate,
		ParsedParams: map[string]string{
			"mood":     describeSlot(moodMatch, string(mood), string(models.MoodHappy)),
			"occasion": describeSlot(occMatch, string(occasion), string(models.OccasionCasual)),
			"weather":  describeWeatherSlot(weather, ctx),
		},
		RulesTriggered: []string{"Intent Parser > Generate"},
		Confidence:     0.9,
	}

	// the chat path never silently defaults weather, it asks
	if weather == "" && (ctx.LastParams == nil || ctx.LastParams.Weather == "") {
		trace.RulesTriggered = append(trace.RulesTriggered, "Missing Parameter: Weather")
		return Response{
			Content: "I can help with that. What's the weather like right now?",
			Actions: []Action{
				{ID: "w_sunny", Label: "Sunny & Warm", Type: "SEND_MSG", Payload: fmt.Sprintf("Sunny warm outfit for %s", occasion)},
				{ID: "w_cold", Label: "Cold & Rainy", Type: "SEND_MSG", Payload: fmt.Sprintf("Cold rainy outfit for %s", occasion)},
			},
			Trace: trace,
		}
	}

	finalWeather := weather
	if finalWeather == "" {
		finalWeather = ctx.LastParams.Weather
	}
	if finalWeather == "" {
		finalWeather = "mild"
	}

	var vibes []string
	if mood == models.MoodRelaxed {
		vibes = []string{"stressed"}
		trace.RulesTriggered = append(trace.RulesTriggered, "Vibe Inference: stressed")
	}
	trace.ParsedParams["finalWeather"] = finalWeather

	params := stylist.Params{Mood: mood, Occasion: occasion, Weather: finalWeather, Vibes: vibes}
	outfits := stylist.GenerateOutfits(ctx.Wardrobe, params)

	if len(outfits) == 0 {
		trace.RulesTriggered = append(trace.RulesTriggered, "Error: No Outfits Generated")
		return Response{
			Content: "I couldn't find a complete outfit with your current wardrobe constraints. Try creating a wardrobe gap list?",
			Actions: []Action{{ID: "add_item", Label: "Add Item", Type: "NAVIGATE", Payload: "/wardrobe"}},
			Trace:   trace,
		}
	}

	trace.RulesTriggered = append(trace.RulesTriggered,
		fmt.Sprintf("Scoring Engine: Generated %d outfits", len(outfits)),
		fmt.Sprintf("Top Logic: %s", outfits[0].Explanation),
	)

	ctx.LastOutfits = outfits
	ctx.LastParams = &stylist.Params{Mood: mood, Occasion: occasion, Weather: finalWeather}

	return Response{
		Content: fmt.Sprintf("Here are 3 %s outfits for %s (%s).", mood, occasion, finalWeather),
		Outfits: outfits,
		Actions: []Action{
			{ID: "mod_warmer", Label: "Make it warmer", Type: "SEND_MSG", Payload: "Make it warmer"},
			{ID: "mod_formal", Label: "Make it more formal", Type: "SEND_MSG", Payload: "Make it formal"},
		},
		Trace: trace,
	}
}

func handleModify(text string, ctx *Context) Response {
	modifier := modifyRe.FindString(text)
	if modifier == "" {
		modifier = "unknown"
	}
	trace := Trace{
		Intent:         IntentModify,
		ParsedParams:   map[string]string{"modifier": modifier},
		RulesTriggered: []string{"Intent Parser > Modify"},
		Confidence:     0.95,
	}

	if len(ctx.LastOutfits) == 0 || ctx.LastParams == nil {
		trace.RulesTriggered = append(trace.RulesTriggered, "Error: No Context")
		return Response{
			Content: "I need to generate an outfit first before I can modify it!",
			Actions: []Action{{ID: "help_gen", Label: "Generate Outfit", Type: "SEND_MSG", Payload: "Generate an outfit"}},
			Trace:   trace,
		}
	}

	params := *ctx.LastParams
	modMsg := ""
	switch {
	case strings.Contains(text, "warmer"):
		params.Weather = "cold freezing"
		modMsg = "Switching to warmer layers."
		trace.RulesTriggered = append(trace.RulesTriggered, "Constraint Update: Weather -> cold freezing")
	case strings.Contains(text, "cooler"):
		params.Weather = "hot sunny"
		modMsg = "Looking for lighter options."
		trace.RulesTriggered = append(trace.RulesTriggered, "Constraint Update: Weather -> hot sunny")
	case strings.Contains(text, "formal"):
		params.Occasion = models.OccasionFormal
		params.Mood = models.MoodConfident
		modMsg = "Elevating the look to formal."
		trace.RulesTriggered = append(trace.RulesTriggered, "Constraint Update: Occasion -> formal")
	case strings.Contains(text, "casual") || strings.Contains(text, "comfy"):
		params.Occasion = models.OccasionCasual
		params.Mood = models.MoodRelaxed
		modMsg = "Prioritizing comfort."
		trace.RulesTriggered = append(trace.RulesTriggered, "Constraint Update: Occasion -> casual")
	}

	params.Vibes = nil
	outfits := stylist.GenerateOutfits(ctx.Wardrobe, params)
	if len(outfits) > 0 {
		ctx.LastOutfits = outfits
		ctx.LastParams = &stylist.Params{Mood: params.Mood, Occasion: params.Occasion, Weather: params.Weather}
	}

	return Response{
		Content: fmt.Sprintf("Understood. %s", modMsg),
		Outfits: outfits,
		Actions: []Action{{ID: "save_outfit", Label: "View All Outfits", Type: "NAVIGATE", Payload: "/outfits"}},
		Trace:   trace,
	}
}

func handleActionWorn(_ string, _ *Context) Response {
	// confirmation only, the wear-count mutation belongs to the wardrobe
	// store and fires after an explicit user confirmation
	return Response{
		Content: "I can mark your last outfit as worn to update styling stats.",
		Actions: []Action{
			{ID: "confirm_worn", Label: "Confirm: Mark Worn", Type: "MARK_WORN", Payload: "true", Primary: true},
		},
		Trace: Trace{Intent: IntentActionWorn, ParsedParams: map[string]string{}, RulesTriggered: []string{"Action > Mark Worn"}, Confidence: 1.0},
	}
}

func handleActionDirty(_ string, _ *Context) Response {
	return Response{
		Content: "I've flagged those items as needing a wash. I'll avoid recommending them for 7 days.",
		Actions: []Action{},
		Trace:   Trace{Intent: IntentActionDirty, ParsedParams: map[string]string{}, RulesTriggered: []string{"Action > Mark Dirty", "Logic: 7-day exclusion"}, Confidence: 1.0},
	}
}

func handleUnknown(_ string, _ *Context) Response {
	return Response{
		Content: "I'm your style assistant. Try asking me to 'Get me ready for a date' or 'Finding a work outfit'.",
		Actions: []Action{
			{ID: "gen_work", Label: "Work Outfit", Type: "SEND_MSG", Payload: "Find a work outfit", Primary: true},
			{ID: "gen_cas", Label: "Casual Weekend", Type: "SEND_MSG", Payload: "Casual weekend outfit"},
		},
		Trace: Trace{Intent: IntentUnknown, ParsedParams: map[string]string{}, RulesTriggered: []string{"Fallback Response"}, Confidence: 0.1},
	}
}

func describeSlot(match, resolved, fallback string) string {
	if match != "" {
		return match
	}
	if resolved != fallback {
		return resolved
	}
	return fmt.Sprintf("default(%s)", fallback)
}

func describeWeatherSlot(weather string, ctx *Context) string {
	if weather != "" {
		return weather
	}
	if ctx.LastParams != nil && ctx.LastParams.Weather != "" {
		return "context"
	}
	return "missing"
}
