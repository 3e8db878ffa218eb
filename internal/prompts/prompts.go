// Package prompts builds the model prompts for each analysis. Builders are
// pure: same input, same prompt, no I/O.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

const emotionalTemplate = `Analyze the following message from someone experiencing grief or emotional difficulty:
"%s"
%s
Format your response as JSON with the following structure:
{
    "emotional_validation": "A compassionate validation of their emotions and experience",
    "mood_analysis": {
        "detected_mood": "Primary emotional state detected (e.g., sadness, anger, denial)",
        "mood_intensity": 7,
        "grief_stage": "Identified stage of grief if applicable (e.g., denial, anger, bargaining, depression, acceptance)"
    },
    "coping_strategies": [
        "1. Specific, actionable coping strategy 1",
        "2. Specific, actionable coping strategy 2",
        "3. Specific, actionable coping strategy 3",
        "4. Specific, actionable coping strategy 4",
        "5. Specific, actionable coping strategy 5"
    ]
}

Note for coping_strategies: provide exactly five strategies and format each with a number at the beginning (1., 2., etc.)
mood_intensity is an integer from 1 (mild) to 10 (overwhelming).

Ensure the response is compassionate, validating, and provides practical strategies.
Make sure your JSON is properly formatted with double quotes around keys and string values.
Provide ONLY the JSON in your response, with no additional text before or after.`

const dailyPlanTemplate = `Below is a message from someone experiencing grief. Create a compassionate and personalized daily plan
that supports their emotional well-being.

USER MESSAGE: %s

USER PREFERENCES: %s
%s
As an empathetic wellness planner, create a detailed daily structure that acknowledges their grief
while helping them move through their day with care and purpose. The plan should include:

1. Morning activities focused on gentle self-care and setting intentions
2. Afternoon activities that provide healthy distraction and purpose
3. Evening activities for reflection and rest
4. Food recommendations that support emotional well-being
5. Healing activities distributed throughout the day
6. Memory rituals that honor their loss

Every list must contain at least 3 items.

Format your response as strict JSON with no additional explanatory text:

{
    "morning": [
        {"time": "8:00 AM", "activity": "Activity description", "benefit": "Why this helps"}
    ],
    "afternoon": [
        {"time": "1:00 PM", "activity": "Activity description", "benefit": "Why this helps"}
    ],
    "evening": [
        {"time": "7:00 PM", "activity": "Activity description", "benefit": "Why this helps"}
    ],
    "food_recommendations": [
        {"meal": "Breakfast/Lunch/Dinner/Snack", "suggestion": "Food suggestion", "benefit": "Emotional/nutritional benefit"}
    ],
    "healing_activities": [
        {"time": "Time", "activity": "Healing activity", "benefit": "Why this helps"}
    ],
    "memory_rituals": [
        {"activity": "Ritual description", "purpose": "Emotional purpose"}
    ]
}`

const moodPhraseTemplate = `Analyze the following message from someone experiencing grief or emotional difficulty:
"%s"
Identify their emotional state and return only a single word or short phrase describing their primary mood.`

const searchQueryTemplate = `You are helping someone who is feeling "%s" find supportive %s on YouTube.
Write one short search query (at most eight words) that would surface soothing, uplifting or therapeutic %s for this mood.
Return only the query text on a single line, without quotes or explanation.`

const relevanceTemplate = `Someone who is feeling "%s" was recommended the following %s:
Title: %s
Description: %s

In one or two compassionate sentences, explain why this could help with their current mood.
Return only the explanation text.`

// Candidate is the part of a search result a relevance prompt needs.
type Candidate struct {
	Title       string
	Description string
}

// Emotional asks for validation, a mood analysis and five numbered coping
// strategies. A non-empty mood is offered as prior context.
func Emotional(message, mood string) string {
	return fmt.Sprintf(emotionalTemplate, message, moodContext(mood))
}

// DailyPlan asks for a six-section plan. A nil prefs map serializes as {}.
func DailyPlan(message string, prefs map[string]any, mood string) (string, error) {
	prefJSON := []byte("{}")
	if len(prefs) > 0 {
		var err error
		prefJSON, err = json.Marshal(prefs)
		if err != nil {
			return "", fmt.Errorf("serialize preferences: %w", err)
		}
	}
	return fmt.Sprintf(dailyPlanTemplate, message, prefJSON, moodContext(mood)), nil
}

// MoodPhrase asks the model to reduce message to a short mood phrase.
func MoodPhrase(message string) string {
	return fmt.Sprintf(moodPhraseTemplate, message)
}

// SearchQuery asks for a search query suited to mood and mediaType.
func SearchQuery(mood, mediaType string) string {
	return fmt.Sprintf(searchQueryTemplate, mood, mediaType, mediaType)
}

// Relevance asks why a recommendation suits mood.
func Relevance(mood, mediaType string, c Candidate) string {
	return fmt.Sprintf(relevanceTemplate, mood, mediaType, c.Title, truncate(c.Description, 500))
}

func moodContext(mood string) string {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return ""
	}
	return fmt.Sprintf("\nA previous analysis detected their primary mood as %q. Take this into account.\n", mood)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
