package planner

// Request is the body of POST /daily-plan.
type Request struct {
	UserMessage string         `json:"user_message"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Plan is a structured day of activities for someone who is grieving.
type Plan struct {
	Morning             []Activity `json:"morning"`
	Afternoon           []Activity `json:"afternoon"`
	Evening             []Activity `json:"evening"`
	FoodRecommendations []Food     `json:"food_recommendations"`
	HealingActivities   []Activity `json:"healing_activities"`
	MemoryRituals       []Ritual   `json:"memory_rituals"`
}

type Activity struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Benefit  string `json:"benefit"`
}

type Food struct {
	Meal       string `json:"meal"`
	Suggestion string `json:"suggestion"`
	Benefit    string `json:"benefit"`
}

type Ritual struct {
	Activity string `json:"activity"`
	Purpose  string `json:"purpose"`
}

// normalize replaces missing lists with empty ones so every section
// serializes as an array.
func (p *Plan) normalize() {
	if p.Morning == nil {
		p.Morning = []Activity{}
	}
	if p.Afternoon == nil {
		p.Afternoon = []Activity{}
	}
	if p.Evening == nil {
		p.Evening = []Activity{}
	}
	if p.FoodRecommendations == nil {
		p.FoodRecommendations = []Food{}
	}
	if p.HealingActivities == nil {
		p.HealingActivities = []Activity{}
	}
	if p.MemoryRituals == nil {
		p.MemoryRituals = []Ritual{}
	}
}

// Len is the total number of entries across all sections.
func (p *Plan) Len() int {
	return len(p.Morning) + len(p.Afternoon) + len(p.Evening) +
		len(p.FoodRecommendations) + len(p.HealingActivities) + len(p.MemoryRituals)
}
