package catalog

type PodTask struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Progress    int    `json:"progress"`
}

var podTasks = map[string][]PodTask{
	"skill": {
		{ID: 1, Title: "Complete Resume Module", Description: "Revise and polish your resume", Progress: 20},
		{ID: 2, Title: "Interview Prep", Description: "Practice common interview questions", Progress: 25},
		{ID: 3, Title: "Networking", Description: "Attend a virtual networking session", Progress: 15},
	},
	"company": {
		{ID: 1, Title: "Onboard to Project", Description: "Read project brief and setup environment", Progress: 20},
		{ID: 2, Title: "Implement Feature", Description: "Complete assigned feature", Progress: 50},
		{ID: 3, Title: "Submit Project", Description: "Finalize and submit for review", Progress: 30},
	},
	"health": {
		{ID: 1, Title: "Log Daily Wellness", Description: "Submit mood and sleep data", Progress: 10},
		{ID: 2, Title: "Follow Wellness Plan", Description: "Complete daily wellness activity", Progress: 20},
	},
	"baby_monitor": {
		{ID: 1, Title: "Connect Device", Description: "Ensure baby monitor is connected", Progress: 10},
		{ID: 2, Title: "Review Alerts", Description: "Check recent alerts and trends", Progress: 20},
	},
	"mental_health": {
		{ID: 1, Title: "Daily Journal", Description: "Write a short journal entry", Progress: 5},
		{ID: 2, Title: "Mindfulness Exercise", Description: "Complete a 10-minute mindfulness", Progress: 15},
	},
	"post_placement": {
		{ID: 1, Title: "Set Career Goals", Description: "Define short and mid-term goals", Progress: 10},
		{ID: 2, Title: "Skill Checkpoint", Description: "Complete a skills validation task", Progress: 20},
	},
}

// PodTasks returns a copy of the task list for a pod type; unknown types have none.
func PodTasks(podType string) []PodTask {
	return append([]PodTask(nil), podTasks[podType]...)
}

func HasPodTask(podType string, taskID int) bool {
	for _, t := range podTasks[podType] {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

// RoleSuggestion is one rule-based role with the pods that prepare for it.
type RoleSuggestion struct {
	Role string   `json:"role"`
	Pods []string `json:"pods"`
}

// PodRule adds Suggestions when the skill category or the canonical personality matches.
type PodRule struct {
	Categories    []string
	Personalities []Trait
	Suggestions   []RoleSuggestion
}

func (r PodRule) Matches(category string, personality Trait) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	for _, p := range r.Personalities {
		if p == personality {
			return true
		}
	}
	return false
}

var podRules = []PodRule{
	{
		Categories:    []string{"tech"},
		Personalities: []Trait{Analytical},
		Suggestions: []RoleSuggestion{
			{Role: "Fullstack Developer", Pods: []string{"skill", "company", "post_placement"}},
			{Role: "Backend Engineer", Pods: []string{"skill", "company"}},
			{Role: "Data Analyst", Pods: []string{"skill", "post_placement"}},
			{Role: "Design Verification Engineer", Pods: []string{"skill", "company"}},
		},
	},
	{
		Categories:    []string{"design"},
		Personalities: []Trait{Creative},
		Suggestions: []RoleSuggestion{
			{Role: "UI/UX Designer", Pods: []string{"skill", "company"}},
			{Role: "Product Designer", Pods: []string{"skill", "post_placement"}},
		},
	},
	{
		Categories:    []string{"hr"},
		Personalities: []Trait{Empathetic},
		Suggestions: []RoleSuggestion{
			{Role: "People Operations Specialist", Pods: []string{"skill", "post_placement"}},
			{Role: "Learning & Development Coordinator", Pods: []string{"skill", "company"}},
		},
	},
}

var podFallback = []RoleSuggestion{
	{Role: "Fullstack Developer", Pods: []string{"skill", "company", "post_placement"}},
	{Role: "UI/UX Designer", Pods: []string{"skill", "company"}},
	{Role: "Project Coordinator", Pods: []string{"skill", "post_placement"}},
}

func cloneSuggestions(in []RoleSuggestion) []RoleSuggestion {
	out := make([]RoleSuggestion, len(in))
	for i, s := range in {
		out[i] = RoleSuggestion{Role: s.Role, Pods: append([]string(nil), s.Pods...)}
	}
	return out
}

// PodRules returns the recommendation rules in evaluation order.
func PodRules() []PodRule {
	out := make([]PodRule, len(podRules))
	for i, r := range podRules {
		out[i] = PodRule{
			Categories:    append([]string(nil), r.Categories...),
			Personalities: append([]Trait(nil), r.Personalities...),
			Suggestions:   cloneSuggestions(r.Suggestions),
		}
	}
	return out
}

// PodFallback is returned when no rule matched.
func PodFallback() []RoleSuggestion {
	return cloneSuggestions(podFallback)
}
