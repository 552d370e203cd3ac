package catalog

import "strings"

// ResponseCategories is the scan order of the canned response bank.
var ResponseCategories = []string{"resume", "anxious", "skills", "interview", "balance", "confidence", "default"}

var cannedResponses = map[string][]string{
	"resume": {
		"Highlight your key achievements and add measurable outcomes.",
		"Use action verbs and quantify your impact with numbers.",
		"Tailor your resume to each job description and emphasize relevant skills.",
		"Include a strong summary that showcases your unique value proposition.",
	},
	"anxious": {
		"That's completely natural. Start small and celebrate every progress.",
		"Remember, many mothers successfully return to work. You're not alone in this journey.",
		"Focus on your strengths and the valuable skills you've developed during your break.",
		"Take it one day at a time. Progress, not perfection, is what matters.",
	},
	"skills": {
		"Consider online courses in your field to refresh your knowledge.",
		"Practice with small projects to build confidence in your skills.",
		"Join professional communities to stay updated with industry trends.",
		"Your life experience is valuable - don't underestimate transferable skills!",
	},
	"interview": {
		"Practice common interview questions and prepare your answers in advance.",
		"Research the company thoroughly and prepare thoughtful questions to ask.",
		"Be honest about your career gap - frame it as a period of personal growth.",
		"Prepare specific examples that demonstrate your skills and achievements.",
	},
	"balance": {
		"Work-life balance is achievable with proper planning and boundaries.",
		"Communicate your needs clearly with your employer from the start.",
		"Remember that it's okay to ask for flexible arrangements.",
		"Prioritize self-care - you can't pour from an empty cup.",
	},
	"confidence": {
		"Your experiences as a mother have given you unique skills employers value.",
		"Set small, achievable goals to build momentum and confidence.",
		"Surround yourself with supportive people who believe in you.",
		"Remember: impostor syndrome affects everyone. You deserve to be here.",
	},
	"default": {
		"I'm here to support you in your career re-entry journey.",
		"Every challenge is an opportunity to grow. You've got this!",
		"Your unique perspective and experience are valuable assets.",
		"Remember to be kind to yourself during this transition.",
	},
}

// CannedResponses returns a copy of one category's responses.
func CannedResponses(category string) []string {
	return append([]string(nil), cannedResponses[category]...)
}

// CannedResponse returns the first response of the first category whose key
// occurs in the lower-cased context and question, or the first default response.
func CannedResponse(context, question string) string {
	haystack := strings.ToLower(context) + " " + strings.ToLower(question)
	for _, key := range ResponseCategories {
		if strings.Contains(haystack, key) {
			return cannedResponses[key][0]
		}
	}
	return cannedResponses["default"][0]
}

// DefaultRoleTrait is the archetype used when a personality has no role table.
const DefaultRoleTrait = Collaborative

var careerRoles = map[Trait][]string{
	Analytical:     {"Data Analyst", "QA Engineer", "Project Manager", "Business Analyst", "Financial Analyst"},
	Creative:       {"UI Designer", "Content Strategist", "Product Designer", "Marketing Manager", "Brand Manager"},
	Empathetic:     {"Customer Success", "HR Associate", "Social Worker", "Healthcare Coordinator", "Counselor"},
	Collaborative:  {"Team Lead", "Scrum Master", "Account Manager", "Community Manager", "Operations Manager"},
	Organizational: {"Project Coordinator", "Office Manager", "Operations Specialist", "Event Planner", "Executive Assistant"},
}

// CareerRoles looks up the role table for a personality, case-insensitively.
// Unknown personalities get the default archetype's roles.
func CareerRoles(personality string) []string {
	roles, ok := careerRoles[Trait(strings.ToLower(strings.TrimSpace(personality)))]
	if !ok {
		roles = careerRoles[DefaultRoleTrait]
	}
	return append([]string(nil), roles...)
}
