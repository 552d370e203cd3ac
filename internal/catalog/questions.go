// Package catalog holds the immutable question banks, skill paths and response
// tables. Everything here is built once at package init and never mutated.
package catalog

type Trait string

const (
	Analytical     Trait = "analytical"
	Creative       Trait = "creative"
	Empathetic     Trait = "empathetic"
	Collaborative  Trait = "collaborative"
	Organizational Trait = "organizational"
)

// Traits is the fixed enumeration order. Scoring ties resolve to the earlier trait.
var Traits = [...]Trait{Analytical, Creative, Empathetic, Collaborative, Organizational}

type PersonalityQuestion struct {
	ID    int    `json:"id"`
	Text  string `json:"question"`
	Trait Trait  `json:"type"`
}

type SkillQuestion struct {
	ID           int       `json:"id"`
	Text         string    `json:"question"`
	Options      [4]string `json:"options"`
	CorrectIndex int       `json:"-"`
}

var personalityQuestions = []PersonalityQuestion{
	{ID: 1, Text: "I enjoy solving logical problems", Trait: Analytical},
	{ID: 2, Text: "I like working in teams", Trait: Collaborative},
	{ID: 3, Text: "I'm confident managing multiple tasks", Trait: Organizational},
	{ID: 4, Text: "I prefer creative solutions over standard ones", Trait: Creative},
	{ID: 5, Text: "I'm empathetic and understand others' emotions", Trait: Empathetic},
	{ID: 6, Text: "I enjoy learning new technologies", Trait: Analytical},
	{ID: 7, Text: "I like helping others succeed", Trait: Empathetic},
	{ID: 8, Text: "I'm detail-oriented in my work", Trait: Organizational},
	{ID: 9, Text: "I thrive in dynamic environments", Trait: Creative},
	{ID: 10, Text: "I'm comfortable with data and numbers", Trait: Analytical},
	{ID: 11, Text: "I build relationships easily", Trait: Collaborative},
	{ID: 12, Text: "I'm good at planning and prioritizing", Trait: Organizational},
	{ID: 13, Text: "I enjoy brainstorming new ideas", Trait: Creative},
	{ID: 14, Text: "I listen actively to understand perspectives", Trait: Empathetic},
	{ID: 15, Text: "I work well under pressure", Trait: Organizational},
}

// SkillCategories lists the categories in their canonical order.
var SkillCategories = []string{"tech", "design", "hr"}

var skillTests = map[string][]SkillQuestion{
	"tech": {
		{ID: 1, Text: "What does OOP stand for?", Options: [4]string{"Object Oriented Programming", "Only One Program", "Output Operation Process", "Open Online Platform"}, CorrectIndex: 0},
		{ID: 2, Text: "What is the time complexity of binary search?", Options: [4]string{"O(n)", "O(log n)", "O(n^2)", "O(1)"}, CorrectIndex: 1},
		{ID: 3, Text: "Which language is commonly used for AI model training?", Options: [4]string{"Java", "Python", "C++", "Ruby"}, CorrectIndex: 1},
		{ID: 4, Text: "What does HTML stand for?", Options: [4]string{"Hyper Text Markup Language", "High Tech Modern Language", "Home Tool Markup Language", "Hyperlinks and Text Markup Language"}, CorrectIndex: 0},
		{ID: 5, Text: "Which data structure uses LIFO?", Options: [4]string{"Queue", "Stack", "Array", "Tree"}, CorrectIndex: 1},
		{ID: 6, Text: "What is Git used for?", Options: [4]string{"Database Management", "Version Control", "UI Design", "Testing"}, CorrectIndex: 1},
		{ID: 7, Text: "What does API stand for?", Options: [4]string{"Application Programming Interface", "Advanced Program Integration", "Automated Process Implementation", "Application Process Interface"}, CorrectIndex: 0},
		{ID: 8, Text: "Which is a NoSQL database?", Options: [4]string{"MySQL", "PostgreSQL", "MongoDB", "Oracle"}, CorrectIndex: 2},
		{ID: 9, Text: "What is CSS used for?", Options: [4]string{"Programming logic", "Styling web pages", "Database queries", "Server management"}, CorrectIndex: 1},
		{ID: 10, Text: "What does REST stand for in API design?", Options: [4]string{"Representational State Transfer", "Remote Execution State Transfer", "Rapid Execution Service Tool", "Reliable Endpoint Service Transfer"}, CorrectIndex: 0},
	},
	"design": {
		{ID: 1, Text: "What is the purpose of a wireframe?", Options: [4]string{"Final design", "Layout structure", "Color palette", "Animation"}, CorrectIndex: 1},
		{ID: 2, Text: "What does UI stand for?", Options: [4]string{"User Interface", "Universal Integration", "Uniform Interaction", "User Integration"}, CorrectIndex: 0},
		{ID: 3, Text: "Which tool is commonly used for prototyping?", Options: [4]string{"Excel", "Figma", "Word", "PowerPoint"}, CorrectIndex: 1},
		{ID: 4, Text: "What is UX focused on?", Options: [4]string{"Visual design", "User experience", "Code quality", "Marketing"}, CorrectIndex: 1},
		{ID: 5, Text: "What is a design system?", Options: [4]string{"A collection of reusable components", "A type of software", "A design tool", "A coding framework"}, CorrectIndex: 0},
		{ID: 6, Text: "What does responsive design mean?", Options: [4]string{"Fast loading", "Adapts to screen sizes", "Has animations", "Uses bright colors"}, CorrectIndex: 1},
		{ID: 7, Text: "What is the rule of thirds in design?", Options: [4]string{"Use three colors", "Composition guideline", "Three fonts maximum", "Three pages minimum"}, CorrectIndex: 1},
		{ID: 8, Text: "What is white space in design?", Options: [4]string{"Background color", "Empty space around elements", "Paper color", "Header area"}, CorrectIndex: 1},
		{ID: 9, Text: "What is A/B testing?", Options: [4]string{"Testing two versions", "Alphabetical testing", "After/Before testing", "Automated testing"}, CorrectIndex: 0},
		{ID: 10, Text: "What is a persona in UX?", Options: [4]string{"Designer name", "User archetype", "Color scheme", "Font style"}, CorrectIndex: 1},
	},
	"hr": {
		{ID: 1, Text: "What does HR stand for?", Options: [4]string{"High Ranking", "Human Resources", "Hiring Requirements", "Human Relations"}, CorrectIndex: 1},
		{ID: 2, Text: "What is onboarding?", Options: [4]string{"Hiring process", "Integrating new employees", "Board meeting", "Training program"}, CorrectIndex: 1},
		{ID: 3, Text: "What is KPI?", Options: [4]string{"Key Performance Indicator", "Knowledge Process Integration", "Key Process Improvement", "Known Performance Index"}, CorrectIndex: 0},
		{ID: 4, Text: "What is employee retention?", Options: [4]string{"Hiring new staff", "Keeping employees", "Training programs", "Performance reviews"}, CorrectIndex: 1},
		{ID: 5, Text: "What is a competency framework?", Options: [4]string{"Skill requirements", "Software tool", "Org chart", "Budget plan"}, CorrectIndex: 0},
		{ID: 6, Text: "What is workforce planning?", Options: [4]string{"Daily schedules", "Strategic staffing", "Office layout", "Team building"}, CorrectIndex: 1},
		{ID: 7, Text: "What is employer branding?", Options: [4]string{"Company logo", "Reputation as employer", "Product branding", "Office design"}, CorrectIndex: 1},
		{ID: 8, Text: "What is talent acquisition?", Options: [4]string{"Training", "Recruiting top talent", "Performance review", "Salary negotiation"}, CorrectIndex: 1},
		{ID: 9, Text: "What is succession planning?", Options: [4]string{"Exit interviews", "Preparing future leaders", "Retirement plans", "Promotion ceremony"}, CorrectIndex: 1},
		{ID: 10, Text: "What is employee engagement?", Options: [4]string{"Marriage proposal", "Commitment and motivation", "Contract signing", "Team meeting"}, CorrectIndex: 1},
	},
}

var (
	personalityByID = make(map[int]PersonalityQuestion, len(personalityQuestions))
	skillByID       = make(map[string]map[int]SkillQuestion, len(skillTests))
)

func init() {
	for _, q := range personalityQuestions {
		personalityByID[q.ID] = q
	}
	for cat, qs := range skillTests {
		m := make(map[int]SkillQuestion, len(qs))
		for _, q := range qs {
			m[q.ID] = q
		}
		skillByID[cat] = m
	}
}

// PersonalityQuestions returns a copy of the personality bank in display order.
func PersonalityQuestions() []PersonalityQuestion {
	out := make([]PersonalityQuestion, len(personalityQuestions))
	copy(out, personalityQuestions)
	return out
}

func PersonalityQuestionByID(id int) (PersonalityQuestion, bool) {
	q, ok := personalityByID[id]
	return q, ok
}

func IsSkillCategory(category string) bool {
	_, ok := skillTests[category]
	return ok
}

// SkillQuestions returns a copy of a category's bank, or nil for unknown categories.
func SkillQuestions(category string) []SkillQuestion {
	qs, ok := skillTests[category]
	if !ok {
		return nil
	}
	out := make([]SkillQuestion, len(qs))
	copy(out, qs)
	return out
}

func SkillQuestionCount(category string) int {
	return len(skillTests[category])
}

func SkillQuestionByID(category string, id int) (SkillQuestion, bool) {
	q, ok := skillByID[category][id]
	return q, ok
}
