package catalog

type SkillPath struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Skills           []string `json:"skills"`
	MentorTopics     []string `json:"mentor_topics"`
	AssessmentTopics []string `json:"assessment_topics"`
}

// HasTopic reports whether topic is one of the path's assessable topics.
func (p SkillPath) HasTopic(topic string) bool {
	for _, t := range p.AssessmentTopics {
		if t == topic {
			return true
		}
	}
	return false
}

var skillPaths = []SkillPath{
	{
		ID:               "fullstack",
		Title:            "Full Stack Development",
		Description:      "Learn web development from front-end to back-end",
		Skills:           []string{"HTML/CSS", "JavaScript", "Python/Flask", "Database Design", "API Development"},
		MentorTopics:     []string{"coding challenges", "project architecture", "debugging tips", "best practices"},
		AssessmentTopics: []string{"frontend", "backend", "database", "api_design", "system_design"},
	},
	{
		ID:               "ml_engineer",
		Title:            "Machine Learning Engineer",
		Description:      "Master AI and machine learning technologies",
		Skills:           []string{"Python", "Mathematics", "Machine Learning", "Deep Learning", "Data Processing"},
		MentorTopics:     []string{"ml algorithms", "model training", "data preprocessing", "model deployment"},
		AssessmentTopics: []string{"python", "math_stats", "ml_concepts", "deep_learning", "data_analysis"},
	},
	{
		ID:               "vlsi",
		Title:            "VLSI Engineer",
		Description:      "Learn chip design and verification",
		Skills:           []string{"Digital Design", "Verilog", "ASIC Design", "Verification", "Physical Design"},
		MentorTopics:     []string{"circuit design", "verification methods", "timing analysis", "power optimization"},
		AssessmentTopics: []string{"digital_design", "hdl", "verification", "physical_design", "timing"},
	},
	{
		ID:               "data_science",
		Title:            "Data Scientist",
		Description:      "Learn data analysis and visualization",
		Skills:           []string{"Python", "Statistics", "Data Analysis", "Visualization", "Big Data"},
		MentorTopics:     []string{"data analysis", "statistical methods", "visualization techniques", "big data tools"},
		AssessmentTopics: []string{"python", "statistics", "data_analysis", "visualization", "big_data"},
	},
	{
		ID:               "cloud_engineer",
		Title:            "Cloud Engineer",
		Description:      "Master cloud platforms and DevOps",
		Skills:           []string{"AWS/Azure", "Docker", "Kubernetes", "CI/CD", "Infrastructure as Code"},
		MentorTopics:     []string{"cloud architecture", "container orchestration", "devops practices", "security"},
		AssessmentTopics: []string{"cloud_platforms", "containers", "devops", "security", "infrastructure"},
	},
}

var skillPathByID = func() map[string]SkillPath {
	m := make(map[string]SkillPath, len(skillPaths))
	for _, p := range skillPaths {
		m[p.ID] = p
	}
	return m
}()

func clonePath(p SkillPath) SkillPath {
	p.Skills = append([]string(nil), p.Skills...)
	p.MentorTopics = append([]string(nil), p.MentorTopics...)
	p.AssessmentTopics = append([]string(nil), p.AssessmentTopics...)
	return p
}

// SkillPaths returns every path in catalog order.
func SkillPaths() []SkillPath {
	out := make([]SkillPath, 0, len(skillPaths))
	for _, p := range skillPaths {
		out = append(out, clonePath(p))
	}
	return out
}

func SkillPathByID(id string) (SkillPath, bool) {
	p, ok := skillPathByID[id]
	if !ok {
		return SkillPath{}, false
	}
	return clonePath(p), true
}

// ScoreFeedback picks the fixed feedback line for a topic score.
func ScoreFeedback(score float64) string {
	switch {
	case score >= 90:
		return "Excellent! You've mastered this topic! 🎉"
	case score >= 70:
		return "Good job! You're showing strong understanding! 👍"
	case score >= 50:
		return "You're making progress! Keep practicing! 💪"
	default:
		return "Keep learning! Review the material and try again! 📚"
	}
}
