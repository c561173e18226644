package ranking

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	notSpecified     = "Not specified"
	maxMatchedSkills = 10
	maxMissingSkills = 5
)

var knownSkills = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node.js", "nodejs", "express", "django", "flask", "spring", "sql",
	"mongodb", "postgresql", "mysql", "redis", "docker", "kubernetes",
	"aws", "azure", "gcp", "git", "ci/cd", "jenkins", "terraform",
	"machine learning", "ml", "ai", "data science", "deep learning",
	"html", "css", "rest api", "graphql", "microservices", "agile",
	"scrum", "jira", "linux", "bash", "powershell", "c++", "c#",
	"go", "golang", "rust", "php", "ruby", "rails", "scala", "kotlin", "swift",
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)experience[:\s]+(\d+)\+?\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*yrs?\s+(?:of\s+)?experience`),
}

// education keywords in priority order.
var educationLevels = []struct {
	keyword string
	level   string
}{
	{"phd", "PhD"},
	{"master", "Master's Degree"},
	{"m.tech", "Master's Degree"},
	{"m.s", "Master's Degree"},
	{"mba", "MBA"},
	{"bachelor", "Bachelor's Degree"},
	{"b.tech", "Bachelor's Degree"},
	{"b.s", "Bachelor's Degree"},
}

// Analysis explains a resume score.
type Analysis struct {
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceYears string   `json:"experience_years"`
	Education       string   `json:"education"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendation  string   `json:"recommendation"`
}

// Analyze compares a resume against a job description.
func Analyze(resume, jd string, score float64) Analysis {
	resumeTerms := joinedTokens(resume)
	jdTerms := joinedTokens(jd)

	matched := []string{}
	missing := []string{}
	for _, skill := range knownSkills {
		if !containsTerm(jdTerms, skill) {
			continue
		}
		if containsTerm(resumeTerms, skill) {
			matched = append(matched, displaySkill(skill))
		} else {
			missing = append(missing, displaySkill(skill))
		}
	}
	if len(matched) > maxMatchedSkills {
		matched = matched[:maxMatchedSkills]
	}
	if len(missing) > maxMissingSkills {
		missing = missing[:maxMissingSkills]
	}

	years := experienceYears(resume)
	education := educationLevel(resume)

	var strengths []string
	if len(matched) > 5 {
		strengths = append(strengths, "Strong technical skill alignment")
	}
	if len(matched) > 0 {
		strengths = append(strengths, fmt.Sprintf("Proficient in %s", strings.Join(head(matched, 3), ", ")))
	}
	if score > 75 {
		strengths = append(strengths, "Excellent overall match with job requirements")
	}
	if education == "Bachelor's Degree" || education == "Master's Degree" {
		strengths = append(strengths, fmt.Sprintf("Relevant education: %s", education))
	}
	if len(strengths) == 0 {
		strengths = []string{"Resume submitted for review"}
	}

	var weaknesses []string
	if len(missing) > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Limited experience with %s", strings.Join(head(missing, 2), ", ")))
	}
	if score < 60 {
		weaknesses = append(weaknesses, "Overall skill match could be stronger")
	}
	if years == notSpecified {
		weaknesses = append(weaknesses, "Experience level not clearly stated")
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{"No significant gaps identified"}
	}

	return Analysis{
		MatchedSkills:   matched,
		MissingSkills:   missing,
		ExperienceYears: years,
		Education:       education,
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendation:  recommendation(score),
	}
}

func recommendation(score float64) string {
	switch {
	case score >= 80:
		return "Strong Match - Highly Recommended"
	case score >= 65:
		return "Good Fit - Recommended for Interview"
	case score >= 50:
		return "Moderate Match - Consider for Review"
	default:
		return "Weak Match - May Not Meet Requirements"
	}
}

func experienceYears(text string) string {
	for _, re := range experiencePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1] + "+ years"
		}
	}
	return notSpecified
}

func educationLevel(text string) string {
	terms := joinedTokens(text)
	for _, e := range educationLevels {
		if strings.Contains(terms, e.keyword) {
			return e.level
		}
	}
	return notSpecified
}

// joinedTokens renders text as space separated tokens with a leading and
// trailing space so that whole terms can be found with strings.Contains.
func joinedTokens(text string) string {
	return " " + strings.Join(tokenize(text), " ") + " "
}

func containsTerm(joined, term string) bool {
	return strings.Contains(joined, " "+term+" ")
}

func displaySkill(skill string) string {
	words := strings.Fields(skill)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
