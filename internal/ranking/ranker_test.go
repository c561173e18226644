package ranking

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

const testJD = "We are hiring a backend engineer with Go, Docker and Kubernetes experience. PostgreSQL is a plus."

func TestSimilarity(t *testing.T) {
	t.Parallel()

	if got := Similarity("go docker kubernetes", "go docker kubernetes"); got != 100 {
		t.Fatalf("expected identical texts to score 100, got %v", got)
	}
	if got := Similarity("python flask", "rust tokio"); got != 0 {
		t.Fatalf("expected disjoint texts to score 0, got %v", got)
	}
	if got := Similarity("", "go"); got != 0 {
		t.Fatalf("expected empty text to score 0, got %v", got)
	}
	if got := Similarity("the and of", "the and of"); got != 0 {
		t.Fatalf("expected stop words to be ignored, got %v", got)
	}

	// (1*1) / (sqrt(2) * sqrt(1)) = 0.7071
	if got := Similarity("go rust", "go"); got != 70.71 {
		t.Fatalf("expected 70.71, got %v", got)
	}
}

func TestAnalyzeSkillsAndExperience(t *testing.T) {
	t.Parallel()

	resume := "Senior engineer. 7+ years of experience with Go and Docker. Master of Science in CS."
	got := Analyze(resume, testJD, 55)

	if !reflect.DeepEqual(got.MatchedSkills, []string{"Docker", "Go"}) {
		t.Fatalf("unexpected matched skills: %v", got.MatchedSkills)
	}
	if !reflect.DeepEqual(got.MissingSkills, []string{"Postgresql", "Kubernetes"}) {
		t.Fatalf("unexpected missing skills: %v", got.MissingSkills)
	}
	if got.ExperienceYears != "7+ years" {
		t.Fatalf("unexpected experience: %q", got.ExperienceYears)
	}
	if got.Education != "Master's Degree" {
		t.Fatalf("unexpected education: %q", got.Education)
	}

	wantStrengths := []string{"Proficient in Docker, Go", "Relevant education: Master's Degree"}
	if !reflect.DeepEqual(got.Strengths, wantStrengths) {
		t.Fatalf("unexpected strengths: %v", got.Strengths)
	}
	wantWeaknesses := []string{"Limited experience with Postgresql, Kubernetes", "Overall skill match could be stronger"}
	if !reflect.DeepEqual(got.Weaknesses, wantWeaknesses) {
		t.Fatalf("unexpected weaknesses: %v", got.Weaknesses)
	}
	if got.Recommendation != "Moderate Match - Consider for Review" {
		t.Fatalf("unexpected recommendation: %q", got.Recommendation)
	}
}

func TestAnalyzeShortSkillsNeedWholeWords(t *testing.T) {
	t.Parallel()

	got := Analyze("Built Django services on MongoDB", "Go developer", 10)
	if len(got.MatchedSkills) != 0 {
		t.Fatalf("expected no matched skills, got %v", got.MatchedSkills)
	}
	if !reflect.DeepEqual(got.MissingSkills, []string{"Go"}) {
		t.Fatalf("unexpected missing skills: %v", got.MissingSkills)
	}
	if got.ExperienceYears != notSpecified || got.Education != notSpecified {
		t.Fatalf("expected unspecified experience and education, got %+v", got)
	}
}

func TestRankSortsDescending(t *testing.T) {
	t.Parallel()

	docs := []Document{
		{Name: "weak.txt", Text: "Pastry chef with a love of bread."},
		{Name: "strong.md", Text: "Backend engineer: Go, Docker, Kubernetes, PostgreSQL. 5 years experience."},
		{Name: "medium.txt", Text: "Frontend developer who has used Docker."},
	}

	rankings, err := New(zap.NewNop()).Rank(testJD, docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := make([]string, 0, len(rankings))
	for _, r := range rankings {
		order = append(order, r.Resume)
	}
	if !reflect.DeepEqual(order, []string{"strong.md", "medium.txt", "weak.txt"}) {
		t.Fatalf("unexpected order: %v", order)
	}
	for i := 1; i < len(rankings); i++ {
		if rankings[i-1].Score < rankings[i].Score {
			t.Fatalf("rankings not sorted: %+v", rankings)
		}
	}

	if _, err := New(nil).Rank("  ", docs); !errors.Is(err, ErrEmptyJobDescription) {
		t.Fatalf("expected ErrEmptyJobDescription, got %v", err)
	}
}

func TestFailedRanking(t *testing.T) {
	t.Parallel()

	got := Failed("broken.txt", errors.New("boom"))
	if got.Score != 0 || got.Error != "boom" || got.Analysis.Recommendation != "Error - Review Manually" {
		t.Fatalf("unexpected failed ranking: %+v", got)
	}
}
