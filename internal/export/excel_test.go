package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/hr-interviewer/internal/interview"
)

func TestWriteResults(t *testing.T) {
	t.Parallel()

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	completed := started.Add(15 * time.Minute)
	results := []*interview.Result{
		{
			SessionID:         "s1",
			CandidateID:       "c1",
			CandidateName:     "Ann",
			Skills:            []string{"React", "Go"},
			Status:            interview.StatusCompleted,
			OverallScore:      85,
			QuestionsAnswered: 2,
			TotalQuestions:    2,
			Recommendation:    interview.Recommendation(85),
			Strengths:         []string{"Excellent overall performance", "Strong technical knowledge"},
			Weaknesses:        []string{"No significant gaps identified"},
			StartedAt:         started,
			CompletedAt:       &completed,
			DurationMinutes:   15,
			Transcript: []interview.TranscriptEntry{
				{Question: "What is state?", Skill: "React", Answer: "Local data", Score: 8, Feedback: "Good."},
				{Question: "What is a goroutine?", Skill: "Go", Answer: "A green thread", Score: 9, Feedback: "Great."},
			},
		},
		{SessionID: "s2", CandidateID: "c2", CandidateName: "Bob", Status: interview.StatusActive, StartedAt: started},
	}

	var buf bytes.Buffer
	if err := WriteResults(&buf, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	if err != nil {
		t.Fatalf("read results sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Session" || rows[0][5] != "Overall Score" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "Ann" || rows[1][3] != "React, Go" || rows[1][5] != "85" || rows[1][12] != "2024-05-01 10:15" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][4] != "active" {
		t.Fatalf("unexpected status in second row: %v", rows[2])
	}

	transcripts, err := f.GetRows(TranscriptsSheet)
	if err != nil {
		t.Fatalf("read transcripts sheet: %v", err)
	}
	if len(transcripts) != 3 {
		t.Fatalf("expected header and 2 transcript rows, got %d", len(transcripts))
	}
	if transcripts[2][3] != "Go" || transcripts[2][4] != "What is a goroutine?" || transcripts[2][6] != "9" {
		t.Fatalf("unexpected transcript row: %v", transcripts[2])
	}
}

func TestWriteResultsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteResults(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != ResultsSheet || sheets[1] != TranscriptsSheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
}
