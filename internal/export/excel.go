// Package export renders interview results as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/hr-interviewer/internal/interview"
)

const (
	ResultsSheet     = "Results"
	TranscriptsSheet = "Transcripts"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	timeLayout = "2006-01-02 15:04"
)

var resultHeaders = []string{
	"Session", "Candidate ID", "Candidate", "Skills", "Status", "Overall Score",
	"Answered", "Total Questions", "Recommendation", "Strengths", "Weaknesses",
	"Started", "Completed", "Duration (min)",
}

var transcriptHeaders = []string{"Session", "Candidate", "#", "Skill", "Question", "Answer", "Score", "Feedback"}

// WriteResults writes a workbook with a summary row per result and a transcript sheet.
func WriteResults(w io.Writer, results []*interview.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("rename results sheet: %w", err)
	}
	if _, err := f.NewSheet(TranscriptsSheet); err != nil {
		return fmt.Errorf("create transcripts sheet: %w", err)
	}

	styles, err := newScoreStyles(f)
	if err != nil {
		return err
	}

	if err := writeResultsSheet(f, results, styles); err != nil {
		return fmt.Errorf("write results sheet: %w", err)
	}
	if err := writeTranscriptsSheet(f, results, styles.header); err != nil {
		return fmt.Errorf("write transcripts sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type scoreStyles struct {
	header, strong, good, moderate, weak int
}

func newScoreStyles(f *excelize.File) (scoreStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s scoreStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	fills := map[*int]string{&s.strong: "C6EFCE", &s.good: "FFEB9C", &s.moderate: "FFC7CE", &s.weak: "FF9999"}
	for target, color := range fills {
		*target, err = f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: border,
		})
		if err != nil {
			return s, fmt.Errorf("create score style: %w", err)
		}
	}
	return s, nil
}

func (s scoreStyles) forScore(score int) int {
	switch {
	case score >= 80:
		return s.strong
	case score >= 65:
		return s.good
	case score >= 50:
		return s.moderate
	default:
		return s.weak
	}
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeResultsSheet(f *excelize.File, results []*interview.Result, styles scoreStyles) error {
	if err := writeHeader(f, ResultsSheet, resultHeaders, styles.header); err != nil {
		return err
	}
	if err := f.SetColWidth(ResultsSheet, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(ResultsSheet, "B", "N", 18); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		completed := ""
		if r.CompletedAt != nil {
			completed = r.CompletedAt.UTC().Format(timeLayout)
		}

		values := []any{
			r.SessionID,
			r.CandidateID,
			r.CandidateName,
			strings.Join(r.Skills, ", "),
			string(r.Status),
			r.OverallScore,
			r.QuestionsAnswered,
			r.TotalQuestions,
			r.Recommendation,
			strings.Join(r.Strengths, "; "),
			strings.Join(r.Weaknesses, "; "),
			r.StartedAt.UTC().Format(timeLayout),
			completed,
			r.DurationMinutes,
		}
		if err := writeRow(f, ResultsSheet, row, values); err != nil {
			return err
		}

		scoreCell, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(ResultsSheet, scoreCell, scoreCell, styles.forScore(r.OverallScore)); err != nil {
			return err
		}
	}
	return nil
}

func writeTranscriptsSheet(f *excelize.File, results []*interview.Result, headerStyle int) error {
	if err := writeHeader(f, TranscriptsSheet, transcriptHeaders, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(TranscriptsSheet, "E", "F", 60); err != nil {
		return err
	}

	row := 2
	for _, r := range results {
		for i, entry := range r.Transcript {
			values := []any{r.SessionID, r.CandidateName, i + 1, entry.Skill, entry.Question, entry.Answer, entry.Score, entry.Feedback}
			if err := writeRow(f, TranscriptsSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
