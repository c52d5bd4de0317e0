package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"prepmaster_backend/internals/features/tutor_exams/model"
)

// FileResultRenderer is the default rendering collaborator. The master
// sheet is CSV, the individual slips a JSON document, both written under
// Dir; the returned ref is the file path.
type FileResultRenderer struct {
	Dir string
}

func NewFileResultRenderer(dir string) *FileResultRenderer {
	return &FileResultRenderer{Dir: dir}
}

func (r *FileResultRenderer) RenderMasterSheet(exam *model.TutorExamModel, rows []ResultRow) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("master_%s_%s.csv", exam.TutorExamID, uuid.NewString()[:8]))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "candidate_name", "candidate_class", "candidate_school", "score", "total_questions", "submitted_at"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.CandidateName,
			row.CandidateClass,
			row.CandidateSchool,
			strconv.Itoa(row.Score),
			strconv.Itoa(exam.TutorExamTotalQuestions),
			row.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}

type slipDocument struct {
	ExamID         uuid.UUID  `json:"exam_id"`
	ExamTitle      string     `json:"exam_title"`
	TotalQuestions int        `json:"total_questions"`
	Slips          []slipItem `json:"slips"`
}

type slipItem struct {
	Rank            int       `json:"rank"`
	SessionID       uuid.UUID `json:"session_id"`
	CandidateName   string    `json:"candidate_name"`
	CandidateClass  string    `json:"candidate_class"`
	CandidateSchool string    `json:"candidate_school"`
	Score           int       `json:"score"`
}

func (r *FileResultRenderer) RenderIndividualSlips(exam *model.TutorExamModel, rows []ResultRow) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	doc := slipDocument{
		ExamID:         exam.TutorExamID,
		ExamTitle:      exam.TutorExamTitle,
		TotalQuestions: exam.TutorExamTotalQuestions,
	}
	for _, row := range rows {
		doc.Slips = append(doc.Slips, slipItem{
			Rank:            row.Rank,
			SessionID:       row.SessionID,
			CandidateName:   row.CandidateName,
			CandidateClass:  row.CandidateClass,
			CandidateSchool: row.CandidateSchool,
			Score:           row.Score,
		})
	}

	path := filepath.Join(r.Dir, fmt.Sprintf("slips_%s_%s.json", exam.TutorExamID, uuid.NewString()[:8]))
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
