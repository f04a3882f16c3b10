package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

type Exam struct {
	ID   int64     `json:"id" db:"id"`
	Name string    `json:"name" db:"name" validate:"required"`
	Date time.Time `json:"date" db:"date"`
}

type Mark struct {
	ID            int64   `json:"id" db:"id"`
	StudentID     int64   `json:"student_id" db:"student_id"`
	ExamID        int64   `json:"exam_id" db:"exam_id"`
	SubjectID     int64   `json:"subject_id" db:"subject_id"`
	ScoreObtained float64 `json:"score_obtained" db:"score_obtained"`
	MaxScore      float64 `json:"max_score" db:"max_score"`
	ExamName      string  `json:"exam_name,omitempty" db:"exam_name"`
	SubjectName   string  `json:"subject_name,omitempty" db:"subject_name"`
}

func (m Mark) Percentage() float64 {
	return Percentage(m.ScoreObtained, m.MaxScore)
}

func (m Mark) Grade() string {
	return GradeFor(m.Percentage())
}

// MarkEntry is one student's score in a marks batch.
type MarkEntry struct {
	StudentID     int64
	ScoreObtained float64
}

var (
	ErrInvalidMaxScore = errors.New("max score must be greater than zero")
	ErrScoreOutOfRange = errors.New("score must be between zero and the max score")
)

// ValidateScore enforces 0 <= score <= max and max > 0, both finite.
func ValidateScore(score, max float64) error {
	if !isFinite(max) || max <= 0 {
		return ErrInvalidMaxScore
	}
	if !isFinite(score) || score < 0 || score > max {
		return fmt.Errorf("%w: %.2f of %.2f", ErrScoreOutOfRange, score, max)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ExamResult groups one exam's marks for the student report views.
type ExamResult struct {
	Exam  Exam
	Marks []Mark
}

func (r ExamResult) Totals() (obtained, max float64) {
	for _, m := range r.Marks {
		obtained += m.ScoreObtained
		max += m.MaxScore
	}
	return obtained, max
}

func (r ExamResult) Percentage() float64 {
	return Percentage(r.Totals())
}

func (r ExamResult) Grade() string {
	return GradeFor(r.Percentage())
}

// GroupMarksByExam keeps the order in which exams first appear in marks.
func GroupMarksByExam(exams map[int64]Exam, marks []Mark) []ExamResult {
	index := make(map[int64]int)
	var out []ExamResult
	for _, m := range marks {
		i, ok := index[m.ExamID]
		if !ok {
			exam, found := exams[m.ExamID]
			if !found {
				exam = Exam{ID: m.ExamID, Name: m.ExamName}
			}
			out = append(out, ExamResult{Exam: exam})
			i = len(out) - 1
			index[m.ExamID] = i
		}
		out[i].Marks = append(out[i].Marks, m)
	}
	return out
}
