package interviewapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

// InterviewConfig - профиль интервью, задается при старте и не меняется до конца сессии
type InterviewConfig struct {
	JobRole         string `json:"job_role"`         // Позиция
	Domain          string `json:"domain"`           // Область
	ExperienceLevel string `json:"experience_level"` // junior/mid/senior
	QuestionType    string `json:"question_type"`    // technical/behavioral/mixed
	Constraints     string `json:"constraints"`      // Дополнительные пожелания
	Email           string `json:"email"`            // Почта для отправки отчета, опционально
}

func (r InterviewConfig) Validate() error {
	if strings.TrimSpace(r.JobRole) == "" {
		return errors.New("не указана позиция (job_role)")
	}
	if strings.TrimSpace(r.ExperienceLevel) == "" {
		return errors.New("не указан уровень (experience_level)")
	}
	if strings.TrimSpace(r.QuestionType) == "" {
		return errors.New("не указан тип вопросов (question_type)")
	}
	return nil
}

type SetTextRequest struct {
	Text string `json:"text"`
}

type SetCodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// SessionView - снимок состояния сессии для фронта
type SessionView struct {
	SessionID      string `json:"session_id"`
	InterviewID    string `json:"interview_id"`
	State          string `json:"state"`
	QuestionNumber int    `json:"question_number"` // с 1
	QuestionCount  int    `json:"question_count"`
	QuestionText   string `json:"question_text"`
	Speaking       bool   `json:"speaking"`
	Recording      bool   `json:"recording"`
	HasContent     bool   `json:"has_content"`
	Audio          []byte `json:"audio,omitempty"` // озвучка текущего вопроса, может отсутствовать
}

type QuestionView struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type AnswerView struct {
	QuestionNumber   int      `json:"question_number"`
	QuestionText     string   `json:"question_text"`
	TranscribedText  string   `json:"transcribed_text,omitempty"`
	TextContent      string   `json:"text_content,omitempty"`
	CodeContent      string   `json:"code_content,omitempty"`
	CodeLanguage     string   `json:"code_language,omitempty"`
	Score            *int     `json:"score"` // null = оценка не получена
	Feedback         string   `json:"feedback,omitempty"`
	Strengths        []string `json:"strengths,omitempty"`
	Improvements     []string `json:"improvements,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
	PerformanceLevel string   `json:"performance_level,omitempty"`
}

type ResultView struct {
	InterviewID      string       `json:"interview_id"`
	OverallScore     int          `json:"overall_score"`
	GradedCount      int          `json:"graded_count"`
	QuestionCount    int          `json:"question_count"`
	PerformanceLevel string       `json:"performance_level"`
	Recommendation   string       `json:"recommendation"`
	DurationSeconds  int          `json:"duration_seconds"`
	Answers          []AnswerView `json:"answers"`
}
