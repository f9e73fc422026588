package dbmodels

import (
	"time"

	"github.com/lib/pq"
)

type InterviewStatus int

const (
	InterviewCreated    InterviewStatus = 0  //"Интервью создано, вопросы не сгенерированы"
	InterviewInProgress InterviewStatus = 10 //"Вопросы сгенерированы, сессия идет"
	InterviewCompleted  InterviewStatus = 20 //"Интервью завершено"
)

type Interview struct {
	BaseModel
	UserID          string `gorm:"type:varchar(36);index"`
	UserEmail       string `gorm:"type:varchar(255)"`
	JobRole         string `gorm:"type:varchar(255)"` // Позиция (например Software Engineer)
	Domain          string `gorm:"type:varchar(255)"` // Область (например Fintech)
	ExperienceLevel string `gorm:"type:varchar(50)"`  // junior/mid/senior
	QuestionType    string `gorm:"type:varchar(50)"`  // technical/behavioral/mixed
	Constraints     string // Дополнительные пожелания к вопросам
	QuestionCount   int
	Status          InterviewStatus `gorm:"index"`
	StartedAt       *time.Time
	CompletedAt     *time.Time
}

type InterviewQuestion struct {
	BaseModel
	InterviewID string `gorm:"type:varchar(36);index;uniqueIndex:idx_interview_question_num"`
	Number      int    `gorm:"uniqueIndex:idx_interview_question_num"` // Порядковый номер вопроса, с 1
	Text        string
}

// InterviewAnswer - ответ кандидата на вопрос с результатом оценки.
// Score == nil означает что оценка не получена (не путать с нулевым баллом).
type InterviewAnswer struct {
	BaseModel
	InterviewID      string `gorm:"type:varchar(36);index;uniqueIndex:idx_interview_answer_num"`
	QuestionNumber   int    `gorm:"uniqueIndex:idx_interview_answer_num"`
	TranscribedText  string
	TextContent      string
	CodeContent      string
	CodeLanguage     string `gorm:"type:varchar(50)"`
	CombinedResponse string // Итоговый текст, отправленный на оценку
	Score            *int
	Feedback         string
	Strengths        pq.StringArray `gorm:"type:text[]"`
	Improvements     pq.StringArray `gorm:"type:text[]"`
	Recommendation   string         `gorm:"type:varchar(50)"`
	PerformanceLevel string         `gorm:"type:varchar(50)"`
}

type InterviewResult struct {
	BaseModel
	InterviewID      string `gorm:"type:varchar(36);uniqueIndex"`
	OverallScore     int
	GradedCount      int // Кол-во вопросов с полученной оценкой
	QuestionCount    int
	PerformanceLevel string `gorm:"type:varchar(50)"`
	Recommendation   string `gorm:"type:varchar(50)"`
	DurationSeconds  int
	ReportFileName   string `gorm:"type:varchar(255)"` // Имя xlsx отчета в S3
	ReportSentAt     *time.Time
}
