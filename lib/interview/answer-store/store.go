package answerstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.InterviewAnswer) (id string, err error)
	GetByQuestion(interviewID string, questionNumber int) (rec *dbmodels.InterviewAnswer, err error)
	ListByInterview(interviewID string) (list []dbmodels.InterviewAnswer, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Save - повторная оценка того же вопроса перезаписывает предыдущую
func (i impl) Save(rec dbmodels.InterviewAnswer) (id string, err error) {
	existedRec, err := i.GetByQuestion(rec.InterviewID, rec.QuestionNumber)
	if err != nil {
		return "", err
	}
	if existedRec != nil {
		rec.ID = existedRec.ID
		rec.CreatedAt = existedRec.CreatedAt
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByQuestion(interviewID string, questionNumber int) (*dbmodels.InterviewAnswer, error) {
	rec := dbmodels.InterviewAnswer{}
	err := i.db.
		Where("interview_id = ?", interviewID).
		Where("question_number = ?", questionNumber).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByInterview(interviewID string) (list []dbmodels.InterviewAnswer, err error) {
	err = i.db.
		Model(&dbmodels.InterviewAnswer{}).
		Where("interview_id = ?", interviewID).
		Order("question_number asc").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
