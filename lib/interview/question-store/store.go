package questionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.InterviewQuestion) (id string, err error)
	ListByInterview(interviewID string) (list []dbmodels.InterviewQuestion, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.InterviewQuestion) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByInterview(interviewID string) (list []dbmodels.InterviewQuestion, err error) {
	err = i.db.
		Model(&dbmodels.InterviewQuestion{}).
		Where("interview_id = ?", interviewID).
		Order("number asc").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
