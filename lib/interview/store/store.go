package interviewstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.Interview) (id string, err error)
	GetByID(id string) (rec *dbmodels.Interview, err error)
	GetByUser(userID, id string) (rec *dbmodels.Interview, err error)
	SetInProgress(id string, startedAt time.Time) error
	SetCompleted(id string, completedAt time.Time) error
	ListCompletedWithoutResult() (list []dbmodels.Interview, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.Interview) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetByUser(userID, id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("id = ?", id).
		Where("user_id = ?", userID).
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

func (i impl) SetInProgress(id string, startedAt time.Time) error {
	return i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     dbmodels.InterviewInProgress,
			"started_at": startedAt,
		}).
		Error
}

func (i impl) SetCompleted(id string, completedAt time.Time) error {
	return i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       dbmodels.InterviewCompleted,
			"completed_at": completedAt,
		}).
		Error
}

func (i impl) ListCompletedWithoutResult() (list []dbmodels.Interview, err error) {
	err = i.db.
		Model(&dbmodels.Interview{}).
		Where("status = ?", dbmodels.InterviewCompleted).
		Where("id NOT IN (?)", i.db.Model(&dbmodels.InterviewResult{}).Select("interview_id")).
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}
