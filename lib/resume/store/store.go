package resumestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.Resume) (id string, err error)
	GetByUser(userID string) (rec *dbmodels.Resume, err error)
	DeleteByUser(userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Save сохраняет резюме, у пользователя оно одно - повторное сохранение перезаписывает
func (i impl) Save(rec dbmodels.Resume) (id string, err error) {
	existing, err := i.GetByUser(rec.UserID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByUser(userID string) (*dbmodels.Resume, error) {
	rec := dbmodels.Resume{}
	err := i.db.
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

func (i impl) DeleteByUser(userID string) error {
	return i.db.
		Where("user_id = ?", userID).
		Delete(&dbmodels.Resume{}).
		Error
}
