package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "mock-interview-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Interview{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Interview")
	}
	if err := DB.AutoMigrate(&dbmodels.InterviewQuestion{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры InterviewQuestion")
	}
	if err := DB.AutoMigrate(&dbmodels.InterviewAnswer{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры InterviewAnswer")
	}
	if err := DB.AutoMigrate(&dbmodels.InterviewResult{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры InterviewResult")
	}
	if err := DB.AutoMigrate(&dbmodels.Resume{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Resume")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
