package resultstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.InterviewResult) (id string, err error)
	GetByInterviewID(interviewID string) (rec *dbmodels.InterviewResult, err error)
	ListWithUnsentReport() (list []dbmodels.InterviewResult, err error)
	SetReportSent(id, reportFileName string, sentAt time.Time) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Save - пересчет результата перезаписывает существующую запись
func (i impl) Save(rec dbmodels.InterviewResult) (id string, err error) {
	existedRec, err := i.GetByInterviewID(rec.InterviewID)
	if err != nil {
		return "", err
	}
	if existedRec != nil {
		rec.ID = existedRec.ID
		rec.CreatedAt = existedRec.CreatedAt
		rec.ReportFileName = existedRec.ReportFileName
		rec.ReportSentAt = existedRec.ReportSentAt
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByInterviewID(interviewID string) (*dbmodels.InterviewResult, error) {
	rec := dbmodels.InterviewResult{}
	err := i.db.
		Where("interview_id = ?", interviewID).
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

func (i impl) ListWithUnsentReport() (list []dbmodels.InterviewResult, err error) {
	err = i.db.
		Model(&dbmodels.InterviewResult{}).
		Where("report_sent_at IS NULL").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) SetReportSent(id, reportFileName string, sentAt time.Time) error {
	return i.db.
		Model(&dbmodels.InterviewResult{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"report_file_name": reportFileName,
			"report_sent_at":   sentAt,
		}).
		Error
}
