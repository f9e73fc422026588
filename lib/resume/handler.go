package resume

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	pdfexport "mock-interview-backend/lib/export/pdf"
	resumestore "mock-interview-backend/lib/resume/store"
	resumeapimodels "mock-interview-backend/models/api/resume"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Save(userID string, data resumeapimodels.ResumeData) (id string, err error)
	Get(userID string) (view *resumeapimodels.ResumeView, err error)
	Delete(userID string) error
	ExportPDF(userID string) (fileName string, pdfFile []byte, err error)
}

var Instance Provider

func NewHandler(DB *gorm.DB) {
	Instance = &impl{
		store: resumestore.NewInstance(DB),
	}
}

type impl struct {
	store resumestore.Provider
}

func (i impl) Save(userID string, data resumeapimodels.ResumeData) (string, error) {
	rec := dbmodels.Resume{
		UserID:     userID,
		Title:      data.Title,
		Personal:   data.Personal,
		Experience: dbmodels.ResumeExperienceList(data.Experience),
		Education:  dbmodels.ResumeEducationList(data.Education),
		Skills:     pq.StringArray(data.Skills),
		Languages:  pq.StringArray(data.Languages),
	}
	id, err := i.store.Save(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения резюме")
	}
	return id, nil
}

func (i impl) Get(userID string) (*resumeapimodels.ResumeView, error) {
	rec, err := i.store.GetByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения резюме")
	}
	if rec == nil {
		return nil, nil
	}
	view := toView(*rec)
	return &view, nil
}

func (i impl) Delete(userID string) error {
	if err := i.store.DeleteByUser(userID); err != nil {
		return errors.Wrap(err, "ошибка удаления резюме")
	}
	return nil
}

func (i impl) ExportPDF(userID string) (string, []byte, error) {
	rec, err := i.store.GetByUser(userID)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения резюме")
	}
	if rec == nil {
		return "", nil, errors.New("резюме не найдено")
	}
	pdfFile, err := pdfexport.GenerateResume(*rec)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return "resume.pdf", pdfFile, nil
}

func toView(rec dbmodels.Resume) resumeapimodels.ResumeView {
	return resumeapimodels.ResumeView{
		ID: rec.ID,
		ResumeData: resumeapimodels.ResumeData{
			Title:      rec.Title,
			Personal:   rec.Personal,
			Experience: rec.Experience,
			Education:  rec.Education,
			Skills:     rec.Skills,
			Languages:  rec.Languages,
		},
	}
}
