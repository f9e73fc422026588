package resumeapimodels

import (
	"strings"

	"github.com/pkg/errors"
	dbmodels "mock-interview-backend/models/db"
)

type ResumeData struct {
	Title      string                      `json:"title"`
	Personal   dbmodels.ResumePersonal     `json:"personal"`
	Experience []dbmodels.ResumeExperience `json:"experience"`
	Education  []dbmodels.ResumeEducation  `json:"education"`
	Skills     []string                    `json:"skills"`
	Languages  []string                    `json:"languages"`
}

func (r ResumeData) Validate() error {
	if strings.TrimSpace(r.Personal.FullName) == "" {
		return errors.New("не указано имя (personal.full_name)")
	}
	return nil
}

type ResumeView struct {
	ID string `json:"id"`
	ResumeData
}
