package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/lib/pq"
)

type Resume struct {
	BaseModel
	UserID     string               `gorm:"type:varchar(36);uniqueIndex"`
	Title      string               `gorm:"type:varchar(255)"`
	Personal   ResumePersonal       `gorm:"type:jsonb"`
	Experience ResumeExperienceList `gorm:"type:jsonb"`
	Education  ResumeEducationList  `gorm:"type:jsonb"`
	Skills     pq.StringArray       `gorm:"type:text[]"`
	Languages  pq.StringArray       `gorm:"type:text[]"`
}

type ResumePersonal struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Summary  string `json:"summary"`
}

func (j ResumePersonal) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ResumePersonal) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type ResumeExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"` // пусто = по настоящее время
	Description string `json:"description"`
}

type ResumeExperienceList []ResumeExperience

func (j ResumeExperienceList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ResumeExperienceList) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type ResumeEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	YearFrom    int    `json:"year_from"`
	YearTo      int    `json:"year_to"`
}

type ResumeEducationList []ResumeEducation

func (j ResumeEducationList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ResumeEducationList) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
