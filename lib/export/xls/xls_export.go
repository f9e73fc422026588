package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	ExportInterviewReport(interview dbmodels.Interview, result dbmodels.InterviewResult, questions []dbmodels.InterviewQuestion, answers []dbmodels.InterviewAnswer) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var answerHeaders = []string{"№", "Вопрос", "Ответ", "Оценка", "Уровень", "Комментарий", "Сильные стороны", "Зоны роста"}

func (i impl) ExportInterviewReport(interview dbmodels.Interview, result dbmodels.InterviewResult, questions []dbmodels.InterviewQuestion, answers []dbmodels.InterviewAnswer) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeSummary(f, sheet, interview, result)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования сводки в xlsx")
	}
	row++
	row, err = writeHeader(f, sheet, row, answerHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(questions) != 0 {
		if _, err = writeAnswerData(f, sheet, questions, answers, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Итоги интервью")
	return f.WriteToBuffer()
}

func writeSummary(f *excelize.File, sheet string, interview dbmodels.Interview, result dbmodels.InterviewResult) (int, error) {
	summary := [][2]interface{}{
		{"Позиция", interview.JobRole},
		{"Направление", interview.Domain},
		{"Уровень кандидата", interview.ExperienceLevel},
		{"Итоговый балл", fmt.Sprintf("%d из 100", result.OverallScore)},
		{"Оценено ответов", fmt.Sprintf("%d из %d", result.GradedCount, result.QuestionCount)},
		{"Уровень", result.PerformanceLevel},
		{"Рекомендация", result.Recommendation},
		{"Длительность, сек", result.DurationSeconds},
	}
	row := 0
	for _, pair := range summary {
		row++
		if err := writeColumn(f, sheet, 1, row, pair[0]); err != nil {
			return row, err
		}
		if err := writeColumn(f, sheet, 2, row, pair[1]); err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeAnswerData(f *excelize.File, sheet string, questions []dbmodels.InterviewQuestion, answers []dbmodels.InterviewAnswer, row int) (int, error) {
	byNumber := make(map[int]dbmodels.InterviewAnswer, len(answers))
	for _, answer := range answers {
		byNumber[answer.QuestionNumber] = answer
	}

	if err := applyDataCellStyle(f, sheet, 1, row+1, len(answerHeaders), row+len(questions)); err != nil {
		return row, err
	}
	for _, question := range questions {
		row++
		answer, hasAnswer := byNumber[question.Number]

		// "№"
		col := 1
		if err := writeColumn(f, sheet, col, row, question.Number); err != nil {
			return row, err
		}

		// "Вопрос"
		col++
		if err := writeColumn(f, sheet, col, row, question.Text); err != nil {
			return row, err
		}
		if !hasAnswer {
			continue
		}

		// "Ответ"
		col++
		if err := writeColumn(f, sheet, col, row, answer.CombinedResponse); err != nil {
			return row, err
		}

		// "Оценка"
		col++
		if answer.Score != nil {
			if err := writeColumn(f, sheet, col, row, *answer.Score); err != nil {
				return row, err
			}
		} else {
			if err := writeColumn(f, sheet, col, row, "без оценки"); err != nil {
				return row, err
			}
		}

		// "Уровень"
		col++
		if err := writeColumn(f, sheet, col, row, answer.PerformanceLevel); err != nil {
			return row, err
		}

		// "Комментарий"
		col++
		if err := writeColumn(f, sheet, col, row, answer.Feedback); err != nil {
			return row, err
		}

		// "Сильные стороны"
		col++
		if err := writeColumn(f, sheet, col, row, joinLines(answer.Strengths)); err != nil {
			return row, err
		}

		// "Зоны роста"
		col++
		if err := writeColumn(f, sheet, col, row, joinLines(answer.Improvements)); err != nil {
			return row, err
		}
	}
	return row, nil
}

func joinLines(values []string) string {
	result := ""
	for idx, value := range values {
		if idx > 0 {
			result += "\r"
		}
		result += value
	}
	return result
}
