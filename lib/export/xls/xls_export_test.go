package xlsexport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	dbmodels "mock-interview-backend/models/db"
)

func TestExportInterviewReport(t *testing.T) {
	NewHandler()

	score := 80
	interview := dbmodels.Interview{
		JobRole:         "Backend разработчик",
		Domain:          "финтех",
		ExperienceLevel: "middle",
		QuestionCount:   2,
	}
	result := dbmodels.InterviewResult{
		InterviewID:      "interview-1",
		OverallScore:     80,
		GradedCount:      1,
		QuestionCount:    2,
		PerformanceLevel: "Strong",
		Recommendation:   "hire",
		DurationSeconds:  600,
	}
	questions := []dbmodels.InterviewQuestion{
		{InterviewID: "interview-1", Number: 1, Text: "Что такое goroutine?"},
		{InterviewID: "interview-1", Number: 2, Text: "Чем slice отличается от массива?"},
	}
	answers := []dbmodels.InterviewAnswer{
		{
			InterviewID:      "interview-1",
			QuestionNumber:   1,
			CombinedResponse: "Speech: легковесный поток",
			Score:            &score,
			Feedback:         "хороший ответ",
			Strengths:        []string{"точность"},
		},
		{
			InterviewID:      "interview-1",
			QuestionNumber:   2,
			CombinedResponse: "Text: slice это заголовок",
		},
	}

	buf, err := Instance.ExportInterviewReport(interview, result, questions, answers)
	require.Nil(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.Nil(t, err)
	defer f.Close()

	sheet := "Итоги интервью"

	t.Run(`сводка в шапке`, func(t *testing.T) {
		value, err := f.GetCellValue(sheet, "B1")
		require.Nil(t, err)
		require.Equal(t, "Backend разработчик", value)

		value, err = f.GetCellValue(sheet, "B4")
		require.Nil(t, err)
		require.Equal(t, "80 из 100", value)
	})

	t.Run(`таблица ответов`, func(t *testing.T) {
		value, err := f.GetCellValue(sheet, "A10")
		require.Nil(t, err)
		require.Equal(t, "№", value)

		value, err = f.GetCellValue(sheet, "B11")
		require.Nil(t, err)
		require.Equal(t, "Что такое goroutine?", value)

		value, err = f.GetCellValue(sheet, "D11")
		require.Nil(t, err)
		require.Equal(t, "80", value)

		// ответ без оценки помечается явно
		value, err = f.GetCellValue(sheet, "D12")
		require.Nil(t, err)
		require.Equal(t, "без оценки", value)
	})
}
