package results

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	audiostorage "mock-interview-backend/lib/audio-storage"
	answerstore "mock-interview-backend/lib/interview/answer-store"
	questionstore "mock-interview-backend/lib/interview/question-store"
	resultstore "mock-interview-backend/lib/interview/result-store"
	interviewstore "mock-interview-backend/lib/interview/store"
	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"
)

type Provider interface {
	Compute(interviewID string) (rec dbmodels.InterviewResult, err error)
	GetView(userID, interviewID string) (view *interviewapimodels.ResultView, err error)
	GetReportURL(ctx context.Context, userID, interviewID string) (reportURL string, err error)
}

var Instance Provider

func NewHandler(DB *gorm.DB) {
	Instance = impl{
		interviewStore: interviewstore.NewInstance(DB),
		questionStore:  questionstore.NewInstance(DB),
		answerStore:    answerstore.NewInstance(DB),
		resultStore:    resultstore.NewInstance(DB),
	}
}

type impl struct {
	interviewStore interviewstore.Provider
	questionStore  questionstore.Provider
	answerStore    answerstore.Provider
	resultStore    resultstore.Provider
}

// Compute пересчитывает итог по сохраненным оценкам.
// Вопросы без оценки в среднее не входят, нулем не считаются.
// Повторный вызов с теми же данными дает тот же результат.
func (i impl) Compute(interviewID string) (rec dbmodels.InterviewResult, err error) {
	interviewRec, err := i.interviewStore.GetByID(interviewID)
	if err != nil {
		return rec, errors.Wrap(err, "ошибка получения интервью")
	}
	if interviewRec == nil {
		return rec, errors.New("интервью не найдено")
	}
	answers, err := i.answerStore.ListByInterview(interviewID)
	if err != nil {
		return rec, errors.Wrap(err, "ошибка получения ответов")
	}

	overall, gradedCount := averageScore(answers)
	rec = dbmodels.InterviewResult{
		InterviewID:      interviewID,
		OverallScore:     overall,
		GradedCount:      gradedCount,
		QuestionCount:    interviewRec.QuestionCount,
		PerformanceLevel: PerformanceLevel(overall),
		Recommendation:   selectRecommendation(answers, overall),
		DurationSeconds:  durationSeconds(*interviewRec),
	}
	id, err := i.resultStore.Save(rec)
	if err != nil {
		return rec, errors.Wrap(err, "ошибка сохранения результата")
	}
	rec.ID = id
	return rec, nil
}

func (i impl) GetView(userID, interviewID string) (*interviewapimodels.ResultView, error) {
	interviewRec, err := i.interviewStore.GetByUser(userID, interviewID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения интервью")
	}
	if interviewRec == nil {
		return nil, errors.New("интервью не найдено")
	}
	resultRec, err := i.resultStore.GetByInterviewID(interviewID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения результата")
	}
	if resultRec == nil {
		return nil, errors.New("результат еще не рассчитан")
	}
	questions, err := i.questionStore.ListByInterview(interviewID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения вопросов")
	}
	answers, err := i.answerStore.ListByInterview(interviewID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения ответов")
	}

	questionTexts := map[int]string{}
	for _, q := range questions {
		questionTexts[q.Number] = q.Text
	}
	view := interviewapimodels.ResultView{
		InterviewID:      interviewID,
		OverallScore:     resultRec.OverallScore,
		GradedCount:      resultRec.GradedCount,
		QuestionCount:    resultRec.QuestionCount,
		PerformanceLevel: resultRec.PerformanceLevel,
		Recommendation:   resultRec.Recommendation,
		DurationSeconds:  resultRec.DurationSeconds,
		Answers:          []interviewapimodels.AnswerView{},
	}
	for _, answer := range answers {
		view.Answers = append(view.Answers, interviewapimodels.AnswerView{
			QuestionNumber:   answer.QuestionNumber,
			QuestionText:     questionTexts[answer.QuestionNumber],
			TranscribedText:  answer.TranscribedText,
			TextContent:      answer.TextContent,
			CodeContent:      answer.CodeContent,
			CodeLanguage:     answer.CodeLanguage,
			Score:            answer.Score,
			Feedback:         answer.Feedback,
			Strengths:        answer.Strengths,
			Improvements:     answer.Improvements,
			Recommendation:   answer.Recommendation,
			PerformanceLevel: answer.PerformanceLevel,
		})
	}
	return &view, nil
}

// GetReportURL выдает временную ссылку на xlsx-отчет, если он уже сформирован
func (i impl) GetReportURL(ctx context.Context, userID, interviewID string) (string, error) {
	interviewRec, err := i.interviewStore.GetByUser(userID, interviewID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения интервью")
	}
	if interviewRec == nil {
		return "", errors.New("интервью не найдено")
	}
	resultRec, err := i.resultStore.GetByInterviewID(interviewID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения результата")
	}
	if resultRec == nil || resultRec.ReportFileName == "" {
		return "", errors.New("отчет еще не сформирован")
	}
	reportURL, err := audiostorage.Instance.GetReportURL(ctx, resultRec.ReportFileName)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения ссылки на отчет")
	}
	return reportURL, nil
}

// averageScore - среднее арифметическое только по оцененным ответам
func averageScore(answers []dbmodels.InterviewAnswer) (overall, gradedCount int) {
	sum := 0
	for _, answer := range answers {
		if answer.Score == nil {
			continue
		}
		sum += *answer.Score
		gradedCount++
	}
	if gradedCount == 0 {
		return 0, 0
	}
	return int(math.Round(float64(sum) / float64(gradedCount))), gradedCount
}

func PerformanceLevel(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Strong"
	case score >= 60:
		return "Good"
	case score >= 50:
		return "Average"
	default:
		return "Weak"
	}
}

// selectRecommendation - берем рекомендацию последнего оцененного вопроса,
// если ее нет - выводим из порогов по итоговому баллу
func selectRecommendation(answers []dbmodels.InterviewAnswer, overall int) string {
	for idx := len(answers) - 1; idx >= 0; idx-- {
		if answers[idx].Score != nil && answers[idx].Recommendation != "" {
			return answers[idx].Recommendation
		}
	}
	switch {
	case overall >= 85:
		return "strong_hire"
	case overall >= 70:
		return "hire"
	case overall >= 50:
		return "maybe"
	default:
		return "no_hire"
	}
}

func durationSeconds(rec dbmodels.Interview) int {
	if rec.StartedAt == nil || rec.CompletedAt == nil {
		return 0
	}
	return int(rec.CompletedAt.Sub(*rec.StartedAt).Seconds())
}
