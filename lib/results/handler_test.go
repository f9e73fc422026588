package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	dbmodels "mock-interview-backend/models/db"
)

func scorePtr(v int) *int {
	return &v
}

func TestAverageScore(t *testing.T) {
	t.Run(`без оценок - ноль`, func(t *testing.T) {
		overall, graded := averageScore([]dbmodels.InterviewAnswer{
			{QuestionNumber: 1},
			{QuestionNumber: 2},
		})
		require.Equal(t, 0, overall)
		require.Equal(t, 0, graded)
	})

	t.Run(`неоцененные ответы не тянут среднее вниз`, func(t *testing.T) {
		overall, graded := averageScore([]dbmodels.InterviewAnswer{
			{QuestionNumber: 1, Score: scorePtr(80)},
			{QuestionNumber: 2},
			{QuestionNumber: 3, Score: scorePtr(90)},
		})
		require.Equal(t, 85, overall)
		require.Equal(t, 2, graded)
	})

	t.Run(`среднее округляется до целого`, func(t *testing.T) {
		overall, graded := averageScore([]dbmodels.InterviewAnswer{
			{QuestionNumber: 1, Score: scorePtr(70)},
			{QuestionNumber: 2, Score: scorePtr(71)},
		})
		require.Equal(t, 71, overall) // 70.5 -> 71
		require.Equal(t, 2, graded)
	})

	t.Run(`ноль - валидная оценка, в отличие от ее отсутствия`, func(t *testing.T) {
		overall, graded := averageScore([]dbmodels.InterviewAnswer{
			{QuestionNumber: 1, Score: scorePtr(0)},
			{QuestionNumber: 2, Score: scorePtr(100)},
		})
		require.Equal(t, 50, overall)
		require.Equal(t, 2, graded)
	})
}

func TestPerformanceLevel(t *testing.T) {
	cases := []struct {
		score    int
		expected string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{89, "Strong"},
		{75, "Strong"},
		{74, "Good"},
		{60, "Good"},
		{59, "Average"},
		{50, "Average"},
		{49, "Weak"},
		{0, "Weak"},
	}
	for _, c := range cases {
		require.Equal(t, c.expected, PerformanceLevel(c.score), "score %v", c.score)
	}
}

func TestSelectRecommendation(t *testing.T) {
	t.Run(`берем рекомендацию последнего оцененного ответа`, func(t *testing.T) {
		answers := []dbmodels.InterviewAnswer{
			{QuestionNumber: 1, Score: scorePtr(90), Recommendation: "strong_hire"},
			{QuestionNumber: 2, Score: scorePtr(60), Recommendation: "maybe"},
			{QuestionNumber: 3},
		}
		require.Equal(t, "maybe", selectRecommendation(answers, 75))
	})

	t.Run(`без рекомендаций - по порогам итогового балла`, func(t *testing.T) {
		require.Equal(t, "strong_hire", selectRecommendation(nil, 85))
		require.Equal(t, "hire", selectRecommendation(nil, 70))
		require.Equal(t, "maybe", selectRecommendation(nil, 50))
		require.Equal(t, "no_hire", selectRecommendation(nil, 49))
	})
}

func TestDurationSeconds(t *testing.T) {
	t.Run(`без отметок времени - ноль`, func(t *testing.T) {
		require.Equal(t, 0, durationSeconds(dbmodels.Interview{}))
	})

	t.Run(`полный интервал`, func(t *testing.T) {
		start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		end := start.Add(42 * time.Minute)
		rec := dbmodels.Interview{StartedAt: &start, CompletedAt: &end}
		require.Equal(t, 2520, durationSeconds(rec))
	})
}
