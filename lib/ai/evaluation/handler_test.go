package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	aiapimodels "mock-interview-backend/models/api/ai"
)

type fakeGptClient struct {
	response string
	err      error
}

func (f fakeGptClient) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	return f.response, f.err
}

func TestEvaluate(t *testing.T) {
	request := aiapimodels.EvaluationRequest{
		Question: "Что такое контекст в Go?",
		Answer:   "Speech: механизм отмены и дедлайнов",
		JobRole:  "Backend разработчик",
	}

	t.Run(`штатный ответ`, func(t *testing.T) {
		handler := impl{gptClient: fakeGptClient{
			response: `{"score":82,"feedback":"хороший ответ","strengths":["точность"],"improvements":["примеры"],"recommendation":"hire","performance_level":"Strong"}`,
		}}
		result, err := handler.Evaluate(context.Background(), request)
		require.Nil(t, err)
		require.Equal(t, 82, result.Score)
		require.Equal(t, "хороший ответ", result.Feedback)
		require.Equal(t, []string{"точность"}, result.Strengths)
		require.Equal(t, "hire", result.Recommendation)
	})

	t.Run(`оценка за пределами шкалы обрезается`, func(t *testing.T) {
		handler := impl{gptClient: fakeGptClient{response: `{"score":150}`}}
		result, err := handler.Evaluate(context.Background(), request)
		require.Nil(t, err)
		require.Equal(t, 100, result.Score)

		handler = impl{gptClient: fakeGptClient{response: `{"score":-5}`}}
		result, err = handler.Evaluate(context.Background(), request)
		require.Nil(t, err)
		require.Equal(t, 0, result.Score)
	})

	t.Run(`ответ в markdown-блоке`, func(t *testing.T) {
		handler := impl{gptClient: fakeGptClient{
			response: "```json\n{\"score\":60,\"feedback\":\"ок\"}\n```",
		}}
		result, err := handler.Evaluate(context.Background(), request)
		require.Nil(t, err)
		require.Equal(t, 60, result.Score)
	})

	t.Run(`не json - ошибка`, func(t *testing.T) {
		handler := impl{gptClient: fakeGptClient{response: "Оценка: отлично!"}}
		_, err := handler.Evaluate(context.Background(), request)
		require.NotNil(t, err)
	})
}
