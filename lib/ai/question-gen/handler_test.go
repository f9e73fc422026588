package questiongen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	interviewapimodels "mock-interview-backend/models/api/interview"
)

type fakeGptClient struct {
	response string
	err      error
	gotText  string
}

func (f *fakeGptClient) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	f.gotText = text
	return f.response, f.err
}

func TestParseQuestions(t *testing.T) {
	t.Run(`штатный формат - объект с массивом`, func(t *testing.T) {
		raw := `{"questions":[{"question":"Что такое goroutine?"},{"question":"Чем slice отличается от массива?"}]}`
		questions, err := parseQuestions(raw)
		require.Nil(t, err)
		require.Equal(t, []string{"Что такое goroutine?", "Чем slice отличается от массива?"}, questions)
	})

	t.Run(`ответ обернут в markdown-блок`, func(t *testing.T) {
		raw := "```json\n{\"questions\":[{\"question\":\"Вопрос один\"}]}\n```"
		questions, err := parseQuestions(raw)
		require.Nil(t, err)
		require.Equal(t, []string{"Вопрос один"}, questions)
	})

	t.Run(`голый массив объектов`, func(t *testing.T) {
		raw := `[{"question":"Первый"},{"question":"Второй"}]`
		questions, err := parseQuestions(raw)
		require.Nil(t, err)
		require.Equal(t, []string{"Первый", "Второй"}, questions)
	})

	t.Run(`массив строк`, func(t *testing.T) {
		raw := `["Первый","Второй"]`
		questions, err := parseQuestions(raw)
		require.Nil(t, err)
		require.Equal(t, []string{"Первый", "Второй"}, questions)
	})

	t.Run(`пустые вопросы отбрасываются`, func(t *testing.T) {
		raw := `{"questions":[{"question":"  "},{"question":"Нормальный вопрос"}]}`
		questions, err := parseQuestions(raw)
		require.Nil(t, err)
		require.Equal(t, []string{"Нормальный вопрос"}, questions)
	})

	t.Run(`не json - ошибка`, func(t *testing.T) {
		_, err := parseQuestions("Вот вам вопросы: 1) ...")
		require.NotNil(t, err)
	})
}

func TestGenerateQuestions(t *testing.T) {
	cfg := interviewapimodels.InterviewConfig{
		JobRole:         "Backend разработчик",
		Domain:          "финтех",
		ExperienceLevel: "senior",
		QuestionType:    "technical",
	}

	t.Run(`лишние вопросы обрезаются до запрошенного количества`, func(t *testing.T) {
		client := &fakeGptClient{
			response: `{"questions":[{"question":"q1"},{"question":"q2"},{"question":"q3"}]}`,
		}
		handler := impl{gptClient: client}
		questions, err := handler.GenerateQuestions(context.Background(), cfg, 2)
		require.Nil(t, err)
		require.Equal(t, []string{"q1", "q2"}, questions)
	})

	t.Run(`вопросов меньше запрошенного - ошибка`, func(t *testing.T) {
		client := &fakeGptClient{
			response: `{"questions":[{"question":"q1"}]}`,
		}
		handler := impl{gptClient: client}
		_, err := handler.GenerateQuestions(context.Background(), cfg, 5)
		require.NotNil(t, err)
	})

	t.Run(`профиль кандидата попадает в запрос`, func(t *testing.T) {
		client := &fakeGptClient{
			response: `{"questions":[{"question":"q1"},{"question":"q2"}]}`,
		}
		handler := impl{gptClient: client}
		_, err := handler.GenerateQuestions(context.Background(), cfg, 2)
		require.Nil(t, err)
		require.Contains(t, client.gotText, "Backend разработчик")
		require.Contains(t, client.gotText, "senior")
		require.Contains(t, client.gotText, "Количество вопросов: 2")
	})
}
