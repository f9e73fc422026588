package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	yagptclient "mock-interview-backend/lib/gpt/yagpt-client"
	"mock-interview-backend/lib/utils/helpers"
	aiapimodels "mock-interview-backend/models/api/ai"
	interviewapimodels "mock-interview-backend/models/api/interview"
)

type Provider interface {
	GenerateQuestions(ctx context.Context, cfg interviewapimodels.InterviewConfig, count int) (questions []string, err error)
}

var Instance Provider

func NewHandler(gptClient yagptclient.Provider) {
	Instance = impl{
		gptClient: gptClient,
	}
}

type impl struct {
	gptClient yagptclient.Provider
}

const generatePromt = `Ты - опытный технический интервьюер. ` +
	`Сгенерируй вопросы для собеседования по заданному профилю кандидата. ` +
	`Ответ верни строго в формате JSON без пояснений: {"questions":[{"question":"текст вопроса"}]}`

func (i impl) GenerateQuestions(ctx context.Context, cfg interviewapimodels.InterviewConfig, count int) ([]string, error) {
	text := buildRequestText(cfg, count)
	generated, err := i.gptClient.GenerateByPromtAndText(ctx, generatePromt, text)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка генерации вопросов")
	}
	questions, err := parseQuestions(generated)
	if err != nil {
		log.
			WithField("llm_response", generated).
			WithError(err).
			Error("ошибка распознавания ответа генератора вопросов")
		return nil, errors.Wrap(err, "ошибка распознавания ответа генератора вопросов")
	}
	if len(questions) < count {
		return nil, errors.Errorf("генератор вернул %v вопросов вместо %v", len(questions), count)
	}
	return questions[:count], nil
}

func buildRequestText(cfg interviewapimodels.InterviewConfig, count int) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Позиция: %v\n", cfg.JobRole))
	if cfg.Domain != "" {
		sb.WriteString(fmt.Sprintf("Область: %v\n", cfg.Domain))
	}
	sb.WriteString(fmt.Sprintf("Уровень кандидата: %v\n", cfg.ExperienceLevel))
	sb.WriteString(fmt.Sprintf("Тип вопросов: %v\n", cfg.QuestionType))
	if cfg.Constraints != "" {
		sb.WriteString(fmt.Sprintf("Дополнительные пожелания: %v\n", cfg.Constraints))
	}
	sb.WriteString(fmt.Sprintf("Количество вопросов: %v", count))
	return sb.String()
}

// parseQuestions принимает как объект {"questions":[...]}, так и голый массив
func parseQuestions(raw string) ([]string, error) {
	cleaned := helpers.CleanJSONResponse(raw)
	result := []string{}
	wrapped := aiapimodels.GeneratedQuestions{}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && len(wrapped.Questions) > 0 {
		for _, q := range wrapped.Questions {
			if strings.TrimSpace(q.Question) != "" {
				result = append(result, strings.TrimSpace(q.Question))
			}
		}
		return result, nil
	}
	list := []aiapimodels.GeneratedQuestion{}
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil && len(list) > 0 {
		for _, q := range list {
			if strings.TrimSpace(q.Question) != "" {
				result = append(result, strings.TrimSpace(q.Question))
			}
		}
		return result, nil
	}
	plain := []string{}
	if err := json.Unmarshal([]byte(cleaned), &plain); err == nil && len(plain) > 0 {
		for _, q := range plain {
			if strings.TrimSpace(q) != "" {
				result = append(result, strings.TrimSpace(q))
			}
		}
		return result, nil
	}
	return nil, errors.New("не удалось разобрать JSON с вопросами")
}
