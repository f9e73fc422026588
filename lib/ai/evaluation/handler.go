package evaluation

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
)

type Provider interface {
	Evaluate(ctx context.Context, request aiapimodels.EvaluationRequest) (result aiapimodels.Evaluation, err error)
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

const evaluatePromt = `Ты - опытный технический интервьюер, оцениваешь ответ кандидата на вопрос собеседования. ` +
	`Оцени полноту, точность и глубину ответа по шкале от 0 до 100. ` +
	`Ответ верни строго в формате JSON без пояснений: ` +
	`{"score":0,"feedback":"...","strengths":["..."],"improvements":["..."],"recommendation":"hire|maybe|no_hire","performance_level":"..."}`

func (i impl) Evaluate(ctx context.Context, request aiapimodels.EvaluationRequest) (result aiapimodels.Evaluation, err error) {
	text := buildRequestText(request)
	generated, err := i.gptClient.GenerateByPromtAndText(ctx, evaluatePromt, text)
	if err != nil {
		return result, errors.Wrap(err, "ошибка оценки ответа")
	}
	cleaned := helpers.CleanJSONResponse(generated)
	if err = json.Unmarshal([]byte(cleaned), &result); err != nil {
		log.
			WithField("llm_response", generated).
			WithError(err).
			Error("ошибка распознавания результата оценки")
		return result, errors.Wrap(err, "ошибка распознавания результата оценки")
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result, nil
}

func buildRequestText(request aiapimodels.EvaluationRequest) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Позиция: %v\n", request.JobRole))
	if request.Domain != "" {
		sb.WriteString(fmt.Sprintf("Область: %v\n", request.Domain))
	}
	if request.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Уровень кандидата: %v\n", request.ExperienceLevel))
	}
	sb.WriteString(fmt.Sprintf("Вопрос: %v\n", request.Question))
	sb.WriteString(fmt.Sprintf("Ответ кандидата:\n%v", request.Answer))
	return sb.String()
}
