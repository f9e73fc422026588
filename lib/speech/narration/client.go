package narration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	speechapimodels "mock-interview-backend/models/api/speech"
)

type Provider interface {
	Synthesize(ctx context.Context, text string) (audio []byte, err error)
}

var Instance Provider

func NewProvider(url, apiKey, voice string, timeout time.Duration) {
	Instance = &impl{
		url:    url,
		apiKey: apiKey,
		voice:  voice,
		client: &http.Client{Timeout: timeout},
	}
}

type impl struct {
	url    string
	apiKey string
	voice  string
	client *http.Client
}

func (i impl) Synthesize(ctx context.Context, text string) ([]byte, error) {
	request := speechapimodels.SynthesizeRequest{
		Text:  text,
		Voice: i.voice,
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка сериализации запроса")
	}

	r, err := http.NewRequestWithContext(ctx, "POST", i.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания запроса")
	}
	r.Header.Set("Content-Type", "application/json")
	if i.apiKey != "" {
		r.Header.Set("Authorization", "Api-Key "+i.apiKey)
	}

	logger := log.
		WithField("external_request", i.url)

	resp, err := i.client.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка вызова сервиса озвучки")
		return nil, errors.Wrap(err, "ошибка вызова сервиса озвучки")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.
			WithField("status_code", resp.StatusCode).
			WithField("response_body", string(respBody)).
			Error("сервис озвучки вернул ошибку")
		return nil, errors.Errorf("сервис озвучки вернул код %v", resp.StatusCode)
	}

	result := speechapimodels.SynthesizeResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "ошибка десериализации ответа сервиса озвучки")
	}
	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка декодирования аудио из base64")
	}
	if len(audio) == 0 {
		return nil, errors.New("сервис озвучки вернул пустое аудио")
	}
	return audio, nil
}
