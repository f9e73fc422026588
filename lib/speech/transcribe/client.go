package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	speechapimodels "mock-interview-backend/models/api/speech"
)

var (
	ErrEmptyTranscript = errors.New("речь в аудио не распознана")
)

type Provider interface {
	Transcribe(ctx context.Context, audioURL string) (text string, err error)
}

var Instance Provider

func NewProvider(url, apiKey string, timeout time.Duration) {
	Instance = &impl{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type impl struct {
	url    string
	apiKey string
	client *http.Client
}

func (i impl) Transcribe(ctx context.Context, audioURL string) (string, error) {
	request := speechapimodels.TranscribeRequest{AudioURL: audioURL}
	body, err := json.Marshal(request)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сериализации запроса")
	}

	r, err := http.NewRequestWithContext(ctx, "POST", i.url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания запроса")
	}
	r.Header.Set("Content-Type", "application/json")
	if i.apiKey != "" {
		r.Header.Set("Authorization", "Api-Key "+i.apiKey)
	}

	logger := log.
		WithField("external_request", i.url).
		WithField("audio_url", audioURL)

	resp, err := i.client.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка вызова сервиса транскрибации")
		return "", errors.Wrap(err, "ошибка вызова сервиса транскрибации")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.
			WithField("status_code", resp.StatusCode).
			WithField("response_body", string(respBody)).
			Error("сервис транскрибации вернул ошибку")
		return "", errors.Errorf("сервис транскрибации вернул код %v", resp.StatusCode)
	}

	result := speechapimodels.TranscribeResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "ошибка десериализации ответа сервиса транскрибации")
	}
	if strings.TrimSpace(result.Text) == "" {
		return "", ErrEmptyTranscript
	}
	return result.Text, nil
}
