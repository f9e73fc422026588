package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_sessions_started_total",
		Help: "Количество запущенных сессий интервью",
	})
	SessionsFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_sessions_finished_total",
		Help: "Количество завершенных сессий интервью",
	})
	AnswersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_answers_submitted_total",
		Help: "Количество отправленных ответов",
	})
	EvaluationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_evaluation_errors_total",
		Help: "Количество ошибок сервиса оценки",
	})
	TranscriptionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_transcription_errors_total",
		Help: "Количество ошибок сервиса транскрибации",
	})
	NarrationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_narration_errors_total",
		Help: "Количество ошибок сервиса озвучки",
	})
)
