package initializers

import (
	"context"
	"time"

	"mock-interview-backend/config"
	"mock-interview-backend/db"
	"mock-interview-backend/fiberlog"
	"mock-interview-backend/lib/ai/evaluation"
	questiongen "mock-interview-backend/lib/ai/question-gen"
	audiocleanupworker "mock-interview-backend/lib/audio-cleanup-worker"
	audiostorage "mock-interview-backend/lib/audio-storage"
	xlsexport "mock-interview-backend/lib/export/xls"
	yagptclient "mock-interview-backend/lib/gpt/yagpt-client"
	"mock-interview-backend/lib/interview"
	sessioncleanupworker "mock-interview-backend/lib/interview/session-cleanup-worker"
	"mock-interview-backend/lib/results"
	reportworker "mock-interview-backend/lib/results/report-worker"
	"mock-interview-backend/lib/resume"
	"mock-interview-backend/lib/speech/narration"
	"mock-interview-backend/lib/speech/transcribe"
	connectionhub "mock-interview-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()

	gptClient := yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID)
	questiongen.NewHandler(gptClient)
	evaluation.NewHandler(gptClient)

	speechTimeout := time.Duration(config.Conf.Speech.TimeoutInSec) * time.Second
	transcribe.NewProvider(config.Conf.Speech.SttURL, config.Conf.Speech.APIKey, speechTimeout)
	narration.NewProvider(config.Conf.Speech.TtsURL, config.Conf.Speech.APIKey, config.Conf.Speech.Voice, speechTimeout)

	audiostorage.NewHandler()
	xlsexport.NewHandler()
	results.NewHandler(db.DB)
	resume.NewHandler(db.DB)
	interview.NewHandler(ctx, config.Conf.Interview.QuestionCount)

	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача расчета итогов и рассылки отчетов по завершенным интервью
	reportworker.StartWorker(ctx)

	// Задача удаления аудио, оставшегося в хранилище после сбоев
	audiocleanupworker.StartWorker(ctx)

	// Задача закрытия зависших сессий
	sessioncleanupworker.StartWorker(ctx)
}
