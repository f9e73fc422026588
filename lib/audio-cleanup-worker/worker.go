package audiocleanupworker

import (
	"context"
	"time"

	"mock-interview-backend/config"
	audiostorage "mock-interview-backend/lib/audio-storage"
	baseworker "mock-interview-backend/lib/utils/base-worker"
	"mock-interview-backend/lib/utils/helpers"
)

// Задача удаления аудио-ответов, оставшихся в хранилище после сбоев.
// В штатном сценарии аудио удаляется сразу после распознавания.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:     *baseworker.NewInstance("AudioCleanupWorker", 2*time.Minute, time.Hour),
		audioStorage: audiostorage.Instance,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	audioStorage audiostorage.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	age := time.Duration(config.Conf.S3.AudioTTLInMin) * time.Minute
	list, err := i.audioStorage.ListAudioOlderThan(ctx, age)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка устаревших аудио")
		return
	}
	for _, objectName := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if err = i.audioStorage.Delete(ctx, objectName); err != nil {
			logger.WithError(err).
				WithField("object_name", objectName).
				Error("ошибка удаления устаревшего аудио")
		}
	}
}
