package sessioncleanupworker

import (
	"context"
	"time"

	"mock-interview-backend/config"
	"mock-interview-backend/lib/interview"
	baseworker "mock-interview-backend/lib/utils/base-worker"
)

// Задача закрытия зависших сессий интервью
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("SessionCleanupWorker", time.Minute, 10*time.Minute),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	ttl := time.Duration(config.Conf.Interview.SessionTTLInMin) * time.Minute
	interview.Instance.DropStale(ttl)
}
