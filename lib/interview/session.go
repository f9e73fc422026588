package interview

import (
	"context"
	"sync"
	"time"

	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"
)

type SessionState string

const (
	StateInitializing     SessionState = "initializing"
	StateSpeaking         SessionState = "speaking"
	StateAwaitingResponse SessionState = "awaiting_response"
	StateProcessing       SessionState = "processing"
	StateFinishing        SessionState = "finishing"
	StateFinished         SessionState = "finished"
)

// session - состояние одной активной сессии интервью.
// Все поля приватны для сессии и защищены mu, между сессиями ничего не разделяется.
type session struct {
	mu sync.Mutex

	id        string
	userID    string
	interview dbmodels.Interview
	questions []dbmodels.InterviewQuestion

	state         SessionState
	questionIndex int // 0-based, не убывает в рамках сессии
	pending       PendingResponse
	speaking      bool
	recording     bool

	// контекст сессии, отменяется при закрытии чтобы оборвать внешние вызовы
	ctx       context.Context
	cancel    context.CancelFunc
	createdAt time.Time
}

func (s *session) currentQuestion() dbmodels.InterviewQuestion {
	return s.questions[s.questionIndex]
}

// view строит снимок состояния, вызывается под s.mu
func (s *session) view(audio []byte) interviewapimodels.SessionView {
	return interviewapimodels.SessionView{
		SessionID:      s.id,
		InterviewID:    s.interview.ID,
		State:          string(s.state),
		QuestionNumber: s.questionIndex + 1,
		QuestionCount:  len(s.questions),
		QuestionText:   s.currentQuestion().Text,
		Speaking:       s.speaking,
		Recording:      s.recording,
		HasContent:     s.pending.HasContent(),
		Audio:          audio,
	}
}
