package interview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"mock-interview-backend/db"
	evaluation "mock-interview-backend/lib/ai/evaluation"
	questiongen "mock-interview-backend/lib/ai/question-gen"
	audiostorage "mock-interview-backend/lib/audio-storage"
	answerstore "mock-interview-backend/lib/interview/answer-store"
	questionstore "mock-interview-backend/lib/interview/question-store"
	interviewstore "mock-interview-backend/lib/interview/store"
	"mock-interview-backend/lib/results"
	"mock-interview-backend/lib/speech/narration"
	"mock-interview-backend/lib/speech/transcribe"
	connectionhub "mock-interview-backend/lib/ws/hub/connection-hub"
	"mock-interview-backend/metrics"
	aiapimodels "mock-interview-backend/models/api/ai"
	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"
	wsmodels "mock-interview-backend/models/ws"
)

var (
	ErrSessionNotFound     = errors.New("сессия не найдена")
	ErrInvalidState        = errors.New("операция недоступна в текущем состоянии сессии")
	ErrSpeakingInProgress  = errors.New("дождитесь окончания озвучки вопроса")
	ErrRecordingInProgress = errors.New("остановите запись перед отправкой ответа")
	ErrNotRecording        = errors.New("запись не запущена")
	ErrNoContent           = errors.New("ответ не заполнен, добавьте аудио, текст или код")
	ErrNoResponseDetected  = errors.New("ответ не распознан, попробуйте еще раз")
)

type Provider interface {
	StartSession(userID string, cfg interviewapimodels.InterviewConfig) (view interviewapimodels.SessionView, err error)
	GetState(userID, sessionID string) (view interviewapimodels.SessionView, err error)
	NarrationDone(userID, sessionID string) (view interviewapimodels.SessionView, err error)
	Replay(userID, sessionID string) (view interviewapimodels.SessionView, err error)
	SetText(userID, sessionID, text string) error
	SetCode(userID, sessionID, code, language string) error
	StartRecording(userID, sessionID string) error
	StopRecording(userID, sessionID string, clip []byte) error
	Submit(userID, sessionID string) (view interviewapimodels.SessionView, err error)
	Close(userID, sessionID string) error
	DropStale(ttl time.Duration)
}

var Instance Provider

func NewHandler(ctx context.Context, questionCount int) {
	Instance = NewInstance(ctx, deps{
		QuestionGen:    questiongen.Instance,
		Evaluator:      evaluation.Instance,
		Transcriber:    transcribe.Instance,
		Narrator:       narration.Instance,
		AudioStorage:   audiostorage.Instance,
		InterviewStore: interviewstore.NewInstance(db.DB),
		QuestionStore:  questionstore.NewInstance(db.DB),
		AnswerStore:    answerstore.NewInstance(db.DB),
		Results:        results.Instance,
		Notify:         func(msg wsmodels.ServerMessage) { connectionhub.Instance.SendMessage(msg) },
	}, questionCount)
}

type deps struct {
	QuestionGen    questiongen.Provider
	Evaluator      evaluation.Provider
	Transcriber    transcribe.Provider
	Narrator       narration.Provider
	AudioStorage   audiostorage.Provider
	InterviewStore interviewstore.Provider
	QuestionStore  questionstore.Provider
	AnswerStore    answerstore.Provider
	Results        results.Provider
	Notify         func(msg wsmodels.ServerMessage)
}

func NewInstance(ctx context.Context, d deps, questionCount int) Provider {
	return &impl{
		appCtx:        ctx,
		d:             d,
		questionCount: questionCount,
		sessions:      map[string]*session{},
	}
}

type impl struct {
	appCtx        context.Context
	d             deps
	questionCount int

	mu       sync.RWMutex
	sessions map[string]*session //map[sessionID]
}

func (i *impl) getLogger(userID, sessionID string) *log.Entry {
	return log.
		WithField("user_id", userID).
		WithField("session_id", sessionID)
}

func (i *impl) getSession(userID, sessionID string) (*session, error) {
	i.mu.RLock()
	s, ok := i.sessions[sessionID]
	i.mu.RUnlock()
	if !ok || s.userID != userID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (i *impl) dropSession(sessionID string) {
	i.mu.Lock()
	s, ok := i.sessions[sessionID]
	if ok {
		delete(i.sessions, sessionID)
	}
	i.mu.Unlock()
	if ok {
		s.cancel()
	}
}

func (i *impl) notifyState(userID, sessionID string, state SessionState, questionNumber int, msg string) {
	if i.d.Notify == nil {
		return
	}
	i.d.Notify(wsmodels.ServerMessage{
		ToUserID:       userID,
		Time:           time.Now().Format("02.01.2006 15:04:05"),
		SessionID:      sessionID,
		State:          string(state),
		QuestionNumber: questionNumber,
		Msg:            msg,
	})
}

func (i *impl) StartSession(userID string, cfg interviewapimodels.InterviewConfig) (interviewapimodels.SessionView, error) {
	sessionID := uuid.NewString()
	logger := i.getLogger(userID, sessionID)

	interviewID, err := i.d.InterviewStore.Save(dbmodels.Interview{
		UserID:          userID,
		UserEmail:       cfg.Email,
		JobRole:         cfg.JobRole,
		Domain:          cfg.Domain,
		ExperienceLevel: cfg.ExperienceLevel,
		QuestionType:    cfg.QuestionType,
		Constraints:     cfg.Constraints,
		QuestionCount:   i.questionCount,
		Status:          dbmodels.InterviewCreated,
	})
	if err != nil {
		return interviewapimodels.SessionView{}, errors.Wrap(err, "ошибка создания интервью")
	}
	logger = logger.WithField("interview_id", interviewID)

	ctx, cancel := context.WithCancel(i.appCtx)
	texts, err := i.d.QuestionGen.GenerateQuestions(ctx, cfg, i.questionCount)
	if err != nil {
		cancel()
		return interviewapimodels.SessionView{}, errors.Wrap(err, "ошибка генерации вопросов")
	}

	questions := make([]dbmodels.InterviewQuestion, 0, len(texts))
	for idx, text := range texts {
		rec := dbmodels.InterviewQuestion{
			InterviewID: interviewID,
			Number:      idx + 1,
			Text:        text,
		}
		if _, err = i.d.QuestionStore.Save(rec); err != nil {
			cancel()
			return interviewapimodels.SessionView{}, errors.Wrap(err, "ошибка сохранения вопроса")
		}
		questions = append(questions, rec)
	}

	now := time.Now()
	if err = i.d.InterviewStore.SetInProgress(interviewID, now); err != nil {
		logger.WithError(err).Error("не удалось отметить старт интервью")
	}

	s := &session{
		id:     sessionID,
		userID: userID,
		interview: dbmodels.Interview{
			BaseModel:       dbmodels.BaseModel{ID: interviewID},
			UserID:          userID,
			UserEmail:       cfg.Email,
			JobRole:         cfg.JobRole,
			Domain:          cfg.Domain,
			ExperienceLevel: cfg.ExperienceLevel,
			QuestionType:    cfg.QuestionType,
			Constraints:     cfg.Constraints,
			QuestionCount:   i.questionCount,
			Status:          dbmodels.InterviewInProgress,
		},
		questions: questions,
		state:     StateSpeaking,
		speaking:  true,
		ctx:       ctx,
		cancel:    cancel,
		createdAt: now,
	}

	i.mu.Lock()
	i.sessions[sessionID] = s
	i.mu.Unlock()

	metrics.SessionsStarted.Inc()
	logger.Info("Сессия интервью создана")
	i.notifyState(userID, sessionID, StateSpeaking, 1, "интервью началось")

	audio := i.narrate(s, questions[0].Text, logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(audio), nil
}

// narrate озвучивает текст вопроса. При ошибке синтеза сессия не блокируется:
// переводим ее в ожидание ответа, вопрос остается доступен текстом.
func (i *impl) narrate(s *session, text string, logger *log.Entry) []byte {
	audio, err := i.d.Narrator.Synthesize(s.ctx, text)
	if err != nil {
		metrics.NarrationErrors.Inc()
		logger.WithError(err).Warn("ошибка озвучки вопроса, продолжаем без аудио")
		s.mu.Lock()
		s.speaking = false
		if s.state == StateSpeaking {
			s.state = StateAwaitingResponse
		}
		s.mu.Unlock()
		return nil
	}
	return audio
}

func (i *impl) GetState(userID, sessionID string) (interviewapimodels.SessionView, error) {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(nil), nil
}

func (i *impl) NarrationDone(userID, sessionID string) (interviewapimodels.SessionView, error) {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSpeaking {
		return interviewapimodels.SessionView{}, ErrInvalidState
	}
	s.speaking = false
	s.state = StateAwaitingResponse
	i.notifyState(userID, sessionID, StateAwaitingResponse, s.questionIndex+1, "")
	return s.view(nil), nil
}

func (i *impl) Replay(userID, sessionID string) (interviewapimodels.SessionView, error) {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	s.mu.Lock()
	if s.state != StateAwaitingResponse {
		s.mu.Unlock()
		return interviewapimodels.SessionView{}, ErrInvalidState
	}
	if s.recording {
		s.mu.Unlock()
		return interviewapimodels.SessionView{}, ErrRecordingInProgress
	}
	s.state = StateSpeaking
	s.speaking = true
	text := s.currentQuestion().Text
	s.mu.Unlock()

	audio := i.narrate(s, text, i.getLogger(userID, sessionID))

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(audio), nil
}

func (i *impl) SetText(userID, sessionID, text string) error {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingResponse {
		return ErrInvalidState
	}
	s.pending.TextContent = text
	return nil
}

func (i *impl) SetCode(userID, sessionID, code, language string) error {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingResponse {
		return ErrInvalidState
	}
	s.pending.CodeContent = code
	s.pending.CodeLanguage = language
	return nil
}

func (i *impl) StartRecording(userID, sessionID string) error {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingResponse {
		return ErrInvalidState
	}
	if s.speaking {
		return ErrSpeakingInProgress
	}
	s.recording = true
	return nil
}

func (i *impl) StopRecording(userID, sessionID string, clip []byte) error {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.recording {
		return ErrNotRecording
	}
	s.recording = false
	if len(clip) > 0 {
		s.pending.AudioClip = clip
	}
	return nil
}

func (i *impl) Submit(userID, sessionID string) (interviewapimodels.SessionView, error) {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	logger := i.getLogger(userID, sessionID)

	s.mu.Lock()
	if s.state != StateAwaitingResponse {
		s.mu.Unlock()
		return interviewapimodels.SessionView{}, ErrInvalidState
	}
	if s.speaking {
		s.mu.Unlock()
		return interviewapimodels.SessionView{}, ErrSpeakingInProgress
	}
	if s.recording {
		s.mu.Unlock()
		return interviewapimodels.SessionView{}, ErrRecordingInProgress
	}
	if !s.pending.HasContent() {
		s.mu.Unlock()
		return interviewapimodels.SessionView{}, ErrNoContent
	}
	s.state = StateProcessing
	pending := s.pending
	question := s.currentQuestion()
	s.mu.Unlock()

	logger = logger.
		WithField("interview_id", s.interview.ID).
		WithField("question_number", question.Number)
	i.notifyState(userID, sessionID, StateProcessing, question.Number, "")

	transcript := i.transcribeClip(s.ctx, s.interview.ID, question.Number, pending.AudioClip, logger)

	combined := BuildCombinedResponse(transcript, pending.TextContent, pending.CodeContent, pending.CodeLanguage)
	if combined == "" {
		// распознавание не дало текста, а другого контента нет -
		// черновик сохраняем, пользователь может переписать аудио
		s.mu.Lock()
		s.state = StateAwaitingResponse
		s.mu.Unlock()
		i.notifyState(userID, sessionID, StateAwaitingResponse, question.Number, "ответ не распознан")
		return interviewapimodels.SessionView{}, ErrNoResponseDetected
	}

	answer := dbmodels.InterviewAnswer{
		InterviewID:      s.interview.ID,
		QuestionNumber:   question.Number,
		TranscribedText:  transcript,
		TextContent:      pending.TextContent,
		CodeContent:      pending.CodeContent,
		CodeLanguage:     pending.CodeLanguage,
		CombinedResponse: combined,
	}

	eval, err := i.d.Evaluator.Evaluate(s.ctx, aiapimodels.EvaluationRequest{
		Question:        question.Text,
		Answer:          combined,
		JobRole:         s.interview.JobRole,
		Domain:          s.interview.Domain,
		ExperienceLevel: s.interview.ExperienceLevel,
	})
	if err != nil {
		// ответ сохраняем без оценки, интервью продолжается
		metrics.EvaluationErrors.Inc()
		logger.WithError(err).Error("ошибка оценки ответа")
	} else {
		score := eval.Score
		answer.Score = &score
		answer.Feedback = eval.Feedback
		answer.Strengths = pq.StringArray(eval.Strengths)
		answer.Improvements = pq.StringArray(eval.Improvements)
		answer.Recommendation = eval.Recommendation
		answer.PerformanceLevel = eval.PerformanceLevel
	}

	if _, err = i.d.AnswerStore.Save(answer); err != nil {
		logger.WithError(err).Error("ошибка сохранения ответа")
	}
	metrics.AnswersSubmitted.Inc()

	s.mu.Lock()
	s.pending.Reset()
	if s.questionIndex+1 < len(s.questions) {
		s.questionIndex++
		s.state = StateSpeaking
		s.speaking = true
		next := s.currentQuestion()
		s.mu.Unlock()

		i.notifyState(userID, sessionID, StateSpeaking, next.Number, "")
		audio := i.narrate(s, next.Text, logger)

		s.mu.Lock()
		defer s.mu.Unlock()
		return s.view(audio), nil
	}

	s.state = StateFinishing
	s.mu.Unlock()
	i.notifyState(userID, sessionID, StateFinishing, question.Number, "")

	if err = i.d.InterviewStore.SetCompleted(s.interview.ID, time.Now()); err != nil {
		logger.WithError(err).Error("не удалось отметить завершение интервью")
	}
	if _, err = i.d.Results.Compute(s.interview.ID); err != nil {
		// итог досчитает фоновая задача
		logger.WithError(err).Error("ошибка расчета итогов интервью")
	}

	s.mu.Lock()
	s.state = StateFinished
	view := s.view(nil)
	s.mu.Unlock()

	metrics.SessionsFinished.Inc()
	logger.Info("Сессия интервью завершена")
	i.notifyState(userID, sessionID, StateFinished, question.Number, "интервью завершено")
	i.dropSession(sessionID)
	return view, nil
}

// transcribeClip загружает аудио в хранилище, распознает его по presigned-ссылке
// и в любом случае удаляет объект. Любая ошибка дает пустую расшифровку.
func (i *impl) transcribeClip(ctx context.Context, interviewID string, questionNumber int, clip []byte, logger *log.Entry) string {
	if len(clip) == 0 {
		return ""
	}

	objectName := audiostorage.AudioObjectName(interviewID, questionNumber)
	objectURL, err := i.d.AudioStorage.Upload(ctx, objectName, clip)
	if err != nil {
		metrics.TranscriptionErrors.Inc()
		logger.WithError(err).Error("ошибка загрузки аудио в хранилище")
		return ""
	}

	text, err := i.d.Transcriber.Transcribe(ctx, objectURL)

	if delErr := i.d.AudioStorage.Delete(ctx, objectName); delErr != nil {
		logger.WithError(delErr).WithField("object_name", objectName).
			Warn("не удалось удалить аудио, объект подчистит фоновая задача")
	}

	if err != nil {
		if !errors.Is(err, transcribe.ErrEmptyTranscript) {
			metrics.TranscriptionErrors.Inc()
			logger.WithError(err).Error("ошибка распознавания аудио")
		}
		return ""
	}
	return text
}

func (i *impl) Close(userID, sessionID string) error {
	s, err := i.getSession(userID, sessionID)
	if err != nil {
		return err
	}
	i.dropSession(s.id)
	i.getLogger(userID, sessionID).Info("Сессия интервью закрыта пользователем")
	return nil
}

// DropStale закрывает сессии старше ttl, вызывается фоновой задачей.
func (i *impl) DropStale(ttl time.Duration) {
	deadline := time.Now().Add(-ttl)

	i.mu.Lock()
	var stale []*session
	for id, s := range i.sessions {
		if s.createdAt.Before(deadline) {
			delete(i.sessions, id)
			stale = append(stale, s)
		}
	}
	i.mu.Unlock()

	for _, s := range stale {
		s.cancel()
		i.getLogger(s.userID, s.id).Warn("Сессия закрыта по таймауту")
	}
}
