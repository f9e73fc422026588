package interview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	aiapimodels "mock-interview-backend/models/api/ai"
	interviewapimodels "mock-interview-backend/models/api/interview"
	dbmodels "mock-interview-backend/models/db"
	wsmodels "mock-interview-backend/models/ws"
)

type fakeQuestionGen struct {
	questions []string
	err       error
}

func (f fakeQuestionGen) GenerateQuestions(ctx context.Context, cfg interviewapimodels.InterviewConfig, count int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

type fakeEvaluator struct {
	result   aiapimodels.Evaluation
	err      error
	requests []aiapimodels.EvaluationRequest
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, request aiapimodels.EvaluationRequest) (aiapimodels.Evaluation, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return aiapimodels.Evaluation{}, f.err
	}
	return f.result, nil
}

type fakeTranscriber struct {
	text string
	err  error
	urls []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	f.urls = append(f.urls, audioURL)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeNarrator struct {
	audio []byte
	err   error
	texts []string
}

func (f *fakeNarrator) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

type fakeAudioStorage struct {
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeAudioStorage) Upload(ctx context.Context, objectName string, data []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploaded = append(f.uploaded, objectName)
	return "https://s3.local/" + objectName, nil
}

func (f *fakeAudioStorage) UploadReport(ctx context.Context, objectName string, data []byte) error {
	return nil
}

func (f *fakeAudioStorage) GetReportURL(ctx context.Context, objectName string) (string, error) {
	return "https://s3.local/" + objectName, nil
}

func (f *fakeAudioStorage) Delete(ctx context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeAudioStorage) ListAudioOlderThan(ctx context.Context, age time.Duration) ([]string, error) {
	return nil, nil
}

type fakeInterviewStore struct {
	saved       []dbmodels.Interview
	inProgress  []string
	completed   []string
	completedAt *time.Time
}

func (f *fakeInterviewStore) Save(rec dbmodels.Interview) (string, error) {
	f.saved = append(f.saved, rec)
	return fmt.Sprintf("interview-%v", len(f.saved)), nil
}

func (f *fakeInterviewStore) GetByID(id string) (*dbmodels.Interview, error) {
	return nil, nil
}

func (f *fakeInterviewStore) GetByUser(userID, id string) (*dbmodels.Interview, error) {
	return nil, nil
}

func (f *fakeInterviewStore) SetInProgress(id string, startedAt time.Time) error {
	f.inProgress = append(f.inProgress, id)
	return nil
}

func (f *fakeInterviewStore) SetCompleted(id string, completedAt time.Time) error {
	f.completed = append(f.completed, id)
	f.completedAt = &completedAt
	return nil
}

func (f *fakeInterviewStore) ListCompletedWithoutResult() ([]dbmodels.Interview, error) {
	return nil, nil
}

type fakeQuestionStore struct {
	saved []dbmodels.InterviewQuestion
}

func (f *fakeQuestionStore) Save(rec dbmodels.InterviewQuestion) (string, error) {
	f.saved = append(f.saved, rec)
	return fmt.Sprintf("question-%v", len(f.saved)), nil
}

func (f *fakeQuestionStore) ListByInterview(interviewID string) ([]dbmodels.InterviewQuestion, error) {
	return f.saved, nil
}

type fakeAnswerStore struct {
	saved   []dbmodels.InterviewAnswer
	saveErr error
}

func (f *fakeAnswerStore) Save(rec dbmodels.InterviewAnswer) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, rec)
	return fmt.Sprintf("answer-%v", len(f.saved)), nil
}

func (f *fakeAnswerStore) GetByQuestion(interviewID string, questionNumber int) (*dbmodels.InterviewAnswer, error) {
	return nil, nil
}

func (f *fakeAnswerStore) ListByInterview(interviewID string) ([]dbmodels.InterviewAnswer, error) {
	return f.saved, nil
}

type fakeResults struct {
	computed   []string
	computeErr error
}

func (f *fakeResults) Compute(interviewID string) (dbmodels.InterviewResult, error) {
	if f.computeErr != nil {
		return dbmodels.InterviewResult{}, f.computeErr
	}
	f.computed = append(f.computed, interviewID)
	return dbmodels.InterviewResult{InterviewID: interviewID}, nil
}

func (f *fakeResults) GetView(userID, interviewID string) (*interviewapimodels.ResultView, error) {
	return nil, nil
}

func (f *fakeResults) GetReportURL(ctx context.Context, userID, interviewID string) (string, error) {
	return "", nil
}

type testEnv struct {
	handler      Provider
	questionGen  *fakeQuestionGen
	evaluator    *fakeEvaluator
	transcriber  *fakeTranscriber
	narrator     *fakeNarrator
	audioStorage *fakeAudioStorage
	interviews   *fakeInterviewStore
	questions    *fakeQuestionStore
	answers      *fakeAnswerStore
	results      *fakeResults
	notified     []wsmodels.ServerMessage
}

func newTestEnv(t *testing.T, questionCount int) *testEnv {
	t.Helper()
	questionTexts := make([]string, 0, questionCount)
	for idx := 1; idx <= questionCount; idx++ {
		questionTexts = append(questionTexts, fmt.Sprintf("Вопрос номер %v", idx))
	}
	env := &testEnv{
		questionGen: &fakeQuestionGen{questions: questionTexts},
		evaluator: &fakeEvaluator{result: aiapimodels.Evaluation{
			Score:            80,
			Feedback:         "хороший ответ",
			Recommendation:   "hire",
			PerformanceLevel: "Strong",
		}},
		transcriber:  &fakeTranscriber{text: "распознанная речь"},
		narrator:     &fakeNarrator{audio: []byte("audio-bytes")},
		audioStorage: &fakeAudioStorage{},
		interviews:   &fakeInterviewStore{},
		questions:    &fakeQuestionStore{},
		answers:      &fakeAnswerStore{},
		results:      &fakeResults{},
	}
	env.handler = NewInstance(context.Background(), deps{
		QuestionGen:    env.questionGen,
		Evaluator:      env.evaluator,
		Transcriber:    env.transcriber,
		Narrator:       env.narrator,
		AudioStorage:   env.audioStorage,
		InterviewStore: env.interviews,
		QuestionStore:  env.questions,
		AnswerStore:    env.answers,
		Results:        env.results,
		Notify:         func(msg wsmodels.ServerMessage) { env.notified = append(env.notified, msg) },
	}, questionCount)
	return env
}

var testCfg = interviewapimodels.InterviewConfig{
	JobRole:         "Backend разработчик",
	ExperienceLevel: "middle",
	QuestionType:    "technical",
	Email:           "user@example.com",
}

const testUserID = "user-1"

func TestStartSession(t *testing.T) {
	t.Run(`старт - первый вопрос с озвучкой`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		require.Equal(t, string(StateSpeaking), view.State)
		require.Equal(t, 1, view.QuestionNumber)
		require.Equal(t, 2, view.QuestionCount)
		require.Equal(t, "Вопрос номер 1", view.QuestionText)
		require.Equal(t, []byte("audio-bytes"), view.Audio)
		require.True(t, view.Speaking)

		require.Len(t, env.questions.saved, 2)
		require.Equal(t, 1, env.questions.saved[0].Number)
		require.Equal(t, 2, env.questions.saved[1].Number)
		require.Equal(t, []string{view.InterviewID}, env.interviews.inProgress)
	})

	t.Run(`ошибка генерации вопросов - сессия не создается`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.questionGen.err = errors.New("llm недоступен")
		_, err := env.handler.StartSession(testUserID, testCfg)
		require.NotNil(t, err)
	})

	t.Run(`ошибка озвучки не блокирует старт`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.narrator.err = errors.New("tts недоступен")
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		require.Equal(t, string(StateAwaitingResponse), view.State)
		require.False(t, view.Speaking)
		require.Nil(t, view.Audio)
	})
}

func TestSessionAccess(t *testing.T) {
	env := newTestEnv(t, 2)
	view, err := env.handler.StartSession(testUserID, testCfg)
	require.Nil(t, err)

	t.Run(`чужая сессия не видна`, func(t *testing.T) {
		_, err := env.handler.GetState("other-user", view.SessionID)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run(`неизвестная сессия`, func(t *testing.T) {
		_, err := env.handler.GetState(testUserID, "no-such-session")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run(`владелец получает состояние`, func(t *testing.T) {
		state, err := env.handler.GetState(testUserID, view.SessionID)
		require.Nil(t, err)
		require.Equal(t, view.SessionID, state.SessionID)
	})
}

func TestRecordingFlow(t *testing.T) {
	env := newTestEnv(t, 2)
	view, err := env.handler.StartSession(testUserID, testCfg)
	require.Nil(t, err)
	sessionID := view.SessionID

	t.Run(`запись недоступна во время озвучки`, func(t *testing.T) {
		err := env.handler.StartRecording(testUserID, sessionID)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run(`стоп без старта - ошибка`, func(t *testing.T) {
		_, err := env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		err = env.handler.StopRecording(testUserID, sessionID, nil)
		require.ErrorIs(t, err, ErrNotRecording)
	})

	t.Run(`отправка во время записи запрещена`, func(t *testing.T) {
		require.Nil(t, env.handler.StartRecording(testUserID, sessionID))
		_, err := env.handler.Submit(testUserID, sessionID)
		require.ErrorIs(t, err, ErrRecordingInProgress)
	})

	t.Run(`пустая запись не затирает черновик`, func(t *testing.T) {
		require.Nil(t, env.handler.StopRecording(testUserID, sessionID, nil))
		state, err := env.handler.GetState(testUserID, sessionID)
		require.Nil(t, err)
		require.False(t, state.Recording)
		require.False(t, state.HasContent)
	})

	t.Run(`записанное аудио открывает отправку`, func(t *testing.T) {
		require.Nil(t, env.handler.StartRecording(testUserID, sessionID))
		require.Nil(t, env.handler.StopRecording(testUserID, sessionID, []byte("webm-data")))
		state, err := env.handler.GetState(testUserID, sessionID)
		require.Nil(t, err)
		require.True(t, state.HasContent)
	})
}

func TestSubmitFlow(t *testing.T) {
	t.Run(`полный проход по всем вопросам`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID

		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.SetText(testUserID, sessionID, "текстовый ответ"))

		view, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, string(StateSpeaking), view.State)
		require.Equal(t, 2, view.QuestionNumber)
		require.Equal(t, "Вопрос номер 2", view.QuestionText)
		require.False(t, view.HasContent) // черновик сброшен

		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.StartRecording(testUserID, sessionID))
		require.Nil(t, env.handler.StopRecording(testUserID, sessionID, []byte("webm-data")))

		view, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, string(StateFinished), view.State)

		require.Len(t, env.answers.saved, 2)
		require.Equal(t, "Text: текстовый ответ", env.answers.saved[0].CombinedResponse)
		require.Equal(t, "Speech: распознанная речь", env.answers.saved[1].CombinedResponse)
		require.NotNil(t, env.answers.saved[0].Score)
		require.Equal(t, 80, *env.answers.saved[0].Score)

		require.Equal(t, []string{view.InterviewID}, env.interviews.completed)
		require.Equal(t, []string{view.InterviewID}, env.results.computed)

		// сессия закрыта
		_, err = env.handler.GetState(testUserID, sessionID)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run(`отправка без контента запрещена`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		_, err = env.handler.NarrationDone(testUserID, view.SessionID)
		require.Nil(t, err)
		_, err = env.handler.Submit(testUserID, view.SessionID)
		require.ErrorIs(t, err, ErrNoContent)
	})

	t.Run(`аудио удаляется из хранилища после распознавания`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID
		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.StartRecording(testUserID, sessionID))
		require.Nil(t, env.handler.StopRecording(testUserID, sessionID, []byte("webm-data")))
		_, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)

		require.Len(t, env.audioStorage.uploaded, 1)
		require.Equal(t, env.audioStorage.uploaded, env.audioStorage.deleted)
		require.Len(t, env.transcriber.urls, 1)
		require.Contains(t, env.transcriber.urls[0], env.audioStorage.uploaded[0])
	})

	t.Run(`аудио удаляется и при ошибке распознавания`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.transcriber.err = errors.New("stt недоступен")
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID
		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.StartRecording(testUserID, sessionID))
		require.Nil(t, env.handler.StopRecording(testUserID, sessionID, []byte("webm-data")))

		_, err = env.handler.Submit(testUserID, sessionID)
		require.ErrorIs(t, err, ErrNoResponseDetected)
		require.Equal(t, env.audioStorage.uploaded, env.audioStorage.deleted)
	})

	t.Run(`нераспознанное аудио возвращает сессию в ожидание, черновик цел`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.transcriber.text = ""
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID
		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.StartRecording(testUserID, sessionID))
		require.Nil(t, env.handler.StopRecording(testUserID, sessionID, []byte("webm-data")))

		_, err = env.handler.Submit(testUserID, sessionID)
		require.ErrorIs(t, err, ErrNoResponseDetected)

		state, err := env.handler.GetState(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, string(StateAwaitingResponse), state.State)
		require.Equal(t, 1, state.QuestionNumber)
		require.True(t, state.HasContent)

		// добавляем текст и отправляем повторно
		require.Nil(t, env.handler.SetText(testUserID, sessionID, "ответ текстом"))
		view, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, 2, view.QuestionNumber)
		require.Len(t, env.answers.saved, 1)
		require.Equal(t, "Text: ответ текстом", env.answers.saved[0].CombinedResponse)
	})

	t.Run(`ошибка оценки - ответ сохранен без балла, интервью идет дальше`, func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.evaluator.err = errors.New("llm недоступен")
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID
		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.SetText(testUserID, sessionID, "ответ"))

		view, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, 2, view.QuestionNumber)
		require.Len(t, env.answers.saved, 1)
		require.Nil(t, env.answers.saved[0].Score)
		require.Equal(t, "Text: ответ", env.answers.saved[0].CombinedResponse)
	})

	t.Run(`ошибка расчета итогов не ломает завершение`, func(t *testing.T) {
		env := newTestEnv(t, 1)
		env.results.computeErr = errors.New("бд недоступна")
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID
		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.SetText(testUserID, sessionID, "ответ"))

		view, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, string(StateFinished), view.State)
		require.Equal(t, []string{view.InterviewID}, env.interviews.completed)
	})

	t.Run(`код попадает в комбинированный ответ с языком`, func(t *testing.T) {
		env := newTestEnv(t, 1)
		view, err := env.handler.StartSession(testUserID, testCfg)
		require.Nil(t, err)
		sessionID := view.SessionID
		_, err = env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.SetCode(testUserID, sessionID, "func main() {}", "go"))

		_, err = env.handler.Submit(testUserID, sessionID)
		require.Nil(t, err)
		require.Len(t, env.answers.saved, 1)
		require.Equal(t, "Code (go):\nfunc main() {}", env.answers.saved[0].CombinedResponse)
		require.Len(t, env.evaluator.requests, 1)
		require.Equal(t, "Вопрос номер 1", env.evaluator.requests[0].Question)
	})
}

func TestReplay(t *testing.T) {
	env := newTestEnv(t, 2)
	view, err := env.handler.StartSession(testUserID, testCfg)
	require.Nil(t, err)
	sessionID := view.SessionID

	t.Run(`повтор во время озвучки запрещен`, func(t *testing.T) {
		_, err := env.handler.Replay(testUserID, sessionID)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run(`повтор из ожидания, черновик сохраняется`, func(t *testing.T) {
		_, err := env.handler.NarrationDone(testUserID, sessionID)
		require.Nil(t, err)
		require.Nil(t, env.handler.SetText(testUserID, sessionID, "черновик"))

		replayView, err := env.handler.Replay(testUserID, sessionID)
		require.Nil(t, err)
		require.Equal(t, string(StateSpeaking), replayView.State)
		require.Equal(t, 1, replayView.QuestionNumber)
		require.Equal(t, []byte("audio-bytes"), replayView.Audio)
		require.True(t, replayView.HasContent)
	})
}

func TestClose(t *testing.T) {
	env := newTestEnv(t, 2)
	view, err := env.handler.StartSession(testUserID, testCfg)
	require.Nil(t, err)

	require.Nil(t, env.handler.Close(testUserID, view.SessionID))
	_, err = env.handler.GetState(testUserID, view.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.ErrorIs(t, env.handler.Close(testUserID, view.SessionID), ErrSessionNotFound)
}

func TestDropStale(t *testing.T) {
	env := newTestEnv(t, 2)
	view, err := env.handler.StartSession(testUserID, testCfg)
	require.Nil(t, err)

	t.Run(`свежая сессия остается`, func(t *testing.T) {
		env.handler.DropStale(time.Hour)
		_, err := env.handler.GetState(testUserID, view.SessionID)
		require.Nil(t, err)
	})

	t.Run(`просроченная закрывается`, func(t *testing.T) {
		env.handler.DropStale(0)
		_, err := env.handler.GetState(testUserID, view.SessionID)
		require.ErrorIs(t, err, ErrSessionNotFound)
	})
}
