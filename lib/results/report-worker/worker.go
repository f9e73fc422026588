package reportworker

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"mock-interview-backend/config"
	"mock-interview-backend/db"
	audiostorage "mock-interview-backend/lib/audio-storage"
	xlsexport "mock-interview-backend/lib/export/xls"
	answerstore "mock-interview-backend/lib/interview/answer-store"
	questionstore "mock-interview-backend/lib/interview/question-store"
	resultstore "mock-interview-backend/lib/interview/result-store"
	interviewstore "mock-interview-backend/lib/interview/store"
	"mock-interview-backend/lib/results"
	"mock-interview-backend/lib/smtp"
	baseworker "mock-interview-backend/lib/utils/base-worker"
	"mock-interview-backend/lib/utils/helpers"
	dbmodels "mock-interview-backend/models/db"
)

// Задача формирования и рассылки отчетов по завершенным интервью.
// Также досчитывает итоги, если расчет при завершении сессии не прошел.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:       *baseworker.NewInstance("ReportWorker", 30*time.Second, 5*time.Minute),
		interviewStore: interviewstore.NewInstance(db.DB),
		questionStore:  questionstore.NewInstance(db.DB),
		answerStore:    answerstore.NewInstance(db.DB),
		resultStore:    resultstore.NewInstance(db.DB),
		audioStorage:   audiostorage.Instance,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	interviewStore interviewstore.Provider
	questionStore  questionstore.Provider
	answerStore    answerstore.Provider
	resultStore    resultstore.Provider
	audioStorage   audiostorage.Provider
}

func (i impl) handle(ctx context.Context) {
	i.computeMissing(ctx)
	i.sendReports(ctx)
}

func (i impl) computeMissing(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.interviewStore.ListCompletedWithoutResult()
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка интервью без итогов")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if _, err = results.Instance.Compute(rec.ID); err != nil {
			logger.WithError(err).
				WithField("interview_id", rec.ID).
				Error("ошибка расчета итогов интервью")
		}
	}
}

func (i impl) sendReports(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.resultStore.ListWithUnsentReport()
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка неотправленных отчетов")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if err = i.sendReport(ctx, rec); err != nil {
			logger.WithError(err).
				WithField("interview_id", rec.InterviewID).
				Error("ошибка отправки отчета по интервью")
		}
	}
}

func (i impl) sendReport(ctx context.Context, result dbmodels.InterviewResult) error {
	interview, err := i.interviewStore.GetByID(result.InterviewID)
	if err != nil {
		return err
	}
	if interview == nil {
		log.WithField("interview_id", result.InterviewID).Warn("интервью для отчета не найдено")
		return nil
	}
	if interview.UserEmail == "" {
		// слать некуда, отмечаем чтобы не перебирать запись каждый цикл
		return i.resultStore.SetReportSent(result.ID, "", time.Now())
	}

	questions, err := i.questionStore.ListByInterview(result.InterviewID)
	if err != nil {
		return err
	}
	answers, err := i.answerStore.ListByInterview(result.InterviewID)
	if err != nil {
		return err
	}

	buf, err := xlsexport.Instance.ExportInterviewReport(*interview, result, questions, answers)
	if err != nil {
		return err
	}

	objectName := audiostorage.ReportObjectName(result.InterviewID)
	if err = i.audioStorage.UploadReport(ctx, objectName, buf.Bytes()); err != nil {
		return err
	}
	reportURL, err := i.audioStorage.GetReportURL(ctx, objectName)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Ваше интервью на позицию %q завершено.\r\n"+
		"Итоговый балл: %d из 100 (%s).\r\n\r\n"+
		"Отчет доступен по ссылке:\r\n%s",
		interview.JobRole, result.OverallScore, result.PerformanceLevel, reportURL)
	err = smtp.Instance.SendEMail(config.Conf.Smtp.EmailFrom, interview.UserEmail, message, "Итоги интервью")
	if err != nil {
		return err
	}
	return i.resultStore.SetReportSent(result.ID, objectName, time.Now())
}
