package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"mock-interview-backend/controllers"
	"mock-interview-backend/lib/interview"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"
	interviewapimodels "mock-interview-backend/models/api/interview"
)

type interviewController struct {
	controllers.BaseAPIController
}

func InitInterviewRouters(app *fiber.App) {
	controller := interviewController{}
	app.Route("interview", func(interviewRoute fiber.Router) {
		interviewRoute.Use(middleware.AuthorizationRequired())

		interviewRoute.Route("session", func(sessionRoute fiber.Router) {
			sessionRoute.Post("", controller.StartSession)
			sessionRoute.Get(":id", controller.GetState)
			sessionRoute.Post(":id/narration_done", controller.NarrationDone)
			sessionRoute.Post(":id/replay", controller.Replay)
			sessionRoute.Put(":id/text", controller.SetText)
			sessionRoute.Put(":id/code", controller.SetCode)
			sessionRoute.Post(":id/recording/start", controller.StartRecording)
			sessionRoute.Post(":id/recording/stop", controller.StopRecording)
			sessionRoute.Post(":id/submit", controller.Submit)
			sessionRoute.Delete(":id", controller.Close)
		})
	})
}

// sendSessionError транслирует ошибки оркестратора в коды ответа
func (c *interviewController) sendSessionError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, interview.ErrInvalidState),
		errors.Is(err, interview.ErrSpeakingInProgress),
		errors.Is(err, interview.ErrRecordingInProgress),
		errors.Is(err, interview.ErrNotRecording),
		errors.Is(err, interview.ErrNoContent),
		errors.Is(err, interview.ErrNoResponseDetected):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка обработки сессии интервью")
}

// @Summary Запуск сессии интервью
// @Tags Интервью
// @Description Создание интервью, генерация вопросов и озвучка первого вопроса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	body	body	interviewapimodels.InterviewConfig	true	"параметры интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/session [post]
func (c *interviewController) StartSession(ctx *fiber.Ctx) error {
	body := interviewapimodels.InterviewConfig{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if body.Email == "" {
		body.Email = middleware.GetUserEmail(ctx)
	}

	view, err := interview.Instance.StartSession(middleware.GetUserID(ctx), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "не удалось запустить интервью")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Состояние сессии интервью
// @Tags Интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id} [get]
func (c *interviewController) GetState(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.GetState(middleware.GetUserID(ctx), sessionID)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Подтверждение окончания озвучки вопроса
// @Tags Интервью
// @Description Клиент сообщает, что проигрывание вопроса завершено
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/narration_done [post]
func (c *interviewController) NarrationDone(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.NarrationDone(middleware.GetUserID(ctx), sessionID)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Повторная озвучка текущего вопроса
// @Tags Интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/replay [post]
func (c *interviewController) Replay(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.Replay(middleware.GetUserID(ctx), sessionID)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сохранение текстовой части ответа
// @Tags Интервью
// @Description Черновик текста сохраняется в сессии до отправки ответа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Param 	body	body	interviewapimodels.SetTextRequest	true	"текст ответа"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/text [put]
func (c *interviewController) SetText(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := interviewapimodels.SetTextRequest{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = interview.Instance.SetText(middleware.GetUserID(ctx), sessionID, body.Text); err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сохранение кода в ответе
// @Tags Интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Param 	body	body	interviewapimodels.SetCodeRequest	true	"код и язык"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/code [put]
func (c *interviewController) SetCode(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body := interviewapimodels.SetCodeRequest{}
	if err = c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = interview.Instance.SetCode(middleware.GetUserID(ctx), sessionID, body.Code, body.Language); err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Старт записи аудио-ответа
// @Tags Интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/recording/start [post]
func (c *interviewController) StartRecording(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = interview.Instance.StartRecording(middleware.GetUserID(ctx), sessionID); err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Остановка записи с передачей аудио
// @Tags Интервью
// @Description Аудио передается файлом в поле audio, пустая запись допустима
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Param   audio		formData	file 	false 	"file to upload"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/recording/stop [post]
func (c *interviewController) StopRecording(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var clip []byte
	file, err := ctx.FormFile("audio")
	if err == nil {
		buffer, err := file.Open()
		if err != nil {
			log.WithError(err).Error("Ошибка при получении аудио файла")
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		defer buffer.Close()
		clip, err = io.ReadAll(buffer)
		if err != nil {
			log.WithError(err).Error("Ошибка при загрузке аудио файла")
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}

	if err = interview.Instance.StopRecording(middleware.GetUserID(ctx), sessionID, clip); err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправка ответа на текущий вопрос
// @Tags Интервью
// @Description Распознавание аудио, оценка ответа и переход к следующему вопросу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/session/{id}/submit [post]
func (c *interviewController) Submit(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interview.Instance.Submit(middleware.GetUserID(ctx), sessionID)
	if err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Досрочное закрытие сессии
// @Tags Интервью
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID сессии"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session/{id} [delete]
func (c *interviewController) Close(ctx *fiber.Ctx) error {
	sessionID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = interview.Instance.Close(middleware.GetUserID(ctx), sessionID); err != nil {
		return c.sendSessionError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
