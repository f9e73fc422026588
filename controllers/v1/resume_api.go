package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"mock-interview-backend/controllers"
	"mock-interview-backend/lib/resume"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"
	resumeapimodels "mock-interview-backend/models/api/resume"
)

type resumeController struct {
	controllers.BaseAPIController
}

func InitResumeRouters(app *fiber.App) {
	controller := resumeController{}
	app.Route("resume", func(resumeRoute fiber.Router) {
		resumeRoute.Use(middleware.AuthorizationRequired())

		resumeRoute.Get("", controller.Get)
		resumeRoute.Put("", controller.Save)
		resumeRoute.Delete("", controller.Delete)
		resumeRoute.Get("pdf", controller.ExportPDF)
	})
}

// @Summary Получение резюме
// @Tags Резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=resumeapimodels.ResumeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/resume [get]
func (c *resumeController) Get(ctx *fiber.Ctx) error {
	view, err := resume.Instance.Get(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "не удалось получить резюме")
	}
	if view == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("резюме не найдено"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сохранение резюме
// @Tags Резюме
// @Description Резюме пользователя одно, повторное сохранение перезаписывает
// @Param   Authorization		header		string	true	"Authorization token"
// @Param 	body	body	resumeapimodels.ResumeData	true	"данные резюме"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/resume [put]
func (c *resumeController) Save(ctx *fiber.Ctx) error {
	body := resumeapimodels.ResumeData{}
	if err := c.BodyParser(ctx, &body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := body.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := resume.Instance.Save(middleware.GetUserID(ctx), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "не удалось сохранить резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Удаление резюме
// @Tags Резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/resume [delete]
func (c *resumeController) Delete(ctx *fiber.Ctx) error {
	if err := resume.Instance.Delete(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "не удалось удалить резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка резюме в pdf
// @Tags Резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/resume/pdf [get]
func (c *resumeController) ExportPDF(ctx *fiber.Ctx) error {
	fileName, pdfFile, err := resume.Instance.ExportPDF(middleware.GetUserID(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
