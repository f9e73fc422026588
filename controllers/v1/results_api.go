package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"mock-interview-backend/controllers"
	"mock-interview-backend/lib/results"
	"mock-interview-backend/middleware"
	apimodels "mock-interview-backend/models/api"
)

type resultsController struct {
	controllers.BaseAPIController
}

func InitResultsRouters(app *fiber.App) {
	controller := resultsController{}
	app.Route("results", func(resultsRoute fiber.Router) {
		resultsRoute.Use(middleware.AuthorizationRequired())

		resultsRoute.Get(":id", controller.GetResult)
		resultsRoute.Get(":id/report", controller.GetReportLink)
	})
}

// @Summary Итоги интервью
// @Tags Результаты
// @Description Итоговый балл и разбор по каждому вопросу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID интервью"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/results/{id} [get]
func (c *resultsController) GetResult(ctx *fiber.Ctx) error {
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := results.Instance.GetView(middleware.GetUserID(ctx), interviewID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Ссылка на xlsx-отчет
// @Tags Результаты
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"ID интервью"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/results/{id}/report [get]
func (c *resultsController) GetReportLink(ctx *fiber.Ctx) error {
	interviewID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	reportURL, err := results.Instance.GetReportURL(ctx.UserContext(), middleware.GetUserID(ctx), interviewID)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(reportURL))
}
