package apiv1

import (
	"recruit-flow-backend/controllers"
	"recruit-flow-backend/lib/analytics"
	apimodels "recruit-flow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Get("", controller.dashboard)
	})
}

// @Summary Recruitment dashboard
// @Tags Dashboard
// @Description Pipeline and test statistics, optionally for one form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   form_id	query	string	false	"form ID"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.DashboardView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard [get]
func (c *dashboardApiController) dashboard(ctx *fiber.Ctx) error {
	view, err := analytics.Instance.Dashboard(ctx.Query("form_id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
