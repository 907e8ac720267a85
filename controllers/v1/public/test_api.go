package public

import (
	"recruit-flow-backend/controllers"
	assessmenthandler "recruit-flow-backend/lib/assessment"
	apimodels "recruit-flow-backend/models/api"
	testapimodels "recruit-flow-backend/models/api/test"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type testApiController struct {
	controllers.BaseAPIController
}

// InitTestApiRouters mounts the take-test routes reached through invite links.
func InitTestApiRouters(app *fiber.App) {
	controller := testApiController{}
	app.Route("tests/take", func(router fiber.Router) {
		router.Get(":link", controller.take)
		router.Post(":link/submit", controller.submit)
	})
}

// @Summary Take a test by invite link
// @Tags Public
// @Description Serve the test questions, the countdown starts on first access
// @Param   link	path	string	true	"assignment link token"
// @Success 200 {object} apimodels.Response{data=testapimodels.TakeTestView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/tests/take/{link} [get]
func (c *testApiController) take(ctx *fiber.Ctx) error {
	link := ctx.Params("link")
	if link == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("link is not specified"))
	}
	view, err := assessmenthandler.Instance.TakeByLink(link)
	if err != nil {
		return takeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Submit answers by invite link
// @Tags Public
// @Description Grade and persist the submission for the linked assignment
// @Param   link	path	string	true	"assignment link token"
// @Param	body	body	testapimodels.SubmitRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=testapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/tests/take/{link}/submit [post]
func (c *testApiController) submit(ctx *fiber.Ctx) error {
	link := ctx.Params("link")
	if link == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("link is not specified"))
	}
	var payload testapimodels.SubmitRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := assessmenthandler.Instance.SubmitByLink(link, payload)
	if err != nil {
		return takeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

func takeError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, assessmenthandler.ErrNoAssignment):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, assessmenthandler.ErrAssignmentCompleted),
		errors.Is(err, assessmenthandler.ErrAssignmentExpired),
		errors.Is(err, assessmenthandler.ErrDeadlinePassed):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}
