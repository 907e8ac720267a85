package apiv1

import (
	"recruit-flow-backend/controllers"
	assessmenthandler "recruit-flow-backend/lib/assessment"
	"recruit-flow-backend/middleware"
	apimodels "recruit-flow-backend/models/api"
	testapimodels "recruit-flow-backend/models/api/test"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type candidateTestApiController struct {
	controllers.BaseAPIController
}

// InitCandidateTestApiRouters mounts the authenticated candidate's test routes.
func InitCandidateTestApiRouters(app *fiber.App) {
	controller := candidateTestApiController{}
	app.Route("tests", func(router fiber.Router) {
		router.Post(":id/submit", controller.submit)
	})
}

// @Summary Submit test answers
// @Tags Candidate tests
// @Description Grade and persist the current candidate's submission
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Param	body	body	testapimodels.SubmitRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=testapimodels.SubmitResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/my/tests/{id}/submit [post]
func (c *candidateTestApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload testapimodels.SubmitRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := assessmenthandler.Instance.Submit(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return submitError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

func submitError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, assessmenthandler.ErrNoAssignment):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, assessmenthandler.ErrAssignmentExpired),
		errors.Is(err, assessmenthandler.ErrDeadlinePassed):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}
