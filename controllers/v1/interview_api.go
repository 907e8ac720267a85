package apiv1

import (
	"recruit-flow-backend/controllers"
	interviewhandler "recruit-flow-backend/lib/interview"
	"recruit-flow-backend/middleware"
	"recruit-flow-backend/models"
	apimodels "recruit-flow-backend/models/api"
	interviewapimodels "recruit-flow-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
)

type interviewApiController struct {
	controllers.BaseAPIController
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{}
	app.Route("interviews", func(router fiber.Router) {
		router.Post("", controller.schedule)
		router.Get("", controller.list)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("score", controller.score)
			idRouter.Put("no-show/:candidate_id", controller.noShow)
		})
	})
}

// @Summary Schedule an interview
// @Tags Interviews
// @Description Put a candidate into an interview slot
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	interviewapimodels.ScheduleRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews [post]
func (c *interviewApiController) schedule(ctx *fiber.Ctx) error {
	var payload interviewapimodels.ScheduleRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := interviewhandler.Instance.Schedule(middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List interviews
// @Tags Interviews
// @Description List interviews, optionally for one form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   form_id	query	string	false	"form ID"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.InterviewView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews [get]
func (c *interviewApiController) list(ctx *fiber.Ctx) error {
	list, err := interviewhandler.Instance.List(ctx.Query("form_id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get an interview
// @Tags Interviews
// @Description Get an interview with its candidates and panel scores
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"interview ID"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id} [get]
func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := interviewhandler.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Score a candidate
// @Tags Interviews
// @Description Record the panel member's score for a candidate
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"interview ID"
// @Param	body	body	interviewapimodels.ScoreRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id}/score [put]
func (c *interviewApiController) score(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload interviewapimodels.ScoreRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = interviewhandler.Instance.SetScore(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark a no-show
// @Tags Interviews
// @Description Mark a scheduled candidate as a no-show
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"interview ID"
// @Param   candidate_id	path	string	true	"candidate ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id}/no-show/{candidate_id} [put]
func (c *interviewApiController) noShow(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID := ctx.Params("candidate_id")
	if candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("candidate id is not specified"))
	}
	err = interviewhandler.Instance.SetCandidateStatus(id, candidateID, models.InterviewCandidateNoShow)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
