package apiv1

import (
	"recruit-flow-backend/controllers"
	"recruit-flow-backend/lib/analytics"
	assessmenthandler "recruit-flow-backend/lib/assessment"
	"recruit-flow-backend/middleware"
	apimodels "recruit-flow-backend/models/api"
	testapimodels "recruit-flow-backend/models/api/test"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type testApiController struct {
	controllers.BaseAPIController
}

func InitTestApiRouters(app *fiber.App) {
	controller := testApiController{}
	app.Route("tests", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Delete("", controller.delete)
			idRouter.Post("assign", controller.assign)
			idRouter.Get("assignments", controller.assignments)
			idRouter.Post("suggest-next-round", controller.suggestNextRound)
			idRouter.Post("release-results", controller.releaseResults)
			idRouter.Get("export", controller.exportXls)
			idRouter.Get("report/:candidate_id", controller.report)
		})
	})
}

// @Summary Create a test
// @Tags Tests
// @Description Create a test with its question bank
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	testapimodels.TestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests [post]
func (c *testApiController) create(ctx *fiber.Ctx) error {
	var payload testapimodels.TestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := assessmenthandler.Instance.Create(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List tests
// @Tags Tests
// @Description List tests, optionally for one form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   form_id	query	string	false	"form ID"
// @Success 200 {object} apimodels.Response{data=[]testapimodels.TestView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests [get]
func (c *testApiController) list(ctx *fiber.Ctx) error {
	list, err := assessmenthandler.Instance.List(ctx.Query("form_id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a test
// @Tags Tests
// @Description Get a test with correct answers, admin only
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Success 200 {object} apimodels.Response{data=testapimodels.TestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id} [get]
func (c *testApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := assessmenthandler.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update a test
// @Tags Tests
// @Description Update a test and its question bank
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Param	body	body	testapimodels.TestData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id} [put]
func (c *testApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload testapimodels.TestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = assessmenthandler.Instance.Update(id, payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete a test
// @Tags Tests
// @Description Delete a test
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id} [delete]
func (c *testApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = assessmenthandler.Instance.Delete(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Assign candidates
// @Tags Tests
// @Description Invite candidates to take the test
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Param	body	body	testapimodels.AssignRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id}/assign [post]
func (c *testApiController) assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload testapimodels.AssignRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = assessmenthandler.Instance.AssignCandidates(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary List assignments
// @Tags Tests
// @Description List the test's assignments with scores and suggestion flags
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Success 200 {object} apimodels.Response{data=[]testapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id}/assignments [get]
func (c *testApiController) assignments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := assessmenthandler.Instance.ListAssignments(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Suggest the next round
// @Tags Tests
// @Description Shortlist every candidate above the advancement cutoff
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Success 200 {object} apimodels.Response{data=testapimodels.SuggestResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id}/suggest-next-round [post]
func (c *testApiController) suggestNextRound(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := assessmenthandler.Instance.SuggestNextRound(id, middleware.GetUserID(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Release results
// @Tags Tests
// @Description Promote or reject a candidate based on the test outcome
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Param	body	body	testapimodels.ReleaseRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id}/release-results [post]
func (c *testApiController) releaseResults(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload testapimodels.ReleaseRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = assessmenthandler.Instance.ReleaseResults(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		if errors.Is(err, assessmenthandler.ErrNoAssignment) {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Export test results to xlsx
// @Tags Tests
// @Description Export all graded results of the test
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id}/export [get]
func (c *testApiController) exportXls(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := analytics.Instance.ResultsExportToXls(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="results.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Candidate report as PDF
// @Tags Tests
// @Description Candidate's graded answers for the test as a PDF
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"test ID"
// @Param   candidate_id	path	string	true	"candidate ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/tests/{id}/report/{candidate_id} [get]
func (c *testApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID := ctx.Params("candidate_id")
	if candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("candidate id is not specified"))
	}
	body, err := analytics.Instance.CandidateReportToPdf(id, candidateID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="report.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}
