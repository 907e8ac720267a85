package public

import (
	"recruit-flow-backend/controllers"
	formhandler "recruit-flow-backend/lib/form"
	apimodels "recruit-flow-backend/models/api"
	formapimodels "recruit-flow-backend/models/api/form"

	"github.com/gofiber/fiber/v2"
)

type applyApiController struct {
	controllers.BaseAPIController
}

// InitApplyApiRouters mounts the unauthenticated apply routes.
func InitApplyApiRouters(app *fiber.App) {
	controller := applyApiController{}
	app.Route("forms", func(router fiber.Router) {
		router.Get(":link", controller.get)
		router.Post(":link/apply", controller.apply)
	})
}

// @Summary Get a recruitment form by its public link
// @Tags Public
// @Description Get an open recruitment form, internal ids stripped
// @Param   link	path	string	true	"form link token"
// @Success 200 {object} apimodels.Response{data=formapimodels.PublicFormView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/forms/{link} [get]
func (c *applyApiController) get(ctx *fiber.Ctx) error {
	link := ctx.Params("link")
	if link == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("link is not specified"))
	}
	view, err := formhandler.Instance.GetPublicByLink(link)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Apply through a recruitment form
// @Tags Public
// @Description Submit an application and enter the pipeline
// @Param   link	path	string	true	"form link token"
// @Param	body	body	formapimodels.ApplyRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/forms/{link}/apply [post]
func (c *applyApiController) apply(ctx *fiber.Ctx) error {
	link := ctx.Params("link")
	if link == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("link is not specified"))
	}
	var payload formapimodels.ApplyRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID, err := formhandler.Instance.Apply(link, payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateID))
}
