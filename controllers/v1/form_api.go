package apiv1

import (
	"recruit-flow-backend/controllers"
	formhandler "recruit-flow-backend/lib/form"
	apimodels "recruit-flow-backend/models/api"
	formapimodels "recruit-flow-backend/models/api/form"

	"github.com/gofiber/fiber/v2"
)

type formApiController struct {
	controllers.BaseAPIController
}

func InitFormApiRouters(app *fiber.App) {
	controller := formApiController{}
	app.Route("forms", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Put("", controller.update)
			idRouter.Delete("", controller.delete)
		})
	})
}

// @Summary Create a recruitment form
// @Tags Recruitment forms
// @Description Create a recruitment form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	formapimodels.FormData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms [post]
func (c *formApiController) create(ctx *fiber.Ctx) error {
	var payload formapimodels.FormData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := formhandler.Instance.Create(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary List recruitment forms
// @Tags Recruitment forms
// @Description List recruitment forms
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]formapimodels.FormView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms [get]
func (c *formApiController) list(ctx *fiber.Ctx) error {
	list, err := formhandler.Instance.List()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get a recruitment form
// @Tags Recruitment forms
// @Description Get a recruitment form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"form ID"
// @Success 200 {object} apimodels.Response{data=formapimodels.FormView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/{id} [get]
func (c *formApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := formhandler.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update a recruitment form
// @Tags Recruitment forms
// @Description Update a recruitment form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"form ID"
// @Param	body	body	formapimodels.FormData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/{id} [put]
func (c *formApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload formapimodels.FormData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = formhandler.Instance.Update(id, payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete a recruitment form
// @Tags Recruitment forms
// @Description Delete a recruitment form
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"form ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/forms/{id} [delete]
func (c *formApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = formhandler.Instance.Delete(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
