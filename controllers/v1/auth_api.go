package apiv1

import (
	"recruit-flow-backend/controllers"
	authhandler "recruit-flow-backend/lib/auth"
	"recruit-flow-backend/middleware"
	apimodels "recruit-flow-backend/models/api"
	authapimodels "recruit-flow-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Post("refresh-token", controller.refreshToken)
		router.Use(middleware.AuthorizationRequired()).Post("push-subscribe", controller.pushSubscribe)
	})
	app.Route("users", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.AdminRequired()).Post("", controller.register)
	})
}

// @Summary User authentication
// @Tags Auth
// @Description User authentication
// @Param	body	body	authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Refresh JWT
// @Tags Auth
// @Description Refresh JWT
// @Param	body	body	authapimodels.RefreshRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/refresh-token [post]
func (c *authApiController) refreshToken(ctx *fiber.Ctx) error {
	var payload authapimodels.RefreshRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Refresh(payload.RefreshToken)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Subscribe the current user to Web Push
// @Tags Auth
// @Description Subscribe the current user to Web Push
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	authapimodels.PushSubscribeRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/push-subscribe [post]
func (c *authApiController) pushSubscribe(ctx *fiber.Ctx) error {
	var payload authapimodels.PushSubscribeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := authhandler.Instance.SubscribePush(middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Create a staff user
// @Tags Auth
// @Description Create an admin or panel user
// @Param   Authorization	header	string	true	"Authorization token"
// @Param	body	body	authapimodels.RegisterRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users [post]
func (c *authApiController) register(ctx *fiber.Ctx) error {
	var payload authapimodels.RegisterRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID, err := authhandler.Instance.Register(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(userID))
}
