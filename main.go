package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"recruit-flow-backend/config"
	apiv1 "recruit-flow-backend/controllers/v1"
	"recruit-flow-backend/controllers/v1/public"
	"recruit-flow-backend/fiberlog"
	"recruit-flow-backend/initializers"
	"recruit-flow-backend/middleware"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // limit of 100MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitAuthApiRouters(apiV1)

	//public: application forms and test taking, no auth
	publicApp := fiber.New()
	apiV1.Mount("/public", publicApp)
	public.InitApplyApiRouters(publicApp)
	public.InitTestApiRouters(publicApp)

	//recruiting area
	admin := fiber.New()
	apiV1.Mount("/admin", admin)
	admin.Use(middleware.AuthorizationRequired())
	admin.Use(middleware.AdminRequired())
	apiv1.InitFormApiRouters(admin)
	apiv1.InitCandidateApiRouters(admin)
	apiv1.InitTestApiRouters(admin)
	apiv1.InitDashboardApiRouters(admin)

	//interview panel area
	panel := fiber.New()
	apiV1.Mount("/panel", panel)
	panel.Use(middleware.AuthorizationRequired())
	panel.Use(middleware.PanelRequired())
	apiv1.InitInterviewApiRouters(panel)

	//candidate area
	my := fiber.New()
	apiV1.Mount("/my", my)
	my.Use(middleware.AuthorizationRequired())
	apiv1.InitCandidateTestApiRouters(my)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
