package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagPid     = "pid"
	TagUA      = "user_agent"
	TagBody    = "body"
	TagResBody = "res_body"
	RequestID  = "request_id"
)

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag extracts one log field from the request context.
type FuncTag func(c *fiber.Ctx, d *data) interface{}

var funcTags = map[string]FuncTag{
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagUA: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Request().Header.UserAgent())
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		return string(c.Response().Body())
	},
	RequestID: func(c *fiber.Ctx, d *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
