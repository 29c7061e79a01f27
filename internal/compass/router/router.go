package router

import (
	"errors"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/service"
	"github.com/go-compass/compass/pkg/ctx"
	httpx "github.com/go-compass/compass/pkg/http"
	"github.com/go-compass/compass/pkg/http/middleware"
	"github.com/go-compass/compass/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:48
 * @file: router.go
 * @description: setup router
 */

type Router struct {
	Http     *httpx.Http
	Ctx      *ctx.Context
	Services *service.Services
}

func NewRouter(httpConf *httpx.Http, c *ctx.Context, services *service.Services) *Router {
	return &Router{
		Http:     httpConf,
		Ctx:      c,
		Services: services,
	}
}

func (rt *Router) Router() *fiber.App {

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// panic recover
	app.Use(middleware.ExceptionMiddleware)

	// cors
	app.Use(middleware.CorsMiddleware())

	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware())
	}

	// unified response
	app.Use(middleware.UnifiedResponseMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey)

	api := app.Group(rt.Http.InternalContextPath)
	{
		rt.workspaceRouter(api, auth)
		rt.groupRouter(api, auth)
		rt.trackRouter(api, auth)
		rt.itemRouter(api, auth)
		rt.grantRouter(api, auth)
		rt.projectionRouter(api, auth)
		rt.resolveRouter(api, auth)
		rt.auditRouter(api, auth)
	}

	return app
}

// repErr 业务错误映射为响应码
func repErr(c *fiber.Ctx, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case errs.KindNotFound:
			return httpx.WithRepErrMsg(c, httpx.NotFound.Code, e.Msg, c.Path())
		case errs.KindValidation:
			return httpx.WithRepErrMsg(c, httpx.InvalidParameter.Code, e.Msg, c.Path())
		case errs.KindAuthorization:
			return httpx.WithRepErrMsg(c, httpx.PermissionDenied.Code, e.Msg, c.Path())
		case errs.KindConflict:
			if e.Existing != nil {
				// 冲突时返回已有记录，便于前端引导先撤销
				return httpx.WithRepErrDetail(c, httpx.GrantAlreadyExists.Code, e.Msg, e.Existing, c.Path())
			}
			return httpx.WithRepErrMsg(c, httpx.Conflict.Code, e.Msg, c.Path())
		}
	}
	return httpx.WithRepErrMsg(c, httpx.InternalError.Code, httpx.InternalError.Msg, c.Path())
}
