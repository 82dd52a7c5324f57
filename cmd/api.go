package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vehicledebts/infra"
	_midlleware "vehicledebts/infra/middleware"
)

func NewServer(container *infra.ContainerDI) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(_midlleware.RequestLogger(container.Logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/debts", container.HandlerDebts.SearchDebts, _midlleware.CheckQuota(container.ServiceQuota, container.Logger))

	return e
}

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := NewServer(container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			container.Logger.Error("server shutdown failed", "error", err)
		}
	}()

	container.Logger.Info("starting server", "port", container.Config.ServerPort)
	if err := e.Start(container.Config.ServerPort); err != nil && err != http.ErrServerClosed {
		container.Logger.Fatal("server stopped", "error", err)
	}
}
