package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"vehicledebts/internal/quota"
	"vehicledebts/pkg/logger"
	"vehicledebts/validation"
)

// CheckQuota counts every request against the caller's IP. A nil service
// disables the check, and a failing store lets the request through.
func CheckQuota(service quota.InterfaceService, log *logger.Logger) echo.MiddlewareFunc {
	return func(handlerFunc echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if service == nil {
				return handlerFunc(c)
			}

			ip := c.RealIP()
			if !validation.IsValidIP(ip) {
				return c.JSON(http.StatusBadRequest, "IP inválido")
			}

			usage, err := service.Consume(c.Request().Context(), ip)
			if err != nil && !errors.Is(err, quota.ErrQuotaExceeded) {
				log.Error("failed to check quota", "ip", ip, "error", err)
				return handlerFunc(c)
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.FormatInt(usage.Limit, 10))
			header.Set("X-RateLimit-Remaining", strconv.FormatInt(usage.Remaining, 10))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(usage.ResetAt.Unix(), 10))

			if err != nil {
				retryAfter := int64(time.Until(usage.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				header.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
				return c.JSON(http.StatusTooManyRequests, quota.ExceededResponse{
					Error:      "quota_exceeded",
					Message:    err.Error(),
					RetryAfter: retryAfter,
				})
			}

			return handlerFunc(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(handlerFunc echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := handlerFunc(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			log.Info("request",
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", c.Path(),
				"status", res.Status,
				"ip", c.RealIP(),
				"duration", time.Since(start).String(),
			)
			return nil
		}
	}
}
