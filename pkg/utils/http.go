package utils

import (
	"github.com/galecloud/gale/pkg/log"
	"github.com/labstack/echo/v4"
)

// HttpLogger is an echo middleware that traces every request with its
// response status.
func HttpLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		log.Tracef("%s %s - %d", c.Request().Method, c.Request().URL, c.Response().Status)
		return err
	}
}
