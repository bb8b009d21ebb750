package main

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/galecloud/gale/pkg/backend"
	"github.com/galecloud/gale/pkg/eventlog"
	"github.com/galecloud/gale/pkg/log"
	"github.com/galecloud/gale/pkg/utils"
	"github.com/labstack/echo/v4"
)

// Listens on a single address and serves the driver's HTTP API on it.
func serveHttp(b *backend.StandaloneBackend, store *eventlog.Store, uri string) error {
	host, err := utils.ParseHttpUrl(uri)
	if err != nil {
		return err
	}

	log.Info("Listening on http", host)

	r := echo.New()
	r.HideBanner = true
	r.Use(utils.HttpLogger)
	r.Add(echo.GET, "/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))

	backend.NewHttpHandler(b, r)
	eventlog.NewHttpHandler(store, r)

	return r.Start(host)
}
