package backend

import (
	"net/http"

	"github.com/galecloud/gale/pkg/metrics"
	"github.com/labstack/echo/v4"
)

type statusDocument struct {
	ApplicationID      string  `json:"application_id"`
	ApplicationName    string  `json:"application_name"`
	RegisteredUnits    int64   `json:"registered_units"`
	ExpectedUnits      int     `json:"expected_units"`
	MinRegisteredRatio float64 `json:"min_registered_ratio"`
	Sufficient         bool    `json:"sufficient"`
	Ready              bool    `json:"ready"`
	Executors          int     `json:"executors"`
	StartedAtMs        int64   `json:"started_at_ms"`
}

type executorDocument struct {
	ID             string            `json:"id"`
	HostPort       string            `json:"host_port"`
	Units          int               `json:"units"`
	MemoryMB       int               `json:"memory_mb"`
	RegisteredAtMs int64             `json:"registered_at_ms"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

func NewHttpHandler(backend *StandaloneBackend, r *echo.Echo) {
	r.GET("/api/v1/status", func(c echo.Context) error {
		stats := backend.Statistics()

		return c.JSON(http.StatusOK, &statusDocument{
			ApplicationID:      stats.ApplicationID,
			ApplicationName:    backend.cfg.AppName,
			RegisteredUnits:    stats.RegisteredUnits,
			ExpectedUnits:      backend.cfg.ExpectedUnits(),
			MinRegisteredRatio: backend.cfg.MinRegisteredRatio,
			Sufficient:         backend.IsSufficient(),
			Ready:              backend.IsReady(),
			Executors:          stats.Executors,
			StartedAtMs:        stats.StartedAt.UnixMilli(),
		})
	})

	r.GET("/api/v1/executors", func(c echo.Context) error {
		executors := backend.Pool().Executors()

		documents := make([]*executorDocument, 0, len(executors))
		for _, executor := range executors {
			documents = append(documents, &executorDocument{
				ID:             executor.ID,
				HostPort:       executor.HostPort,
				Units:          executor.Units,
				MemoryMB:       executor.MemoryMB,
				RegisteredAtMs: executor.RegisteredAt.UnixMilli(),
				Attributes:     executor.Attributes,
			})
		}

		return c.JSON(http.StatusOK, documents)
	})

	r.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
