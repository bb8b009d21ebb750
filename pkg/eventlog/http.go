package eventlog

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
)

type journalDocument struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// NewHttpHandler mounts journal inspection routes on the router.
func NewHttpHandler(store *Store, r *echo.Echo) {
	r.GET("/api/v1/journals", func(c echo.Context) error {
		documents := []*journalDocument{}
		for _, journal := range store.Journals() {
			documents = append(documents, &journalDocument{
				Name:      journal.Name,
				SizeBytes: journal.Size,
			})
		}

		return c.JSON(http.StatusOK, documents)
	})

	r.GET("/api/v1/journals/:name", func(c echo.Context) error {
		reader, err := store.Open(c.Param("name"))
		if err != nil {
			return c.String(http.StatusNotFound, err.Error())
		}
		defer reader.Close()

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlain)
		c.Response().WriteHeader(http.StatusOK)
		writer := bufio.NewWriter(c.Response())

		for {
			event, err := reader.ReadEvent()
			if err == io.EOF {
				return writer.Flush()
			}

			if err != nil {
				return err
			}

			ts := event.Time.Local()
			line := fmt.Sprintf(
				"%s.%06d [%s] %s\n",
				ts.Format("2006-01-02 15:04:05"),
				ts.Nanosecond()/1000,
				event.Type,
				describeEvent(event))

			if _, err := writer.WriteString(line); err != nil {
				return err
			}

			writer.Flush()
		}
	})
}

func describeEvent(event *Event) string {
	details := []string{}

	if event.ApplicationID != "" {
		details = append(details, "app: "+event.ApplicationID)
	}
	if event.ExecutorID != "" {
		details = append(details, "id: "+event.ExecutorID)
	}
	if event.WorkerID != "" {
		details = append(details, "worker: "+event.WorkerID)
	}
	if event.HostPort != "" {
		details = append(details, "host: "+event.HostPort)
	}
	if event.Units != 0 {
		details = append(details, fmt.Sprintf("units: %d", event.Units))
	}
	if event.MemoryMB != 0 {
		details = append(details, fmt.Sprintf("memory: %d", event.MemoryMB))
	}
	if event.Reason != "" {
		details = append(details, "reason: "+event.Reason)
	}

	return strings.Join(details, ", ")
}
