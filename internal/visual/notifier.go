// Package visual is the one-way port to the external city-image pipeline.
// Notifications are best-effort: results are never awaited and failures are
// logged, never surfaced to the simulation.
package visual

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/talgya/metropolis/internal/city"
)

// Descriptor is the city summary handed to the image pipeline.
type Descriptor struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Population     int64        `json:"population"`
	Climate        city.Climate `json:"climate"`
	Terrain        city.Terrain `json:"terrain"`
	Founded        time.Time    `json:"founded"`
	EconomicOutput float64      `json:"economic_output"`
}

// Notifier queues a render request. Implementations must not block the
// caller beyond building the request.
type Notifier interface {
	Notify(d Descriptor, priority string)
}

// Nop discards all notifications. Used in tests and headless runs.
type Nop struct{}

func (Nop) Notify(Descriptor, string) {}

// HTTP posts render requests to the visual pipeline, fire-and-forget.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP creates a notifier for the pipeline at url.
func NewHTTP(url string) *HTTP {
	return &HTTP{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Notify queues the request on a goroutine and returns immediately.
func (h *HTTP) Notify(d Descriptor, priority string) {
	go func() {
		payload := struct {
			City     Descriptor `json:"city"`
			Priority string     `json:"priority"`
		}{d, priority}

		body, err := json.Marshal(payload)
		if err != nil {
			slog.Warn("visual notify marshal failed", "city", d.Name, "error", err)
			return
		}

		resp, err := h.Client.Post(h.URL, "application/json", bytes.NewReader(body))
		if err != nil {
			slog.Warn("visual notify failed", "city", d.Name, "error", err)
			return
		}
		resp.Body.Close()
	}()
}
