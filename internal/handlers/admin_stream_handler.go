package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sonuarjun3120/krishpafoods/internal/events"
)

// OrderFeed is the live event source behind the admin order stream.
type OrderFeed interface {
	Subscribe() (<-chan events.FeedItem, func())
}

// AdminOrderStreamHandler pushes order events to the back office over
// server-sent events, replacing page polling.
func (h *Handler) AdminOrderStreamHandler(feed OrderFeed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		// The stream outlives the server's write timeout, so lift the
		// deadline for this response only.
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			h.logger.Warn("failed to clear write deadline for order stream", "error", err)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		items, cancel := feed.Subscribe()
		defer cancel()

		for {
			select {
			case <-r.Context().Done():
				return
			case item, ok := <-items:
				if !ok {
					return
				}
				payload, err := json.Marshal(item.Payload)
				if err != nil {
					h.logger.Error("failed to encode feed event", "kind", item.Kind, "error", err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", item.Kind, payload)
				flusher.Flush()
			}
		}
	}
}
