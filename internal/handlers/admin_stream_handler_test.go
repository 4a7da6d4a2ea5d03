package handlers_test

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sonuarjun3120/krishpafoods/internal/events"
	"github.com/sonuarjun3120/krishpafoods/internal/handlers"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

type stubFeed struct {
	items chan events.FeedItem
}

func (s *stubFeed) Subscribe() (<-chan events.FeedItem, func()) {
	return s.items, func() {}
}

func TestAdminOrderStreamHandler(t *testing.T) {
	logger := logs.NewSlogLogger()

	t.Run("Streams Events Past The Server Write Timeout", func(t *testing.T) {
		feed := &stubFeed{items: make(chan events.FeedItem, 1)}
		handler := handlers.NewHandler(handlers.Config{Logger: logger})

		server := httptest.NewUnstartedServer(handler.AdminOrderStreamHandler(feed))
		server.Config.WriteTimeout = 100 * time.Millisecond
		server.Start()
		defer server.Close()

		resp, err := http.Get(server.URL)
		if err != nil {
			t.Fatalf("failed to open stream: %v", err)
		}
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		// Wait out the server's write deadline before pushing the event.
		time.Sleep(250 * time.Millisecond)
		feed.items <- events.FeedItem{
			Kind:    events.FeedPaymentConfirmed,
			Payload: events.PaymentConfirmedEvent{OrderID: "3f1a9c7e-42d5-4c0a-9b8f-6a2d1e0c5b4a"},
		}

		scanner := bufio.NewScanner(resp.Body)
		var eventLine string
		for scanner.Scan() {
			if strings.HasPrefix(scanner.Text(), "event: ") {
				eventLine = scanner.Text()
				break
			}
		}
		assert.Equal(t, "event: payment_confirmed", eventLine)

		if scanner.Scan() {
			assert.Contains(t, scanner.Text(), "3f1a9c7e-42d5-4c0a-9b8f-6a2d1e0c5b4a")
		} else {
			t.Fatal("stream closed before the event payload arrived")
		}

		close(feed.items)
	})

	t.Run("Subscriber Gets Released On Disconnect", func(t *testing.T) {
		feed := events.NewFeed(logger)
		handler := handlers.NewHandler(handlers.Config{Logger: logger})

		server := httptest.NewServer(handler.AdminOrderStreamHandler(feed))
		defer server.Close()

		resp, err := http.Get(server.URL)
		if err != nil {
			t.Fatalf("failed to open stream: %v", err)
		}
		resp.Body.Close()
	})
}
