package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const sseKeepaliveInterval = 25 * time.Second

// StreamEvents holds the connection open and pushes change notifications for
// the authenticated user as server-sent events. The client re-fetches the
// affected collection when an event arrives.
func (handler *Handler) StreamEvents(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	subscriber := handler.hub.Subscribe(user.ID)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer handler.hub.Unsubscribe(subscriber)

		keepalive := time.NewTicker(sseKeepaliveInterval)
		defer keepalive.Stop()

		// Confirm the stream before the first change arrives.
		fmt.Fprint(w, "event: ready\ndata: {}\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case event, open := <-subscriber.Events():
				if !open {
					return
				}
				payload, err := json.Marshal(fiber.Map{
					"table":  event.Table,
					"action": event.Action,
					"id":     event.ID,
				})
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
