package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// createWebsocketHandler streams sequencer events as JSON text messages. The
// kinds query parameter narrows the stream, e.g. ?kinds=lap,state.
func createWebsocketHandler(sequencer *Sequencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kinds, err := ParseEventKinds(r.URL.Query().Get("kinds"))
		if err != nil {
			RespondBadRequest(w, err.Error())
			return
		}

		// Subscribe before the handshake completes so that no event sent
		// after the client connects is missed.
		unsub, ch := sequencer.Subscribe(kinds)
		defer unsub()

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("websocket upgrade failed: %s", err), http.StatusInternalServerError)
			return
		}
		defer c.Close(websocket.StatusInternalError, "event stream ended")

		// Clients only listen; CloseRead handles their pings and close frames.
		ctx := c.CloseRead(r.Context())
		hlog.Debug().Strs("kinds", EventKindNames(kinds)).Msg("Event stream opened")

		for {
			select {
			case <-ctx.Done():
				hlog.Debug().Msg("Event stream closed")
				c.Close(websocket.StatusNormalClosure, "")
				return
			case e, ok := <-ch:
				if !ok {
					c.Close(websocket.StatusGoingAway, "unsubscribed")
					return
				}
				js, err := json.Marshal(e)
				if err != nil {
					hlog.Err(err).Msg("Failed to marshal event payload for websocket")
					continue
				}
				if err := writeTimeout(ctx, 5*time.Second, c, js); err != nil {
					if !errors.Is(err, context.Canceled) {
						hlog.Warn().Err(err).Msg("Event stream write failed")
					}
					return
				}
			}
		}
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.Write(ctx, websocket.MessageText, msg)
}
