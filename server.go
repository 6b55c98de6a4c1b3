package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var hlog zerolog.Logger

func init() {
	hlog = log.With().Str("component", "server").Logger()
}

const (
	defaultWindow = 10
	maxWindow     = 1000
)

/////////////////////
// Response helpers

func RespondInternalServiceError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func RespondNotFoundError(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusNotFound)
	if body == "" {
		body = "Not found"
	}
	RespondText(w, body)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	RespondText(w, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusConflict)
	RespondText(w, message)
}

func RespondText(w http.ResponseWriter, body string) {
	w.Write([]byte(body))
}

func RespondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		RespondInternalServiceError(w, err)
	}
}

// RespondCommandError maps sequencer errors onto status codes.
func RespondCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, ErrEmptyPlaylist),
		errors.Is(err, ErrOutOfRange),
		errors.Is(err, ErrPlaylistDone):
		RespondConflict(w, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		RespondInternalServiceError(w, err)
	}
}

type BuildInfo struct {
	Version    string    `json:"version"`
	BuildTime  time.Time `json:"build_time"`
	CommitHash string    `json:"commit_hash"`
}

type PlaylistResponse struct {
	Entries []Entry `json:"entries"`
	Repeat  string  `json:"repeat"`
	Size    *int    `json:"size"`
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrValidation, key, raw)
	}
	return n, nil
}

func NewRouter(config *Config, buildInfo BuildInfo, sequencer *Sequencer, metrics *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware(&hlog))

	command := func(cmd Command) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if err := sequencer.Send(r.Context(), cmd, 0); err != nil {
				RespondCommandError(w, err)
				return
			}
			RespondJSON(w, sequencer.Snapshot())
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			RespondJSON(w, buildInfo)
		})

		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Cache-Control", "no-cache, no-store")
			RespondJSON(w, sequencer.Snapshot())
		})

		r.Get("/playlist", func(w http.ResponseWriter, r *http.Request) {
			resp := PlaylistResponse{
				Entries: sequencer.Playlist(),
				Repeat:  config.Repeat().String(),
			}
			if size, ok := sequencer.Size(); ok {
				resp.Size = &size
			}
			RespondJSON(w, resp)
		})

		r.Get("/window", func(w http.ResponseWriter, r *http.Request) {
			from, err := queryInt(r, "from", 0)
			if err != nil {
				RespondBadRequest(w, err.Error())
				return
			}
			count, err := queryInt(r, "count", defaultWindow)
			if err != nil {
				RespondBadRequest(w, err.Error())
				return
			}
			if count < 0 || count > maxWindow {
				RespondBadRequest(w, fmt.Sprintf("count must be between 0 and %d", maxWindow))
				return
			}

			RespondJSON(w, sequencer.Window(from, count))
		})

		r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
			RespondJSON(w, sequencer.History())
		})

		r.Post("/play", command(CommandPlay))
		r.Post("/stop", command(CommandStop))
		r.Post("/next", command(CommandNext))
		r.Post("/prev", command(CommandPrev))
		r.Post("/reset", command(CommandReset))

		r.Post("/jump/{offset}", func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "offset")
			offset, err := strconv.Atoi(raw)
			if err != nil {
				RespondBadRequest(w, fmt.Sprintf("offset must be an integer, got %q", raw))
				return
			}

			if err := sequencer.Send(r.Context(), CommandJump, offset); err != nil {
				RespondCommandError(w, err)
				return
			}
			RespondJSON(w, sequencer.Snapshot())
		})

		r.Get("/events", createWebsocketHandler(sequencer))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		RespondNotFoundError(w, "")
	})

	return r
}

// StartServer serves handler on the configured address until ctx is done.
func StartServer(ctx context.Context, config *Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              config.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		hlog.Info().Str("listen", srv.Addr).Msg("Launching server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hlog.Info().Msg("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
