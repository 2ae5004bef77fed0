package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spachava753/contactsbridge/android/provider"
	"github.com/spachava753/contactsbridge/channel"
	"github.com/spachava753/contactsbridge/config"
)

// maxBodyBytes caps request bodies; avatars travel base64-encoded inside them.
const maxBodyBytes = 32 << 20

// Invoker runs method calls. *channel.Dispatcher implements it.
type Invoker interface {
	Invoke(ctx context.Context, call channel.MethodCall) (any, error)
}

// ResponsePayload is the body of every response.
type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type handler struct {
	invoker Invoker
	log     *zap.SugaredLogger
}

// NewRouter returns the HTTP routes over invoker.
func NewRouter(invoker Invoker, log *zap.SugaredLogger) *mux.Router {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	h := &handler{invoker: invoker, log: log}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware(log))
	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := router.PathPrefix("/v1").Subrouter()
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/channel/{method}", h.invoke).Methods(http.MethodPost)
	return router
}

// Start serves the routes over invoker on cfg.Addr until ctx is done, then
// shuts down within cfg.ShutdownTimeout.
func Start(ctx context.Context, cfg config.Server, invoker Invoker, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(invoker, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("contactsbridge is listening on %s...", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server: shutdown")
	}
	return nil
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeResponse(w, ResponsePayload{Success: true, Data: "ok"}, http.StatusOK)
}

func (h *handler) invoke(w http.ResponseWriter, r *http.Request) {
	method := mux.Vars(r)["method"]

	args, err := decodeArguments(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeResponse(w, ResponsePayload{Errors: []string{err.Error()}}, http.StatusBadRequest)
		return
	}

	result, err := h.invoker.Invoke(r.Context(), channel.MethodCall{Method: method, Arguments: args})
	if err != nil {
		h.writeResponse(w, ResponsePayload{Errors: []string{err.Error()}}, statusFor(err))
		return
	}
	h.writeResponse(w, ResponsePayload{Success: true, Data: result}, http.StatusOK)
}

func decodeArguments(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "reading request body")
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, errors.Wrap(err, "request body must be a JSON object")
	}
	return args, nil
}

func statusFor(err error) int {
	var chErr *channel.Error
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, channel.ErrNotImplemented):
		return http.StatusNotFound
	case errors.Is(err, channel.ErrQueueFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &chErr) && chErr.Code == channel.ErrorCodeInvalidArguments:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeResponse(w http.ResponseWriter, payload ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		h.log.Error(payload.Errors)
	} else if statusCode >= http.StatusBadRequest {
		h.log.Info(payload.Errors)
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Warnw("could not write response", "error", err)
	}
}
