package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id of each request, generated when absent.
const RequestIDHeader = "X-Request-Id"

var (
	redColor    = color.New(color.FgRed).SprintFunc()
	yellowColor = color.New(color.FgYellow).SprintFunc()
	greenColor  = color.New(color.FgGreen).SprintFunc()
)

// ResponseWriterWithStatus records the status code written through it.
type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

// WriteHeader records status and forwards it.
func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			responseWriter := &ResponseWriterWithStatus{
				ResponseWriter: w,
				Status:         http.StatusOK,
			}

			defer func() {
				responseStatus := greenColor(responseWriter.Status)
				if responseWriter.Status >= http.StatusBadRequest {
					responseStatus = redColor(responseWriter.Status)
				}

				log.Info(
					r.Method, " ",
					r.RequestURI, " ",
					responseStatus, " ",
					yellowColor(fmt.Sprintf("[%v]", time.Since(start))), " ",
					w.Header().Get(RequestIDHeader))
			}()

			next.ServeHTTP(responseWriter, r)
		})
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
