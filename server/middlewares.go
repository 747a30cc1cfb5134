package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Daskott/people/colors"
	"github.com/Daskott/people/shared"
	"github.com/google/uuid"
)

type RequestContextKey string

const requestIDKey = RequestContextKey("requestID")

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         200,
		}

		defer func() {
			logg.Info(
				r.Method, " ",
				r.RequestURI, " ",
				colors.Status(responseWriter.Status), " ",
				colors.Blue(fmt.Sprintf("[%v]", time.Since(start))), " ",
				colors.Blue(requestID(r.Context())))
		}()

		next.ServeHTTP(responseWriter, r)
	})
}

// initialContextMiddleware tags each request with an id, echoed back in X-Request-ID
func initialContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		w.Header().Add("Content-Type", "application/json")

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logg.Errorf("panic serving %v %v: %v", r.Method, r.RequestURI, rec)
				writeError(w, shared.MSG_UNKNOWN_ERROR, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
