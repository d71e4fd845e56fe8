package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/goto/metasearch/pkg/statsd"
)

// StatsD reports response time and status code of every routed request.
func StatsD(reporter *statsd.Reporter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if reporter == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := responseWriter(w)
			next.ServeHTTP(rw, r)

			reporter.Timing("responseTime", time.Since(start)).
				Tag("method", r.Method).
				Tag("route", routeTemplate(r)).
				Publish()
			reporter.Incr("responseStatusCode").
				Tag("method", r.Method).
				Tag("route", routeTemplate(r)).
				Tag("status", strconv.Itoa(rw.statusCode)).
				Publish()
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

func responseWriter(w http.ResponseWriter) *interceptedResponseWriter {
	return &interceptedResponseWriter{w, http.StatusOK}
}

type interceptedResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *interceptedResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
