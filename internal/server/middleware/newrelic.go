package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRelic wraps each routed request in a transaction named after the
// method and route template.
func NewRelic(app *newrelic.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if app == nil {
				next.ServeHTTP(w, r)
				return
			}

			txn := app.StartTransaction(r.Method + " " + routeTemplate(r))
			defer txn.End()
			w = txn.SetWebResponse(w)
			txn.SetWebRequestHTTP(r)
			r = newrelic.RequestWithTransactionContext(r, txn)
			next.ServeHTTP(w, r)
		})
	}
}
