package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/geofence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := authctx.FromRequestContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !actor.IsAdmin {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
