package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/geofence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired verifies the access token and stores the decoded authorization
// context on the request context, so handlers and services read claims exactly
// once.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			actor, err := authctx.FromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithContext(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}
