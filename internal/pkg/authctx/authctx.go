package authctx

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

// Context is the authorization context for a single call: who is acting and
// under which company. It is decoded once from the verified token by the
// request middleware and passed explicitly into every service call, so the
// core itself holds no session state.
type Context struct {
	EmployeeID string
	CompanyID  string
	IsAdmin    bool
}

var ErrMissingClaims = errors.New("authorization claims are missing or invalid")

type ctxKey struct{}

// FromClaims builds an authorization context from verified JWT claims.
func FromClaims(claims map[string]interface{}) (Context, error) {
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Context{}, ErrMissingClaims
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Context{}, ErrMissingClaims
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return Context{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		IsAdmin:    isAdmin,
	}, nil
}

// FromRequestContext extracts the authorization context stored by the auth
// middleware, falling back to decoding jwtauth claims directly.
func FromRequestContext(ctx context.Context) (Context, error) {
	if actor, ok := ctx.Value(ctxKey{}).(Context); ok {
		return actor, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Context{}, ErrMissingClaims
	}
	return FromClaims(claims)
}

// WithContext stores the authorization context on the request context.
func WithContext(ctx context.Context, actor Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}
