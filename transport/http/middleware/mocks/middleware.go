package mocks

import (
	"net/http"

	"studio/infras/jwt"
	"studio/shared/constant"
	"studio/transport/http/middleware"
	"studio/transport/http/response"
)

const AdminEmail = "admin@example.com"

// NewAuth lets through requests that carry any Authorization header, as AdminEmail.
func NewAuth() middleware.Auth {
	return &authImpl{}
}

type authImpl struct{}

func (a *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get(constant.RequestHeaderAuthorization) == "" {
			response.WithMessage(writer, http.StatusUnauthorized, "No token provided")

			return
		}

		claims := &jwt.Claims{AdminID: "admin-1", Email: AdminEmail}

		next.ServeHTTP(writer, request.WithContext(jwt.WithClaims(request.Context(), claims)))
	})
}

// NewAppMiddleware passes every request through untouched.
func NewAppMiddleware() middleware.AppMiddleware {
	return &appImpl{}
}

type appImpl struct{}

func (a *appImpl) Tracing(next http.Handler) http.Handler   { return next }
func (a *appImpl) BaseURL(next http.Handler) http.Handler   { return next }
func (a *appImpl) RateLimit(next http.Handler) http.Handler { return next }
