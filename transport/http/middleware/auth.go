package middleware

import (
	"errors"
	"net/http"

	"studio/infras/jwt"
	"studio/infras/otel"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/transport/http/response"
)

// Auth guards admin routes with a bearer token.
type Auth interface {
	Auth(next http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// Auth rejects the request with 401 unless it carries a valid token, and puts the admin identity on the context.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			fail := failure.ErrInvalidToken
			if errors.Is(err, jwt.ErrMissingHeader) {
				fail = failure.ErrMissingToken
			}

			scope.TraceError(err)
			scope.End()

			response.WithError(writer, fail, "")

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString)
		if err != nil {
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, failure.ErrInvalidToken, "")

			return
		}

		scope.SetAttribute("admin.id", claims.AdminID)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(jwt.WithClaims(request.Context(), claims)))
	})
}
