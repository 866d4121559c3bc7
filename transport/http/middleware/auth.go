package middleware

import (
	"bistro/config"
	"bistro/infras/jwt"
	"bistro/infras/otel"
	"bistro/permissions"
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"
	"bistro/transport/http/response"
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuth = SkipAuthKey("skip")

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole is the guard chain mounted in front of the versioned API: APIKey, then Auth,
// then RBAC.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// tokenErrors maps token validation failures to the message sent back.
var tokenErrors = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidToken, "Invalid token"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
}

func tokenMessage(err error) string {
	for _, known := range tokenErrors {
		if errors.Is(err, known.err) {
			return known.message
		}
	}

	return "Token validation failed"
}

// routePattern resolves the registered pattern for the request, "" when nothing matches.
// Subrouter roots resolve with a trailing slash, which is dropped.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return constant.Empty
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if len(pattern) > 1 {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	return pattern
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuth).(bool)

	return skip
}

func reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

// authenticate turns the bearer token into a session.
func (m *authRoleImpl) authenticate(ctx context.Context, header string) (session.Session, string, error) {
	if header == constant.Empty {
		return session.Session{}, "", failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return session.Session{}, "", failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
	if err != nil {
		return session.Session{}, "", failure.Unauthorized(tokenMessage(err))
	}

	sess := session.Session{UserID: claims.UserID, Login: claims.Login, Name: claims.Name, Role: claims.Role}
	if !sess.Valid() {
		log.Warn().Str("user_id", claims.UserID).Msg("token carries an incomplete session")

		return session.Session{}, "", failure.Unauthorized("Invalid token claims")
	}

	return sess, claims.TokenID, nil
}

// Auth attaches the session of a valid access token. Routes marked skip in the permission
// table, and paths no route matches, pass through untouched.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		path := routePattern(request)
		if path == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission != nil {
			if rule, found := m.permission.FindPermissions(path, request.Method); found && rule.Skip {
				next.ServeHTTP(writer, request)

				return
			}
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		sess, tokenID, err := m.authenticate(ctx, request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			reject(writer, scope, err)

			return
		}

		ctx = session.WithContext(ctx, sess)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, tokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the session role against the capability the route requires. It runs after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		path := routePattern(request)
		if m.permission.Skip || path == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		sess, _ := session.FromContext(ctx)
		if !m.permission.Authorize(sess.Role, path, request.Method) {
			scope.SetAttributes(map[string]any{
				"user_role": sess.Role,
				"http.path": path,
				"reason":    "capability_not_granted",
			})
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers in with the shared key. A valid key runs the request as the
// system administrator and bypasses the token check; a wrong key is refused outright.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, skipAuth, false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == constant.Empty || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			reject(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, skipAuth, true)
		ctx = session.WithContext(ctx, session.Session{
			UserID: constant.SystemUser,
			Login:  constant.SystemUser,
			Name:   constant.SystemUser,
			Role:   constant.RoleAdmin,
		})

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
