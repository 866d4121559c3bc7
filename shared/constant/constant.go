// Package constant holds names shared across layers: roles, headers, query parameters,
// audit columns, formats and trace scopes.
package constant

import "time"

type contextKey string

const (
	ContextKeySession contextKey = "session"
	ContextKeyTokenID contextKey = "token_id"
)

// Roles, as stored in roles.name and carried in tokens.
const (
	RoleAdmin  = "admin"
	RoleWaiter = "waiter"
	RoleClient = "client"
)

// Role ids match the rows seeded by the users migration.
const (
	RoleIDAdmin  = 1
	RoleIDWaiter = 2
	RoleIDClient = 3
)

// Actors recorded in created_by/modified_by when no user is signed in.
const (
	ContextGuest = "guest"
	SystemUser   = "system"
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	RequestParamID      = "id"
	RequestParamDishID  = "dish_id"
	RequestParamMonth   = "month"
	RequestParamYear    = "year"
	RequestParamFrom    = "from"
	RequestParamTo      = "to"
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
	ClockFormat    = "15:04"
)

const (
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderUserAgent          = "User-Agent"

	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "server is shutting down"
	ResponseErrorUnhealthy            = "server is unhealthy"
	ResponseErrorRequestLimitExceeded = "too many requests"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

// Tracer names per layer; spans are named "<scope>.<entity>.<operation>".
const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"
	OtelQueryAttributeKey   = "query"
)

const (
	Asterix = "*"
	Empty   = ""
)
