// Package session carries the authenticated identity of a request.
//
// A Session is built once by the auth middleware from the access token and handed to
// services as an explicit argument. Nothing in the process keeps a "current user".
package session

import (
	"context"

	"bistro/shared/constant"
	"bistro/shared/failure"
)

type Session struct {
	UserID string `json:"user_id"`
	Login  string `json:"login"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (s Session) IsAdmin() bool {
	return s.Role == constant.RoleAdmin
}

func (s Session) IsWaiter() bool {
	return s.Role == constant.RoleWaiter
}

func (s Session) IsClient() bool {
	return s.Role == constant.RoleClient
}

// IsStaff reports whether the session belongs to an admin or a waiter.
func (s Session) IsStaff() bool {
	return s.IsAdmin() || s.IsWaiter()
}

func (s Session) Valid() bool {
	return s.UserID != "" && s.Role != ""
}

func WithContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, constant.ContextKeySession, sess)
}

// FromContext returns the session stored by the auth middleware.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(constant.ContextKeySession).(Session)

	return sess, ok && sess.Valid()
}

// Require is FromContext for handlers behind the auth middleware.
func Require(ctx context.Context) (Session, error) {
	sess, ok := FromContext(ctx)
	if !ok {
		return sess, failure.Unauthorized("authentication required")
	}

	return sess, nil
}
