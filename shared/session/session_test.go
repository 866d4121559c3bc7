package session_test

import (
	"context"
	"testing"

	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/session"

	"github.com/stretchr/testify/assert"
)

func TestSession_Roles(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		admin  bool
		waiter bool
		client bool
		staff  bool
	}{
		{name: "admin", role: constant.RoleAdmin, admin: true, staff: true},
		{name: "waiter", role: constant.RoleWaiter, waiter: true, staff: true},
		{name: "client", role: constant.RoleClient, client: true},
		{name: "unknown", role: "chef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.Session{UserID: "u-1", Role: tt.role}

			assert.Equal(t, tt.admin, sess.IsAdmin())
			assert.Equal(t, tt.waiter, sess.IsWaiter())
			assert.Equal(t, tt.client, sess.IsClient())
			assert.Equal(t, tt.staff, sess.IsStaff())
		})
	}
}

func TestFromContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	ctx := session.WithContext(context.Background(), session.Session{UserID: "u-1", Name: "Anna", Role: constant.RoleWaiter})
	sess, ok := session.FromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, "Anna", sess.Name)

	ctx = session.WithContext(context.Background(), session.Session{Name: "nobody"})
	_, ok = session.FromContext(ctx)

	assert.False(t, ok)
}

func TestRequire(t *testing.T) {
	_, err := session.Require(context.Background())
	assert.True(t, failure.Is(err, failure.KindUnauthorized))

	ctx := session.WithContext(context.Background(), session.Session{UserID: "u-1", Role: constant.RoleClient})
	sess, err := session.Require(ctx)

	assert.NoError(t, err)
	assert.True(t, sess.IsClient())
}
