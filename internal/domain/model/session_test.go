package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail_Table(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ann@example.com", true},
		{"a.b+c@sub.example.org", true},
		{"", false},
		{"ann@example", false},
		{"ann example@x.com", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), tt.in)
	}
}

func TestSession_Flags(t *testing.T) {
	var s Session
	assert.False(t, s.Authenticated())
	assert.False(t, s.HasAdmin())

	s = Session{UserToken: "u", AdminToken: "a", IsAdmin: true}
	assert.True(t, s.Authenticated())
	assert.True(t, s.HasAdmin())
	assert.NotContains(t, SessionKeys(), KeyLang)
}

func TestAgent_FullName_Cases(t *testing.T) {
	assert.Equal(t, "Ann Lee", Agent{FirstName: "Ann", LastName: "Lee"}.FullName())
	assert.Equal(t, "Ann", Agent{FirstName: "Ann"}.FullName())
	assert.Equal(t, "Lee", Agent{LastName: "Lee"}.FullName())
	assert.Empty(t, Agent{}.FullName())
}

func TestDetailedBusiness_CloneIsolatesPermissions(t *testing.T) {
	b := DetailedBusiness{ID: "b1", Permissions: []Permission{{ID: "p1", Name: PermissionKiosk}}}
	c := b.Clone()
	c.Permissions[0].Name = PermissionVend

	assert.Equal(t, PermissionKiosk, b.Permissions[0].Name)
	assert.True(t, b.HasPermission(PermissionKiosk))
	assert.Equal(t, []string{PermissionKiosk}, b.PermissionNames())
}

func TestJoinFailure(t *testing.T) {
	f := JoinFailure{BusinessID: "b1", Err: ErrNoPermissions}
	assert.True(t, errors.Is(f, ErrNoPermissions))
	text, err := f.MarshalText()
	assert.NoError(t, err)
	assert.Contains(t, string(text), "business b1")
	assert.True(t, AggregationResult{Failures: []JoinFailure{f}}.Partial())
}
