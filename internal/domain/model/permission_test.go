package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      PermissionInput
		wantErr string
	}{
		{name: "valid", in: PermissionInput{Name: "kiosk", Level: "2", Expire: "2026-12-31"}},
		{name: "missing name", in: PermissionInput{Level: "1", Expire: "2026-12-31"}, wantErr: "select a permission type"},
		{name: "unknown name", in: PermissionInput{Name: "pos", Level: "1", Expire: "2026-12-31"}, wantErr: "must be one of"},
		{name: "level too high", in: PermissionInput{Name: "vend", Level: "4", Expire: "2026-12-31"}, wantErr: "level"},
		{name: "level not numeric", in: PermissionInput{Name: "vend", Level: "x", Expire: "2026-12-31"}, wantErr: "level"},
		{name: "bad expire", in: PermissionInput{Name: "kds", Level: "3", Expire: "31/12/2026"}, wantErr: "expire"},
		{name: "rfc3339 expire", in: PermissionInput{Name: "kds", Level: "3", Expire: "2026-12-31T00:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPermissionInput_Normalize(t *testing.T) {
	in := PermissionInput{Name: "  KIOSK ", Expire: " 2026-01-01 "}
	in.Normalize()
	assert.Equal(t, "kiosk", in.Name)
	assert.Equal(t, "1", in.Level)
	assert.Equal(t, "2026-01-01", in.Expire)
}

func TestPermission_Expired(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, Permission{Expire: "2026-05-31"}.Expired(now))
	assert.False(t, Permission{Expire: "2026-06-02"}.Expired(now))
	assert.False(t, Permission{Expire: "never"}.Expired(now))
}

func TestDetailedBusiness_PermissionNames(t *testing.T) {
	b := DetailedBusiness{Permissions: []Permission{{Name: "vend"}, {Name: "kds"}}}
	assert.Equal(t, []string{"vend", "kds"}, b.PermissionNames())
	assert.True(t, b.HasPermission("kds"))
	assert.False(t, b.HasPermission("kiosk"))

	clone := b.Clone()
	clone.Permissions[0].Name = "changed"
	assert.Equal(t, "vend", b.Permissions[0].Name)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("admin@example.com"))
	assert.False(t, ValidEmail("admin@example"))
	assert.False(t, ValidEmail("ad min@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestAgent_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Agent{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Agent{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", Agent{LastName: "Lovelace"}.FullName())
}
