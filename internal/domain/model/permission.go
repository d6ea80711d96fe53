//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ExpireLayout is the date format used for permission expiry.
const ExpireLayout = "2006-01-02"

// Permission names understood by the permission API.
const (
	PermissionKiosk      = "kiosk"
	PermissionVend       = "vend"
	PermissionOnlineShop = "onlineshop"
	PermissionKDS        = "kds"
)

// Permission levels.
const (
	PermissionLevelMin = 1
	PermissionLevelMax = 3
)

// PermissionVocabulary returns the fixed set of grantable permission names in display order.
func PermissionVocabulary() []string {
	return []string{PermissionKiosk, PermissionVend, PermissionOnlineShop, PermissionKDS}
}

// IsKnownPermission reports whether name belongs to the permission vocabulary.
func IsKnownPermission(name string) bool {
	return slices.Contains(PermissionVocabulary(), name)
}

// Permission is a named, leveled, time-bounded grant scoped to one business.
// BusinessName and OwnerID are denormalized copies some endpoints include.
type Permission struct {
	ID           string `json:"_id"`
	BusinessID   string `json:"business_id"`
	Name         string `json:"name"`
	Level        string `json:"level"`
	Expire       string `json:"expire"`
	BusinessName string `json:"business_name,omitempty"`
	OwnerID      string `json:"owner_id,omitempty"`
}

// ExpiresAt parses Expire. Values carrying a time component are accepted as RFC 3339.
func (p Permission) ExpiresAt() (time.Time, error) {
	return parseExpire(p.Expire)
}

// Expired reports whether the permission expired before now. Unparseable dates count as not expired.
func (p Permission) Expired(now time.Time) bool {
	t, err := p.ExpiresAt()
	if err != nil {
		return false
	}
	return t.Before(now)
}

// PermissionInput carries the editable fields of a permission.
type PermissionInput struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Expire string `json:"expire"`
}

// Normalize trims whitespace and defaults level to "1".
func (in *PermissionInput) Normalize() {
	in.Name = strings.ToLower(strings.TrimSpace(in.Name))
	in.Level = strings.TrimSpace(in.Level)
	in.Expire = strings.TrimSpace(in.Expire)
	if in.Level == "" {
		in.Level = "1"
	}
}

// Validate checks the input against the vocabulary, level range and expiry format.
// The returned error names the offending field as "<field>: <reason>".
func (in PermissionInput) Validate() error {
	if in.Name == "" {
		return ErrPermissionNameRequired
	}
	if !IsKnownPermission(in.Name) {
		return fmt.Errorf("name: must be one of: %s", strings.Join(PermissionVocabulary(), ", "))
	}
	if !validLevel(in.Level) {
		return fmt.Errorf("level: must be between %d and %d", PermissionLevelMin, PermissionLevelMax)
	}
	if _, err := parseExpire(in.Expire); err != nil {
		return errors.New("expire: must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ErrPermissionNameRequired is returned when no permission type was selected.
var ErrPermissionNameRequired = errors.New("name: please select a permission type")

func validLevel(level string) bool {
	if len(level) != 1 {
		return false
	}
	n := int(level[0] - '0')
	return n >= PermissionLevelMin && n <= PermissionLevelMax
}

func parseExpire(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(ExpireLayout, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
