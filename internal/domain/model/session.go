//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "regexp"

// Persisted session keys. Values are plain strings in the scoped key-value store.
const (
	KeyUserToken  = "token"
	KeyUserEmail  = "userEmail"
	KeyAdminToken = "adminToken"
	KeyIsAdmin    = "isAdmin"
	KeyLang       = "lang"
)

// SessionKeys lists the keys cleared on logout.
func SessionKeys() []string {
	return []string{KeyUserToken, KeyUserEmail, KeyAdminToken, KeyIsAdmin}
}

// Session is the authentication state of one console user.
type Session struct {
	UserToken  string `json:"-"`
	AdminToken string `json:"-"`
	UserEmail  string `json:"email,omitempty"`
	IsAdmin    bool   `json:"is_admin"`
}

// Authenticated reports whether a user token is present.
func (s Session) Authenticated() bool { return s.UserToken != "" }

// HasAdmin reports whether an admin credential is present.
func (s Session) HasAdmin() bool { return s.AdminToken != "" }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether v looks like an email address.
func ValidEmail(v string) bool {
	return emailPattern.MatchString(v)
}
