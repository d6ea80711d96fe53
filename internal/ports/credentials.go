package ports

import "context"

// AdminCredentialSource issues the credential an admin session uses for admin-only endpoints.
type AdminCredentialSource interface {
	AdminCredential(ctx context.Context, email string) (string, error)
}
