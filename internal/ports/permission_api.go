// Package ports defines interfaces (hexagonal ports) the console core depends on.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.
package ports

import (
	"context"
	"fmt"

	"github.com/pmsadmin/console/internal/domain/model"
)

// APIError is the cause carried by upstream errors: the permission API answered, but not with
// status_code 200. Message is empty when the body had no usable message.
type APIError struct {
	Endpoint   string
	HTTPStatus int
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
}

// AddPermissionInput groups parameters for granting a permission to a business.
type AddPermissionInput struct {
	AdminToken string
	BusinessID string
	Permission model.PermissionInput
}

// UpdatePermissionInput groups parameters for editing an existing permission.
type UpdatePermissionInput struct {
	AdminToken   string
	PermissionID string
	Updates      model.PermissionInput
}

// AgentInput identifies an agent association on a business. Credential is the admin credential
// of the calling session; AgentID or Email is set depending on the operation.
type AgentInput struct {
	Credential string
	BusinessID string
	AgentID    string
	Email      string
}

// PermissionAPI is the remote permission-management service.
// Every method returns an error whose code distinguishes API-reported failures (upstream)
// from transport failures (unavailable).
type PermissionAPI interface {
	// Login exchanges credentials for a user session token.
	Login(ctx context.Context, email, password string) (string, error)

	// ListBusinesses returns the businesses owned by the user holding userToken.
	ListBusinesses(ctx context.Context, userToken string) ([]model.Business, error)

	// SearchBusinesses returns every business visible to the bearer credential.
	SearchBusinesses(ctx context.Context, bearer string) ([]model.Business, error)

	// GetBusinessPermissions returns the permissions of one business in server order.
	GetBusinessPermissions(ctx context.Context, bearer, businessID string) ([]model.Permission, error)

	AddPermission(ctx context.Context, in AddPermissionInput) error
	UpdatePermission(ctx context.Context, in UpdatePermissionInput) error
	DeletePermission(ctx context.Context, adminToken, permissionID string) error

	// ListAgentBusinesses returns the businesses the agent holding userToken may manage.
	ListAgentBusinesses(ctx context.Context, userToken string) ([]model.AgentBusiness, error)

	// SearchAgentBusinesses returns the businesses delegated to the agent with the given email.
	SearchAgentBusinesses(ctx context.Context, credential, email string) ([]model.DetailedBusiness, error)

	AddAgent(ctx context.Context, in AgentInput) error
	ListBusinessAgents(ctx context.Context, credential, businessID string) ([]model.Agent, error)
	RemoveAgent(ctx context.Context, in AgentInput) error
}
