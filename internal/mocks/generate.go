// Package mocks provides mock implementations of the console's ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockPermissionAPI(ctrl)
//	api.EXPECT().Login(gomock.Any(), "a@b.co", "pw").Return("tok", nil)
package mocks

// Remote permission API client:
// Login, ListBusinesses, SearchBusinesses, GetBusinessPermissions, Add/Update/DeletePermission,
// ListAgentBusinesses, SearchAgentBusinesses, AddAgent, ListBusinessAgents, RemoveAgent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=permission_api_mock.go github.com/pmsadmin/console/internal/ports PermissionAPI

// Scoped session persistence: Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=key_value_store_mock.go github.com/pmsadmin/console/internal/ports KeyValueStore

// Admin credential issuance: AdminCredential
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_credential_source_mock.go github.com/pmsadmin/console/internal/ports AdminCredentialSource
