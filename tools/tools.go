//go:build tools

// Package tools documents development tool dependencies.
// They are installed with `go install` and are not tracked in go.mod.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks from the port interfaces
//   Run: go generate ./internal/mocks (pins go.uber.org/mock/mockgen@v0.6.0)
//
// golangci-lint - linters referenced by the nolint directives in the tree
//   Install: go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest
