//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
)

// ErrNoPermissions is reported when an agent business has no permissions and no canonical name.
var ErrNoPermissions = errors.New("business has no permissions to derive name and owner from")

// ErrInconsistentBusiness is reported when permission records disagree about their business.
var ErrInconsistentBusiness = errors.New("permission records disagree on business name or owner")

// ErrUnnamedBusiness is reported when an agent business has permissions but none carries its name.
var ErrUnnamedBusiness = errors.New("no record supplies the business name")

// JoinFailure records why one business was left out of an aggregated list.
type JoinFailure struct {
	BusinessID string
	Err        error
}

// Error implements error.
func (f JoinFailure) Error() string {
	return fmt.Sprintf("business %s: %v", f.BusinessID, f.Err)
}

// Unwrap exposes the underlying cause.
func (f JoinFailure) Unwrap() error { return f.Err }

// MarshalText renders the failure for JSON responses.
func (f JoinFailure) MarshalText() ([]byte, error) {
	return []byte(f.Error()), nil
}

// AggregationResult is the outcome of a list-then-fan-out join.
// Businesses holds the successful joins in listing order; Failures the rest.
type AggregationResult struct {
	Businesses []DetailedBusiness `json:"businesses"`
	Failures   []JoinFailure      `json:"partial_failures,omitempty"`
}

// Partial reports whether at least one business was dropped.
func (r AggregationResult) Partial() bool { return len(r.Failures) > 0 }
