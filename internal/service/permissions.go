package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
)

// PermissionServiceOptions groups dependencies for PermissionService.
type PermissionServiceOptions struct {
	API    ports.PermissionAPI
	Store  *Store
	Logger *slog.Logger
}

// PermissionService validates and applies permission changes, then refreshes the admin list.
type PermissionService struct {
	api    ports.PermissionAPI
	store  *Store
	logger *slog.Logger
}

// NewPermissionService constructs a new PermissionService.
func NewPermissionService(opts PermissionServiceOptions) *PermissionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionService{
		api:    opts.API,
		store:  opts.Store,
		logger: logger.With("component", "permissions"),
	}
}

// AvailableNames returns the vocabulary minus the names already in existing, in vocabulary order.
func (s *PermissionService) AvailableNames(existing []string) []string {
	out := make([]string, 0, len(model.PermissionVocabulary()))
	for _, name := range model.PermissionVocabulary() {
		if !slices.Contains(existing, name) {
			out = append(out, name)
		}
	}
	return out
}

// AvailableNamesFor returns the permission names still grantable to a cached business.
func (s *PermissionService) AvailableNamesFor(ctx context.Context, businessID string) ([]string, error) {
	b, err := s.cachedBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return s.AvailableNames(b.PermissionNames()), nil
}

// Add grants a permission to a business. A name the business already holds is rejected
// without calling the API. The admin list is re-fetched after a successful grant.
func (s *PermissionService) Add(ctx context.Context, businessID string, in model.PermissionInput) error {
	adminToken, err := s.store.AdminToken()
	if err != nil {
		return err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return validationError(err)
	}

	b, err := s.cachedBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if b.HasPermission(in.Name) {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeConflict,
			Message: "This permission type already exists",
			Field:   "name",
		}
	}

	if err := s.api.AddPermission(ctx, ports.AddPermissionInput{
		AdminToken: adminToken,
		BusinessID: businessID,
		Permission: in,
	}); err != nil {
		s.logger.WarnContext(ctx, "add permission failed", "business_id", businessID, "name", in.Name, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "permission added", "business_id", businessID, "name", in.Name, "level", in.Level)
	s.refresh(ctx)
	return nil
}

// Update edits a permission. Renaming to a name another permission of the same business
// already holds is rejected when the business is cached.
func (s *PermissionService) Update(ctx context.Context, permissionID string, in model.PermissionInput) error {
	adminToken, err := s.store.AdminToken()
	if err != nil {
		return err
	}
	if strings.TrimSpace(permissionID) == "" {
		return apperrors.ValidationField("permission_id", "permission id is required")
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return validationError(err)
	}
	if err := s.checkRename(permissionID, in.Name); err != nil {
		return err
	}

	if err := s.api.UpdatePermission(ctx, ports.UpdatePermissionInput{
		AdminToken:   adminToken,
		PermissionID: permissionID,
		Updates:      in,
	}); err != nil {
		s.logger.WarnContext(ctx, "update permission failed", "permission_id", permissionID, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "permission updated", "permission_id", permissionID)
	s.refresh(ctx)
	return nil
}

// Delete removes a permission. The admin list is only re-fetched when the API confirms.
func (s *PermissionService) Delete(ctx context.Context, permissionID string) error {
	adminToken, err := s.store.AdminToken()
	if err != nil {
		return err
	}
	if strings.TrimSpace(permissionID) == "" {
		return apperrors.ValidationField("permission_id", "permission id is required")
	}
	if err := s.api.DeletePermission(ctx, adminToken, permissionID); err != nil {
		s.logger.WarnContext(ctx, "delete permission failed", "permission_id", permissionID, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "permission deleted", "permission_id", permissionID)
	s.refresh(ctx)
	return nil
}

// cachedBusiness looks the business up in the admin aggregation, fetching it once when the
// cache is empty or stale.
func (s *PermissionService) cachedBusiness(ctx context.Context, businessID string) (model.DetailedBusiness, error) {
	if b, ok := s.store.DetailedBusiness(businessID); ok {
		return b, nil
	}
	if _, err := s.store.FetchAllBusinesses(ctx); err != nil {
		return model.DetailedBusiness{}, err
	}
	if b, ok := s.store.DetailedBusiness(businessID); ok {
		return b, nil
	}
	return model.DetailedBusiness{}, apperrors.NotFoundf("business %s not found", businessID)
}

func (s *PermissionService) checkRename(permissionID, name string) error {
	for _, b := range s.store.DetailedBusinesses() {
		idx := slices.IndexFunc(b.Permissions, func(p model.Permission) bool { return p.ID == permissionID })
		if idx < 0 {
			continue
		}
		for i, p := range b.Permissions {
			if i != idx && p.Name == name {
				return &apperrors.AppError{
					Code:    apperrors.ErrCodeConflict,
					Message: "This permission type already exists",
					Field:   "name",
				}
			}
		}
		return nil
	}
	return nil
}

func (s *PermissionService) refresh(ctx context.Context) {
	if _, err := s.store.RefreshAllBusinesses(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh after mutation failed", "error", err)
	}
}

// validationError converts a "<field>: <reason>" error into a field validation error.
func validationError(err error) error {
	field, reason, ok := strings.Cut(err.Error(), ": ")
	if !ok {
		return apperrors.Validation(err.Error())
	}
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeValidation,
		Message: reason,
		Field:   field,
		Cause:   err,
	}
}
