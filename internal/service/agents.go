package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/ports"
)

// AgentServiceOptions groups dependencies for AgentService.
type AgentServiceOptions struct {
	API    ports.PermissionAPI
	Store  *Store
	Logger *slog.Logger
}

// AgentService manages which agents may administer a business. Every call uses the admin
// credential of the session.
type AgentService struct {
	api    ports.PermissionAPI
	store  *Store
	logger *slog.Logger
}

// NewAgentService constructs a new AgentService.
func NewAgentService(opts AgentServiceOptions) *AgentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AgentService{
		api:    opts.API,
		store:  opts.Store,
		logger: logger.With("component", "agents"),
	}
}

// AddAgent delegates a business to the agent with the given email.
func (s *AgentService) AddAgent(ctx context.Context, businessID, email string) error {
	cred, err := s.store.AdminToken()
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if err := validateAgentTarget(businessID, email); err != nil {
		return err
	}
	if err := s.api.AddAgent(ctx, ports.AgentInput{Credential: cred, BusinessID: businessID, Email: email}); err != nil {
		s.logger.WarnContext(ctx, "add agent failed", "business_id", businessID, "email", email, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "agent added", "business_id", businessID, "email", email)
	return nil
}

// ListBusinessAgents returns the agents delegated to a business.
func (s *AgentService) ListBusinessAgents(ctx context.Context, businessID string) ([]model.Agent, error) {
	cred, err := s.store.AdminToken()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(businessID) == "" {
		return nil, apperrors.ValidationField("business_id", "business id is required")
	}
	return s.api.ListBusinessAgents(ctx, cred, businessID)
}

// RemoveAgent revokes an agent's delegation on a business.
func (s *AgentService) RemoveAgent(ctx context.Context, businessID, agentID string) error {
	cred, err := s.store.AdminToken()
	if err != nil {
		return err
	}
	if strings.TrimSpace(businessID) == "" {
		return apperrors.ValidationField("business_id", "business id is required")
	}
	if strings.TrimSpace(agentID) == "" {
		return apperrors.ValidationField("agent_id", "agent id is required")
	}
	if err := s.api.RemoveAgent(ctx, ports.AgentInput{Credential: cred, BusinessID: businessID, AgentID: agentID}); err != nil {
		s.logger.WarnContext(ctx, "remove agent failed", "business_id", businessID, "agent_id", agentID, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "agent removed", "business_id", businessID, "agent_id", agentID)
	return nil
}

// SearchAgentBusinesses returns the businesses delegated to the agent with the given email.
func (s *AgentService) SearchAgentBusinesses(ctx context.Context, email string) ([]model.DetailedBusiness, error) {
	cred, err := s.store.AdminToken()
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "Please enter an agent email")
	}
	if !model.ValidEmail(email) {
		return nil, apperrors.ValidationField("email", "Please enter a valid email address")
	}
	return s.api.SearchAgentBusinesses(ctx, cred, email)
}

func validateAgentTarget(businessID, email string) error {
	if strings.TrimSpace(businessID) == "" {
		return apperrors.ValidationField("business_id", "business id is required")
	}
	if !model.ValidEmail(email) {
		return apperrors.ValidationField("email", "Please enter a valid email address")
	}
	return nil
}
