package permapi

import (
	"context"

	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/pmsadmin/console/internal/ports"
)

// Endpoint paths relative to the base URL.
const (
	PathLogin               = "/admin/login"
	PathListBusiness        = "/shop/list_business"
	PathSearchBusiness      = "/search/business_search"
	PathGetPermission       = "/shop/get_business_permission"
	PathUpdatePermission    = "/shop/update_business_permission"
	PathDeletePermission    = "/shop/delete_business_permission"
	PathAddPermission       = "/shop/add_business_permission"
	PathAgentBusinessList   = "/shop/get_agent_admin"
	PathAgentBusinessSearch = "/shop/get_agent_business"
	PathAddAgent            = "/shop/add_agent_admin"
	PathBusinessAgents      = "/shop/get_business_agent"
	PathRemoveAgent         = "/shop/remove_agent"
)

type tokenRequest struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a user session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	var resp struct {
		envelope
		Token string `json:"token"`
	}
	if err := c.call(ctx, PathLogin, "", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListBusinesses returns the businesses owned by the user holding userToken.
func (c *Client) ListBusinesses(ctx context.Context, userToken string) ([]model.Business, error) {
	var resp struct {
		envelope
		Business []model.Business `json:"business"`
	}
	if err := c.call(ctx, PathListBusiness, "", tokenRequest{userToken}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Business), nil
}

// SearchBusinesses returns every business visible to the bearer credential.
func (c *Client) SearchBusinesses(ctx context.Context, bearer string) ([]model.Business, error) {
	req := struct {
		Detail bool `json:"detail"`
	}{true}
	var resp struct {
		envelope
		Business []model.Business `json:"business"`
	}
	if err := c.call(ctx, PathSearchBusiness, bearer, req, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Business), nil
}

// GetBusinessPermissions returns the permissions of one business in server order.
func (c *Client) GetBusinessPermissions(ctx context.Context, bearer, businessID string) ([]model.Permission, error) {
	req := struct {
		BusinessID string `json:"business_id"`
	}{businessID}
	var resp struct {
		envelope
		Permissions []model.Permission `json:"permissions"`
	}
	if err := c.call(ctx, PathGetPermission, bearer, req, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Permissions), nil
}

// AddPermission grants a permission to a business.
func (c *Client) AddPermission(ctx context.Context, in ports.AddPermissionInput) error {
	req := struct {
		BusinessID string                `json:"business_id"`
		Permission model.PermissionInput `json:"permission"`
		Token      string                `json:"token"`
	}{in.BusinessID, in.Permission, in.AdminToken}
	return c.call(ctx, PathAddPermission, "", req, nil)
}

// UpdatePermission edits name, level and expiry of an existing permission.
func (c *Client) UpdatePermission(ctx context.Context, in ports.UpdatePermissionInput) error {
	req := struct {
		PermissionID string                `json:"permission_id"`
		Updates      model.PermissionInput `json:"updates"`
		Token        string                `json:"token"`
	}{in.PermissionID, in.Updates, in.AdminToken}
	return c.call(ctx, PathUpdatePermission, "", req, nil)
}

// DeletePermission removes a permission.
func (c *Client) DeletePermission(ctx context.Context, adminToken, permissionID string) error {
	req := struct {
		PermissionID string `json:"permission_id"`
		Token        string `json:"token"`
	}{permissionID, adminToken}
	return c.call(ctx, PathDeletePermission, "", req, nil)
}

// ListAgentBusinesses returns the businesses the agent holding userToken may manage.
func (c *Client) ListAgentBusinesses(ctx context.Context, userToken string) ([]model.AgentBusiness, error) {
	var resp struct {
		envelope
		AgentBusiness []model.AgentBusiness `json:"agent_business"`
	}
	if err := c.call(ctx, PathAgentBusinessList, "", tokenRequest{userToken}, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.AgentBusiness), nil
}

// SearchAgentBusinesses returns the businesses delegated to the agent with the given email.
func (c *Client) SearchAgentBusinesses(ctx context.Context, credential, email string) ([]model.DetailedBusiness, error) {
	type query struct {
		Email string `json:"email"`
	}
	req := struct {
		Query  query  `json:"query"`
		Secret string `json:"secret"`
	}{query{email}, credential}
	var resp struct {
		envelope
		Businesses []model.DetailedBusiness `json:"businesses"`
	}
	if err := c.call(ctx, PathAgentBusinessSearch, "", req, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Businesses), nil
}

// AddAgent delegates a business to the agent with in.Email.
func (c *Client) AddAgent(ctx context.Context, in ports.AgentInput) error {
	req := struct {
		BusinessID string `json:"business_id"`
		Email      string `json:"email"`
		Secret     string `json:"secret"`
	}{in.BusinessID, in.Email, in.Credential}
	return c.call(ctx, PathAddAgent, "", req, nil)
}

// ListBusinessAgents returns the agents delegated to a business.
func (c *Client) ListBusinessAgents(ctx context.Context, credential, businessID string) ([]model.Agent, error) {
	req := struct {
		BusinessID string `json:"business_id"`
		Secret     string `json:"secret"`
	}{businessID, credential}
	var resp struct {
		envelope
		Agents []model.Agent `json:"agents"`
	}
	if err := c.call(ctx, PathBusinessAgents, "", req, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Agents), nil
}

// RemoveAgent revokes the delegation of a business to in.AgentID.
func (c *Client) RemoveAgent(ctx context.Context, in ports.AgentInput) error {
	req := struct {
		BusinessID string `json:"business_id"`
		AgentID    string `json:"agent_id"`
		Secret     string `json:"secret"`
	}{in.BusinessID, in.AgentID, in.Credential}
	return c.call(ctx, PathRemoveAgent, "", req, nil)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
