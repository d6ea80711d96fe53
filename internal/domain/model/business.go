//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Business is the tenant record that owns permissions. It is sourced wholesale from the
// remote permission API and never modified by the console.
type Business struct {
	ID      string `json:"_id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// DetailedBusiness is a Business joined with the permissions attached to it.
// Permissions keep the order the API returned them in.
type DetailedBusiness struct {
	ID          string       `json:"_id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// PermissionNames returns the names of the permissions already granted to the business.
func (b DetailedBusiness) PermissionNames() []string {
	names := make([]string, 0, len(b.Permissions))
	for _, p := range b.Permissions {
		names = append(names, p.Name)
	}
	return names
}

// HasPermission reports whether a permission with the given name is attached.
func (b DetailedBusiness) HasPermission(name string) bool {
	for _, p := range b.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't mutate cached state.
func (b DetailedBusiness) Clone() DetailedBusiness {
	out := b
	if b.Permissions != nil {
		out.Permissions = make([]Permission, len(b.Permissions))
		copy(out.Permissions, b.Permissions)
	}
	return out
}

// AgentBusiness is the association between the signed-in agent and a business.
// Name and OwnerID are only present when the API includes them.
type AgentBusiness struct {
	BusinessID string `json:"business_id"`
	Name       string `json:"business_name,omitempty"`
	OwnerID    string `json:"owner_id,omitempty"`
}
