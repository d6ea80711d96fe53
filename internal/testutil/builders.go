package testutil

import (
	"fmt"

	"github.com/pmsadmin/console/internal/domain/model"
)

// BusinessBuilder provides a fluent interface for building detailed businesses in tests.
type BusinessBuilder struct {
	b model.DetailedBusiness
}

// NewBusiness creates a BusinessBuilder with the given id and a derived name.
func NewBusiness(id string) *BusinessBuilder {
	return &BusinessBuilder{b: model.DetailedBusiness{
		ID:      id,
		OwnerID: "owner-" + id,
		Name:    "Business " + id,
	}}
}

// WithName sets the business name.
func (bb *BusinessBuilder) WithName(name string) *BusinessBuilder {
	bb.b.Name = name
	return bb
}

// WithOwner sets the owner id.
func (bb *BusinessBuilder) WithOwner(owner string) *BusinessBuilder {
	bb.b.OwnerID = owner
	return bb
}

// WithPermission appends a permission with a generated id.
func (bb *BusinessBuilder) WithPermission(name, level, expire string) *BusinessBuilder {
	bb.b.Permissions = append(bb.b.Permissions, model.Permission{
		ID:         fmt.Sprintf("%s-perm-%d", bb.b.ID, len(bb.b.Permissions)+1),
		BusinessID: bb.b.ID,
		Name:       name,
		Level:      level,
		Expire:     expire,
	})
	return bb
}

// Summary returns the basic business row.
func (bb *BusinessBuilder) Summary() model.Business {
	return model.Business{ID: bb.b.ID, OwnerID: bb.b.OwnerID, Name: bb.b.Name}
}

// Build returns the constructed DetailedBusiness.
func (bb *BusinessBuilder) Build() model.DetailedBusiness {
	return bb.b.Clone()
}

// Permissions returns the permissions as the permissions endpoint would report them.
func (bb *BusinessBuilder) Permissions() []model.Permission {
	out := make([]model.Permission, len(bb.b.Permissions))
	copy(out, bb.b.Permissions)
	return out
}

// AgentPermission returns a permission row as the agent business search reports it,
// carrying business name and owner alongside the permission fields.
func AgentPermission(businessID, name, owner, perm string) model.Permission {
	return model.Permission{
		ID:           businessID + "-" + perm,
		BusinessID:   businessID,
		Name:         perm,
		Level:        "1",
		Expire:       "2030-01-01",
		BusinessName: name,
		OwnerID:      owner,
	}
}

// NewAgent builds an agent with predictable fields.
func NewAgent(id, email string) model.Agent {
	return model.Agent{ID: id, Email: email, FirstName: "First" + id, LastName: "Last" + id}
}
