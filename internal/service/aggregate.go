package service

import (
	"context"
	"fmt"

	"github.com/pmsadmin/console/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

type joinConfig[T any] struct {
	items []T
	limit int
	id    func(T) string
	join  func(context.Context, T) (model.DetailedBusiness, error)
}

// joinAll runs cfg.join for every item with at most cfg.limit in flight and waits for all
// of them. Per-item errors become JoinFailures; only cancellation of ctx fails the whole join.
// Successful results keep the order of cfg.items.
func joinAll[T any](ctx context.Context, cfg joinConfig[T]) (model.AggregationResult, error) {
	type slot struct {
		business model.DetailedBusiness
		err      error
	}
	slots := make([]slot, len(cfg.items))

	var g errgroup.Group
	if cfg.limit > 0 {
		g.SetLimit(cfg.limit)
	}
	for i, item := range cfg.items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				slots[i].err = err
				return nil
			}
			b, err := cfg.join(ctx, item)
			slots[i] = slot{business: b, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return model.AggregationResult{}, fmt.Errorf("aggregation aborted: %w", err)
	}

	res := model.AggregationResult{Businesses: make([]model.DetailedBusiness, 0, len(cfg.items))}
	for i, sl := range slots {
		if sl.err != nil {
			res.Failures = append(res.Failures, model.JoinFailure{BusinessID: cfg.id(cfg.items[i]), Err: sl.err})
			continue
		}
		res.Businesses = append(res.Businesses, sl.business)
	}
	return res, nil
}

// joinAgentBusiness builds the DetailedBusiness of one agent association.
// Name and owner come from the association when it carries them. Otherwise every permission
// record carrying a name or owner must agree, and together they must supply a name.
func joinAgentBusiness(a model.AgentBusiness, perms []model.Permission) (model.DetailedBusiness, error) {
	out := model.DetailedBusiness{
		ID:          a.BusinessID,
		Name:        a.Name,
		OwnerID:     a.OwnerID,
		Permissions: perms,
	}
	if out.Permissions == nil {
		out.Permissions = []model.Permission{}
	}

	var name, owner string
	for _, p := range perms {
		if p.BusinessID != "" && p.BusinessID != a.BusinessID {
			return model.DetailedBusiness{}, fmt.Errorf("%w: permission %s belongs to business %s",
				model.ErrInconsistentBusiness, p.ID, p.BusinessID)
		}
		if p.BusinessName != "" {
			if name != "" && name != p.BusinessName {
				return model.DetailedBusiness{}, fmt.Errorf("%w: names %q and %q",
					model.ErrInconsistentBusiness, name, p.BusinessName)
			}
			name = p.BusinessName
		}
		if p.OwnerID != "" {
			if owner != "" && owner != p.OwnerID {
				return model.DetailedBusiness{}, fmt.Errorf("%w: owners %q and %q",
					model.ErrInconsistentBusiness, owner, p.OwnerID)
			}
			owner = p.OwnerID
		}
	}

	if out.Name == "" {
		out.Name = name
	}
	if out.OwnerID == "" {
		out.OwnerID = owner
	}
	if out.Name == "" {
		if len(perms) == 0 {
			return model.DetailedBusiness{}, model.ErrNoPermissions
		}
		return model.DetailedBusiness{}, fmt.Errorf("%w: none of %d permissions names business %s",
			model.ErrUnnamedBusiness, len(perms), a.BusinessID)
	}
	return out, nil
}
