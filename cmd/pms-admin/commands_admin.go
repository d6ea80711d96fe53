package main

import (
	"flag"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
)

func errBusinessNotFound(id string) error {
	return apperrors.NotFoundf("business %s not found", id)
}

func permissionFlags(name string) (*flag.FlagSet, *string, *model.PermissionInput) {
	fs, profile := newFlagSet(name)
	in := &model.PermissionInput{}
	fs.StringVar(&in.Name, "name", "", "permission name (kiosk|vend|onlineshop|kds)")
	fs.StringVar(&in.Level, "level", "1", "permission level (1-3)")
	fs.StringVar(&in.Expire, "expire", "", "expiry date (YYYY-MM-DD)")
	return fs, profile, in
}

func runAddPermission(cmdCtx *commandContext, args []string) error {
	fs, profile, in := permissionFlags("add-permission")
	businessID := fs.String("business", "", "business id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		fs.Usage()
		return errMissingArgs
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		if err := p.Permissions.Add(cmdCtx.Ctx, *businessID, *in); err != nil {
			return err
		}
		if b, ok := p.Store.DetailedBusiness(*businessID); ok {
			return printPermissions(cmdCtx.Out, profileLang(cmdCtx.Ctx, p), b)
		}
		return writeln(cmdCtx.Out, "permission added")
	})
}

func runUpdatePermission(cmdCtx *commandContext, args []string) error {
	fs, profile, in := permissionFlags("update-permission")
	id := fs.String("id", "", "permission id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errMissingArgs
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		// Rename conflicts are only detected against a loaded admin list.
		if _, err := p.Store.FetchAllBusinesses(cmdCtx.Ctx); err != nil {
			return err
		}
		if err := p.Permissions.Update(cmdCtx.Ctx, *id, *in); err != nil {
			return err
		}
		return writeln(cmdCtx.Out, "permission updated")
	})
}

func runDeletePermission(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("delete-permission")
	id := fs.String("id", "", "permission id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errMissingArgs
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		if err := p.Permissions.Delete(cmdCtx.Ctx, *id); err != nil {
			return err
		}
		return writeln(cmdCtx.Out, "permission deleted")
	})
}

func runAddAgent(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("add-agent")
	businessID := fs.String("business", "", "business id")
	email := fs.String("email", "", "agent email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		if err := p.Agents.AddAgent(cmdCtx.Ctx, *businessID, *email); err != nil {
			return err
		}
		return writeln(cmdCtx.Out, translate(cmdCtx, p, "detail", "addSuccess"))
	})
}

func runListAgents(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("list-agents")
	businessID := fs.String("business", "", "business id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		agents, err := p.Agents.ListBusinessAgents(cmdCtx.Ctx, *businessID)
		if err != nil {
			return err
		}
		return printAgents(cmdCtx.Out, profileLang(cmdCtx.Ctx, p), agents)
	})
}

func runRemoveAgent(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("remove-agent")
	businessID := fs.String("business", "", "business id")
	agentID := fs.String("agent", "", "agent id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		if err := p.Agents.RemoveAgent(cmdCtx.Ctx, *businessID, *agentID); err != nil {
			return err
		}
		return writeln(cmdCtx.Out, translate(cmdCtx, p, "agent", "deleteSuccess"))
	})
}

func runAgentSearch(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("agent-search")
	email := fs.String("email", "", "agent email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		list, err := p.Agents.SearchAgentBusinesses(cmdCtx.Ctx, *email)
		if err != nil {
			return err
		}
		return printDetailed(cmdCtx.Out, profileLang(cmdCtx.Ctx, p), list)
	})
}
