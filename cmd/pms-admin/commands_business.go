package main

import (
	"context"

	"github.com/pmsadmin/console/internal/domain/model"
	"github.com/pmsadmin/console/internal/service"
)

func runBusinesses(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("businesses")
	query := fs.String("q", "", "filter by business name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		list, err := p.Store.FetchBusinesses(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		return printBusinesses(cmdCtx.Out, profileLang(cmdCtx.Ctx, p), service.FilterByName(list, *query))
	})
}

func runAdminBusinesses(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("admin-businesses")
	query := fs.String("q", "", "filter by business name")
	id := fs.String("id", "", "show the permissions of one business")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		return showAggregation(cmdCtx, p, aggregationView{
			fetch: p.Store.FetchAllBusinesses,
			query: *query,
			id:    *id,
		})
	})
}

func runAgentBusinesses(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("agent-businesses")
	query := fs.String("q", "", "filter by business name")
	id := fs.String("id", "", "show the permissions of one business")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		return showAggregation(cmdCtx, p, aggregationView{
			fetch: p.Store.FetchAllAgentBusinesses,
			query: *query,
			id:    *id,
		})
	})
}

type aggregationView struct {
	fetch func(ctx context.Context) (model.AggregationResult, error)
	query string
	id    string
}

// showAggregation always fetches; a CLI invocation has no warm cache to serve.
func showAggregation(cmdCtx *commandContext, p *profileSession, view aggregationView) error {
	res, err := view.fetch(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	lang := profileLang(cmdCtx.Ctx, p)
	if view.id != "" {
		for _, b := range res.Businesses {
			if b.ID == view.id {
				if err := writef(cmdCtx.Out, "%s  %s  (%s)\n\n", b.ID, b.Name, b.OwnerID); err != nil {
					return err
				}
				return printPermissions(cmdCtx.Out, lang, b)
			}
		}
		return errBusinessNotFound(view.id)
	}
	if err := printDetailed(cmdCtx.Out, lang, service.FilterByName(res.Businesses, view.query)); err != nil {
		return err
	}
	return printFailures(cmdCtx.Out, res.Failures)
}
