package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/pmsadmin/console/internal/i18n"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// header translates section.key pairs into a tab separated header row.
func header(lang i18n.Lang, keys ...string) string {
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		section, key, _ := strings.Cut(k, ".")
		cols = append(cols, strings.ToUpper(i18n.Lookup(section, key, lang)))
	}
	return strings.Join(cols, "\t")
}

func translate(cmdCtx *commandContext, p *profileSession, section, key string) string {
	return i18n.Lookup(section, key, profileLang(cmdCtx.Ctx, p))
}

func profileLang(ctx context.Context, p *profileSession) i18n.Lang {
	lang, _ := p.Lang.Get(ctx)
	return lang
}

func printBusinesses(w io.Writer, lang i18n.Lang, list []model.Business) error {
	if len(list) == 0 {
		return writeln(w, i18n.Lookup("system", "noData", lang))
	}
	tw := newTable(w)
	if err := writeln(tw, header(lang, "business.businessId", "business.name", "business.ownerId")); err != nil {
		return err
	}
	for _, b := range list {
		if err := writef(tw, "%s\t%s\t%s\n", b.ID, b.Name, b.OwnerID); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printDetailed(w io.Writer, lang i18n.Lang, list []model.DetailedBusiness) error {
	if len(list) == 0 {
		return writeln(w, i18n.Lookup("system", "noData", lang))
	}
	tw := newTable(w)
	if err := writeln(tw, header(lang,
		"business.businessId", "business.name", "business.ownerId", "business.permissions")); err != nil {
		return err
	}
	for _, b := range list {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", b.ID, b.Name, b.OwnerID, permissionSummary(b.Permissions)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// printPermissions renders the permissions of one business, one row each.
func printPermissions(w io.Writer, lang i18n.Lang, b model.DetailedBusiness) error {
	if len(b.Permissions) == 0 {
		return writeln(w, i18n.Lookup("business", "noPermissions", lang))
	}
	tw := newTable(w)
	if err := writeln(tw, "ID\t"+header(lang,
		"business.permissions", "business.permissionLevel", "business.expireTime")); err != nil {
		return err
	}
	for _, p := range b.Permissions {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Level, p.Expire); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printAgents(w io.Writer, lang i18n.Lang, agents []model.Agent) error {
	if len(agents) == 0 {
		return writeln(w, i18n.Lookup("agent", "noAgents", lang))
	}
	tw := newTable(w)
	if err := writeln(tw, header(lang, "agent.agentId", "login.email", "agent.agentName", "agent.phone")); err != nil {
		return err
	}
	for _, a := range agents {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Email, a.FullName(), a.Phone); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printFailures(w io.Writer, failures []model.JoinFailure) error {
	for _, f := range failures {
		if err := writef(w, "warning: %s\n", f.Error()); err != nil {
			return err
		}
	}
	return nil
}

func permissionSummary(perms []model.Permission) string {
	if len(perms) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, fmt.Sprintf("%s(L%s, %s)", p.Name, p.Level, p.Expire))
	}
	return strings.Join(parts, ", ")
}

// describeError prefers the user-facing message of an AppError, adding the field it refers to.
func describeError(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	msg := appErr.Message
	if msg == "" {
		msg = err.Error()
	}
	if appErr.Field != "" {
		return fmt.Sprintf("%s (%s)", msg, appErr.Field)
	}
	return msg
}
