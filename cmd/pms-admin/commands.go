package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/pmsadmin/console/internal/service"
)

var errMissingArgs = errors.New("missing required flags")

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	profile := fs.String("profile", defaultProfile, "profile name to keep separate sign-ins apart")
	return fs, profile
}

// withProfile opens the profile, runs fn and releases the backend.
func withProfile(cmdCtx *commandContext, profile string, fn func(p *profileSession) error) (err error) {
	p, err := cmdCtx.open(cmdCtx, profile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.Close())
	}()
	return fn(p)
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (falls back to PMS_PASSWORD or stdin)")
	admin := fs.Bool("admin", false, "request an admin session")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" {
		fs.Usage()
		return errMissingArgs
	}
	pw, err := readPassword(cmdCtx, *password)
	if err != nil {
		return err
	}

	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		sess, err := p.Store.Login(cmdCtx.Ctx, service.LoginInput{Email: *email, Password: pw, Admin: *admin})
		if err != nil {
			return err
		}
		role := "user"
		if sess.IsAdmin && sess.HasAdmin() {
			role = "admin"
		}
		return writef(cmdCtx.Out, "signed in as %s (%s)\n", sess.UserEmail, role)
	})
}

func readPassword(cmdCtx *commandContext, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv("PMS_PASSWORD"); v != "" {
		return v, nil
	}
	if cmdCtx.In == nil {
		return "", errors.New("password is required")
	}
	if err := writef(os.Stderr, "Password: "); err != nil {
		return "", err
	}
	line, err := cmdCtx.In.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", errors.Join(errors.New("password is required"), err)
		}
		return "", errors.New("password is required")
	}
	return line, nil
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		if err := p.Store.Logout(cmdCtx.Ctx); err != nil {
			return err
		}
		return writeln(cmdCtx.Out, "signed out")
	})
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("whoami")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		sess := p.Store.Session()
		if !sess.Authenticated() {
			return writeln(cmdCtx.Out, "not signed in")
		}
		role := "user"
		if sess.IsAdmin && sess.HasAdmin() {
			role = "admin"
		}
		return writef(cmdCtx.Out, "%s (%s, lang=%s)\n", sess.UserEmail, role, profileLang(cmdCtx.Ctx, p))
	})
}

func runLang(cmdCtx *commandContext, args []string) error {
	fs, profile := newFlagSet("lang")
	set := fs.String("set", "", "language to store (zh|en)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withProfile(cmdCtx, *profile, func(p *profileSession) error {
		if *set == "" {
			return writeln(cmdCtx.Out, string(profileLang(cmdCtx.Ctx, p)))
		}
		lang, err := p.Lang.Set(cmdCtx.Ctx, *set)
		if err != nil {
			return err
		}
		return writeln(cmdCtx.Out, string(lang))
	})
}
