package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/pmsadmin/console/config"
	"github.com/pmsadmin/console/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
	In     *bufio.Reader
	// open builds the console state of a profile; replaced in tests.
	open func(cmdCtx *commandContext, profile string) (*profileSession, error)
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	// CLI output goes to stdout; keep logs quiet unless asked for.
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	logger = bootstrap.ConfigureLogger(bootstrap.LoggerOptions{Level: level, Text: true, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
		In:     bufio.NewReader(os.Stdin),
		open:   openProfile,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		if err := writef(os.Stderr, "error: %s\n", describeError(runErr)); err != nil {
			logger.Error("print error failed", "error", err)
		}
		logger.DebugContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		stop()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	list := []command{
		{"login", "Sign in (add -admin for an admin session)", runLogin},
		{"logout", "Sign out and forget the stored session", runLogout},
		{"whoami", "Show the signed-in user", runWhoami},
		{"businesses", "List the businesses you own", runBusinesses},
		{"admin-businesses", "List every business with its permissions (admin)", runAdminBusinesses},
		{"agent-businesses", "List the businesses delegated to you as an agent", runAgentBusinesses},
		{"add-permission", "Grant a permission to a business (admin)", runAddPermission},
		{"update-permission", "Edit a permission (admin)", runUpdatePermission},
		{"delete-permission", "Delete a permission (admin)", runDeletePermission},
		{"add-agent", "Delegate a business to an agent (admin)", runAddAgent},
		{"list-agents", "List the agents of a business (admin)", runListAgents},
		{"remove-agent", "Remove an agent from a business (admin)", runRemoveAgent},
		{"agent-search", "Find the businesses delegated to an agent email (admin)", runAgentSearch},
		{"lang", "Show or set the display language (zh|en)", runLang},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: pms-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-20s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return writef(w, "\nEvery command accepts -profile NAME to keep several sign-ins apart.\n")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
