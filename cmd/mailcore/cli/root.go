// Package cli implements the mailcore command tree. Every command stands in
// for one UI action of the dashboard: it opens the configured store, calls
// the same service interfaces the dashboard would, prints the result, and
// exits.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ignite/mailcore/internal/config"
	"github.com/ignite/mailcore/internal/directory"
	"github.com/ignite/mailcore/internal/ledger"
	"github.com/ignite/mailcore/internal/prefs"
	"github.com/ignite/mailcore/internal/session"
	"github.com/ignite/mailcore/internal/store"
	filestore "github.com/ignite/mailcore/internal/store/file"
	"github.com/ignite/mailcore/internal/store/memory"
	redisstore "github.com/ignite/mailcore/internal/store/redis"
	sqlitestore "github.com/ignite/mailcore/internal/store/sqlite"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mailcore",
		Short:   "Local account directory, session store, and campaign ledger",
		Version: version,
		Long: `mailcore is the data core of the mailing dashboard: user accounts with
role rules, a persisted login session, and campaign records with their
delivery counters. Everything lives in a local store; there is no server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "mailcore.yaml", "config file")

	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newAccountCmd())
	cmd.AddCommand(newCampaignsCmd())
	cmd.AddCommand(newSettingsCmd())

	return cmd
}

// app bundles the wired services for one command invocation.
type app struct {
	cfg       *config.Config
	store     store.Store
	sessions  *session.Manager
	directory *directory.Service
	ledger    *ledger.Service
	prefs     *prefs.Service

	closer io.Closer
}

// newApp loads config and opens the configured store backend.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadFromEnv(cfgFile)
	if err != nil {
		return nil, err
	}

	var (
		st     store.Store
		closer io.Closer
	)
	switch cfg.Storage.Backend {
	case "file":
		st, err = filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
	case "sqlite":
		s, err := sqlitestore.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		st, closer = s, s
	case "redis":
		s, err := redisstore.Open(ctx, cfg.Storage.RedisAddr)
		if err != nil {
			return nil, err
		}
		st, closer = s, s
	case "memory":
		st = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	sessions := session.NewManager(st)
	return &app{
		cfg:       cfg,
		store:     st,
		sessions:  sessions,
		directory: directory.NewService(st, sessions),
		ledger:    ledger.NewService(st),
		prefs:     prefs.NewService(st),
		closer:    closer,
	}, nil
}

func (a *app) Close() {
	if a.closer != nil {
		a.closer.Close()
	}
}
