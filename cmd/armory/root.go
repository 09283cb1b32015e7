package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/koscheiundead/totkaa-v2/internal/bootstrap"
	"github.com/koscheiundead/totkaa-v2/internal/bridge"
	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/config"
	"github.com/koscheiundead/totkaa-v2/internal/handler"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/tracker"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	dbPath     string
	catalogDir string
	jsonOutput bool
	verbose    bool
}

// session is an open tracker for one command invocation
type session struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	bridge  bridge.Bridge
	tracker tracker.Service
	storage *bootstrap.Storage
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "armory",
		Short:         "Track armor upgrade materials and rupees",
		Long:          "armory reads and edits the player state stored by the armor tracker and reports what is still missing for upgrades.",
		Version:       handler.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Database file (default from DB_PATH)")
	cmd.PersistentFlags().StringVar(&flags.catalogDir, "catalog-dir", "", "Directory with catalog table overrides (default from CATALOG_DIR)")
	cmd.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "Print JSON instead of tables")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(
		newStateCmd(flags),
		newSetCmd(flags),
		newRupeesCmd(flags),
		newResetCmd(flags),
		newExportCmd(flags),
		newImportCmd(flags),
		newShortfallCmd(flags),
		newCatalogCmd(flags),
		newMigrateCmd(flags),
	)
	return cmd
}

// openSession loads config, applies flag overrides and opens storage.
// The returned cleanup closes the database.
func openSession(ctx context.Context, flags *globalFlags) (*session, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.catalogDir != "" {
		cfg.CatalogDir = flags.catalogDir
	}

	level := logger.LogLevelWarn
	if flags.verbose {
		level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(logger.ForEnvironment(level, logger.LogFormatText, handler.Version, cfg.Environment), os.Stderr)

	cat, err := bootstrap.LoadCatalog(ctx, catalog.NewLoader(), cfg.CatalogDir)
	if err != nil {
		return nil, nil, err
	}
	storage, err := bootstrap.OpenStorage(ctx, cfg.DBPath, cfg.LegacyStatePath, cat)
	if err != nil {
		return nil, nil, err
	}

	svc := tracker.NewService(storage.Repository, cat, tracker.CacheConfig{
		Size: cfg.ShortfallCacheSize,
		TTL:  cfg.ShortfallCacheTTL,
	})
	s := &session{
		cfg:     cfg,
		catalog: cat,
		bridge:  bridge.New(svc),
		tracker: svc,
		storage: storage,
	}
	return s, func() { _ = storage.DB.Close() }, nil
}

// withSession runs fn against an open session and closes it afterwards
func withSession(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, cleanup, err := openSession(ctx, flags)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctx, s)
}
