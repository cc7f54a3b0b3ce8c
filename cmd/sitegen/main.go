package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"simlab/internal/adapters/fsout"
	"simlab/internal/adapters/linkcheck"
	"simlab/internal/adapters/observability"
	"simlab/internal/adapters/s3publish"
	"simlab/internal/app"
	"simlab/internal/catalog"
	"simlab/internal/domain"
	"simlab/internal/render"
	"simlab/internal/shared"
	mysqlrepo "simlab/internal/storage/mysql"
)

// cli holds the loaded config and the flags shared by subcommands.
type cli struct {
	cfg    shared.Config
	reg    *prometheus.Registry
	source string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("sitegen failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "sitegen",
		Short:         "Generate the 格安SIMラボ comparison site from the plan catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := shared.Load()
			if err != nil {
				return err
			}
			// flags win over the environment
			if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
				cfg.CatalogPath = f.Value.String()
			}
			if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
				cfg.SiteRoot = f.Value.String()
			}
			if f := cmd.Flags().Lookup("date"); f != nil && f.Changed {
				if cfg.BuildDate, err = shared.BuildDate(f.Value.String(), time.Now()); err != nil {
					return err
				}
			}
			c.cfg = cfg

			// initialize global logger (console in dev, JSON otherwise)
			log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
			c.reg = observability.InitRegistry()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if err := observability.WriteTextfile(c.reg, c.cfg.MetricsTextfile); err != nil {
				return fmt.Errorf("write metrics textfile: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().String("catalog", "", "catalog file (.json, .yaml); overrides CATALOG_PATH")
	root.PersistentFlags().StringVar(&c.source, "source", "file", "catalog source: file or mysql")

	root.AddCommand(
		newGenerateCmd(c),
		newImportCmd(c),
		newMigrateCmd(c),
		newLinkcheckCmd(c),
		newPublishCmd(c),
	)
	return root
}

// openSource returns the configured catalog source and a cleanup func.
func (c *cli) openSource() (domain.CatalogSource, func(), error) {
	switch c.source {
	case "file", "":
		return catalog.NewFileSource(c.cfg.CatalogPath), func() {}, nil
	case "mysql":
		db, err := c.openDB()
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown --source %q (want file or mysql)", c.source)
}

func (c *cli) openDB() (*sql.DB, error) {
	if c.cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is not set")
	}
	db, err := mysqlrepo.Open(c.cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	log.Debug().Msg("db ping ok")
	return db, nil
}

func newGenerateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render every page into the site root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, done, err := c.openSource()
			if err != nil {
				return err
			}
			defer done()

			log.Info().
				Str("source", c.source).
				Str("catalog", c.cfg.CatalogPath).
				Str("out", c.cfg.SiteRoot).
				Str("date", c.cfg.BuildDate.Format(time.DateOnly)).
				Int("workers", c.cfg.WriteWorkers).
				Msg("generator starting")

			out := fsout.NewWriter(c.cfg.SiteRoot, c.cfg.WriteWorkers)
			svc := app.NewGenerateService(src, out, render.Options{Date: c.cfg.BuildDate})
			rep, err := svc.Generate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d pages written (%d reviews, %d comparisons, %d rankings, %d pairs skipped)\n",
				rep.Total, rep.Reviews, rep.Comparisons, rep.Rankings, rep.Skipped)
			return nil
		},
	}
	cmd.Flags().String("out", "", "site root to write into; overrides SITE_ROOT")
	cmd.Flags().String("date", "", "build date YYYY-MM-DD; overrides SITEGEN_BUILD_DATE")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Validate the catalog file and store it in MySQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			svc := app.NewImportService(catalog.NewFileSource(c.cfg.CatalogPath), mysqlrepo.New(db))
			_, err = svc.Import(cmd.Context())
			return err
		},
	}
}

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending MySQL schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := mysqlrepo.Migrate(db)
			if err != nil {
				return err
			}
			log.Info().Uint("version", v).Msg("schema up to date")
			return nil
		},
	}
}

func newLinkcheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "linkcheck",
		Short: "Check every affiliate link and tracking pixel in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, done, err := c.openSource()
			if err != nil {
				return err
			}
			defer done()

			cat, err := src.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			client := linkcheck.New(c.cfg.LinkcheckRPS, c.cfg.LinkcheckTimeout)
			res, err := app.NewLinkAudit(client, c.cfg.LinkcheckWorkers).Run(cmd.Context(), cat)
			if err != nil {
				return err
			}
			bad := 0
			for _, r := range res {
				if !r.OK() {
					bad++
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", r.PlanID, r.Kind, r.Status, r.URL)
				}
			}
			log.Info().Int("checked", len(res)).Int("failed", bad).Msg("link check completed")
			if bad > 0 {
				return fmt.Errorf("%d of %d links failed", bad, len(res))
			}
			return nil
		},
	}
}

func newPublishCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the generated site to S3-compatible storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s3cfg := s3publish.Config{
				Bucket:          c.cfg.S3Bucket,
				Region:          c.cfg.S3Region,
				Endpoint:        c.cfg.S3Endpoint,
				Prefix:          c.cfg.S3Prefix,
				AccessKeyID:     c.cfg.S3AccessKey,
				SecretAccessKey: c.cfg.S3SecretKey,
			}
			client, err := s3publish.NewS3Client(cmd.Context(), s3cfg)
			if err != nil {
				return err
			}
			pub, err := s3publish.New(client, s3cfg.Bucket, s3cfg.Prefix)
			if err != nil {
				return err
			}
			n, err := pub.Publish(cmd.Context(), c.cfg.SiteRoot)
			if err != nil {
				return err
			}
			log.Info().Int("files", n).Str("bucket", s3cfg.Bucket).Str("prefix", s3cfg.Prefix).Msg("site published")
			return nil
		},
	}
	cmd.Flags().String("out", "", "site root to upload; overrides SITE_ROOT")
	return cmd
}
