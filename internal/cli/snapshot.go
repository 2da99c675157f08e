package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stablegraph/pkg/codec"
	errs "github.com/matzehuels/stablegraph/pkg/errors"
	"github.com/matzehuels/stablegraph/pkg/snapshot"
)

// snapshotCommand creates the snapshot command.
func (c *CLI) snapshotCommand() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store graph documents in the configured snapshot backend",
		Long: `Store graph documents in a snapshot backend. The backend comes from the
[store] section of the config file and can be overridden with --backend:

  memory   process-local, useful for testing only
  file     one file per snapshot under store.dir
  badger   embedded Badger database under store.dir
  redis    store.redis.addr
  mongo    store.mongo.uri`,
	}
	cmd.PersistentFlags().StringVar(&backend, "backend", "", "override store.backend")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := c.setup(cmd, args); err != nil {
			return err
		}
		if backend != "" {
			c.Config.Store.Backend = backend
			return c.Config.validate()
		}
		return nil
	}

	cmd.AddCommand(c.snapshotPutCommand())
	cmd.AddCommand(c.snapshotGetCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotRmCommand())
	return cmd
}

// openStore opens the configured backend wrapped in a typed store.
func (c *CLI) openStore(ctx context.Context) (*snapshot.Store[string, string], error) {
	cfg := c.Config.Store
	ttl, err := cfg.ttl()
	if err != nil {
		return nil, err
	}
	dir := cfg.Dir
	if dir == "" && (cfg.Backend == "file" || cfg.Backend == "badger") {
		base, err := dataDir()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		dir = filepath.Join(base, cfg.Backend)
	}

	var b snapshot.Backend
	switch cfg.Backend {
	case "memory":
		printWarning(os.Stderr, "memory backend keeps nothing once the command exits")
		b = snapshot.NewMemory()
	case "file":
		b, err = snapshot.NewFile(dir, snapshot.WithFileTTL(ttl))
	case "badger":
		b, err = snapshot.NewBadger(snapshot.BadgerOptions{
			Dir:    dir,
			TTL:    ttl,
			Logger: loggerFromContext(ctx),
		})
	case "redis":
		opts := []snapshot.RedisOption{snapshot.WithTTL(ttl)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, snapshot.WithPrefix(cfg.Redis.Prefix))
		}
		b = snapshot.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
	case "mongo":
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		b, err = snapshot.DialMongo(dialCtx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "open %s backend", cfg.Backend)
	}
	loggerFromContext(ctx).Debug("backend opened", "backend", b.Name(), "dir", dir)
	return snapshot.NewStore[string, string](b, snapshot.WithFormat(codec.Format(c.Config.Codec.Format))), nil
}

// withStore opens the store, runs fn and closes the store.
func (c *CLI) withStore(ctx context.Context, fn func(*snapshot.Store[string, string]) error) error {
	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			loggerFromContext(ctx).Warn("close backend", "err", err)
		}
	}()
	return fn(s)
}

func (c *CLI) snapshotPutCommand() *cobra.Command {
	var key, format string
	cmd := &cobra.Command{
		Use:   "put <document>",
		Short: "Store a graph document, printing its key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := c.readDocument(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			return c.withStore(ctx, func(s *snapshot.Store[string, string]) error {
				k := key
				if k == "" {
					k = s.NewKey()
				}
				if err := errs.ValidateKey(k); err != nil {
					return err
				}
				prog := newProgress(loggerFromContext(ctx))
				if err := s.Save(ctx, k, doc); err != nil {
					return err
				}
				prog.done("Saved snapshot")
				fmt.Fprintln(c.out, k)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "snapshot key (default: a random UUID)")
	cmd.Flags().StringVar(&format, "format", "", "input format (default from extension)")
	return cmd
}

func (c *CLI) snapshotGetCommand() *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch a stored graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateKey(args[0]); err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withStore(ctx, func(s *snapshot.Store[string, string]) error {
				doc, err := s.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if err := c.writeDocument(ctx, output, format, doc); err != nil {
					return err
				}
				if output != "-" {
					printSuccess(c.out, "Fetched %s", args[0])
					printDocStats(c.out, doc)
					printFile(c.out, output)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output document (- for stdout)")
	cmd.Flags().StringVar(&format, "format", "", "output format (default from extension)")
	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshot keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s *snapshot.Store[string, string]) error {
				keys, err := s.List(ctx)
				if err != nil {
					return errs.Wrap(errs.ErrCodeStorage, err, "list snapshots")
				}
				if len(keys) == 0 {
					printInfo(c.out, "No snapshots in %s backend", s.Backend().Name())
				}
				for _, k := range keys {
					fmt.Fprintln(c.out, k)
				}
				return nil
			})
		},
	}
}

func (c *CLI) snapshotRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key>...",
		Aliases: []string{"delete"},
		Short:   "Delete stored snapshots",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range args {
				if err := errs.ValidateKey(k); err != nil {
					return err
				}
			}
			ctx := cmd.Context()
			return c.withStore(ctx, func(s *snapshot.Store[string, string]) error {
				for _, k := range args {
					if err := s.Delete(ctx, k); err != nil {
						return err
					}
				}
				if len(args) > 1 {
					printSuccess(c.out, "Deleted %d snapshots", len(args))
				}
				return nil
			})
		},
	}
}
