package cli

import (
	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/api"
	"github.com/dungenlab/dungen/pkg/cache"
	"github.com/dungenlab/dungen/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // shared plan/artifact cache; empty uses the file cache
	mongoURI  string // shared plan archive; empty uses the file archive
	noCache   bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the floor-plan HTTP API",
		Long: `Serve exposes generation and the plan archive over HTTP.

Single-instance deployments can rely on the default file-backed cache
and archive. Multi-instance deployments should point --redis and
--mongo-uri at shared backends so every instance sees the same plans.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for a shared plan archive")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var cc cache.Cache
	var err error
	switch {
	case opts.noCache:
		cc = cache.NewNullCache()
	case opts.redisAddr != "":
		cc, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return err
		}
		logger.Info("using redis cache", "addr", opts.redisAddr)
	default:
		cc, err = newCache(false)
		if err != nil {
			return err
		}
	}
	defer cc.Close()

	st, err := newStore(ctx, opts.mongoURI)
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	if opts.mongoURI != "" {
		logger.Info("using mongodb archive")
	}

	runner := pipeline.NewRunner(cc, nil, logger)
	return api.NewServer(runner, st, logger).Serve(ctx, opts.addr)
}
