package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pypin/internal/server"
	"github.com/matzehuels/pypin/pkg/cache"
	"github.com/matzehuels/pypin/pkg/resolve"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		useCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pin lookups over HTTP",
		Long: `Start an HTTP server answering the same questions as the command line:

  GET  /v1/packages/{name}?date=<date>
  POST /v1/manifests?date=<date>    (body: requirements text)
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Addr
			}

			var store cache.Cache
			if useCache {
				s, err := c.newStore(ctx)
				if err != nil {
					return err
				}
				store = s
				defer store.Close()
			}

			client := c.newClient(store, false)
			defer client.Close()

			srv := server.New(resolve.NewSharedFetcher(client), server.Options{Logger: loggerFromContext(ctx)})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&useCache, "cache", false, "keep fetched release histories in the configured store")
	return cmd
}
