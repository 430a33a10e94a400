package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cabinetry/internal/server"
	"github.com/matzehuels/cabinetry/pkg/config"
	"github.com/matzehuels/cabinetry/pkg/session"
)

type serveOpts struct {
	addr    string
	noCache bool
	secure  bool
}

// serveCommand starts the web designer.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web designer",
		Long: `Run the browser-based designer.

Each visitor edits a private workspace kept for 30 days. Saved designs
go to the configured design store, so the CLI and the web designer
share them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			designs, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer designs.Close()

			sessions, err := c.newSessionStore()
			if err != nil {
				return err
			}
			defer sessions.Close()

			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			addr := opts.addr
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(server.Options{
				Designs:      designs,
				Sessions:     sessions,
				Runner:       runner,
				Logger:       c.Logger,
				SecureCookie: opts.secure,
				Font:         c.Config.Render.Font,
			})
			printInfo(c.Out, "Web designer at http://%s", displayAddr(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.secure, "secure-cookie", false, "mark the session cookie Secure (behind HTTPS)")
	return cmd
}

func (c *CLI) newSessionStore() (session.Store, error) {
	if c.Config.Server.Sessions == config.BackendFile {
		return session.NewFileStore(c.Config.Server.SessionDir)
	}
	return session.NewMemoryStore(), nil
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
