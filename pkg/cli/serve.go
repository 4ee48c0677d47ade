package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/imposterd/imposterd/internal/settings"
	"github.com/imposterd/imposterd/pkg/admin"
	"github.com/imposterd/imposterd/pkg/config"
	"github.com/imposterd/imposterd/pkg/imposter"
	"github.com/imposterd/imposterd/pkg/logging"
	"github.com/imposterd/imposterd/pkg/protocol"
)

const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	settingsFile string
	configFile   string
	configDir    string
	adminPort    int
	logLevel     string
	logFormat    string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the imposter daemon",
	Long: `Start the Admin API and every imposter from the configuration.

Settings come from built-in defaults, the optional settings file, and
IMPOSTERD_* environment variables; command line flags win over all three.`,
	Example: `  # Admin API only; create imposters over REST
  imposterd serve

  # Load imposters from a file
  imposterd serve -c imposters.yaml

  # Load a directory tree of configs
  imposterd serve --config-dir ./imposters`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.settingsFile, "settings", "", "server settings file (YAML)")
	f.StringVarP(&serveFlags.configFile, "config", "c", "", "imposter configuration file (YAML or JSON)")
	f.StringVar(&serveFlags.configDir, "config-dir", "", "directory tree of imposter configuration files")
	f.IntVar(&serveFlags.adminPort, "admin-port", 0, "Admin API port")
	f.StringVar(&serveFlags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&serveFlags.logFormat, "log-format", "", "log format (text, json)")
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := settings.Load(serveFlags.settingsFile)
	if err != nil {
		return err
	}
	applyServeFlags(cmd, s)

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(s.LogLevel),
		Format: logging.ParseFormat(s.LogFormat),
		Output: os.Stderr,
	})

	collection, err := loadCollection(s)
	if err != nil {
		return err
	}

	registry := protocol.NewRegistry()

	// Bind every configured imposter concurrently. Any bind failure stops
	// the whole startup: partial deployments would make test runs lie.
	g, gctx := errgroup.WithContext(cmd.Context())
	for i := range collection.Imposters {
		cfg := collection.Imposters[i]
		g.Go(func() error {
			imp, err := imposter.Create(gctx, cfg, imposter.Deps{Logger: logger})
			if err != nil {
				return err
			}
			return registry.Register(imp)
		})
	}
	if err := g.Wait(); err != nil {
		stopAll(registry, logger)
		return fmt.Errorf("startup failed: %w", err)
	}

	api := admin.NewAdminAPI(s.AdminPort, registry)
	api.SetLogger(logger)
	if err := api.Start(); err != nil {
		stopAll(registry, logger)
		return err
	}

	logger.Info("imposterd running",
		"imposters", registry.Count(),
		"adminPort", s.AdminPort)
	printPorts(registry)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("\nShutting down...")
	if err := api.Stop(); err != nil {
		logger.Warn("admin API shutdown", "error", err)
	}
	stopAll(api.Registry(), logger)
	return nil
}

func applyServeFlags(cmd *cobra.Command, s *settings.Settings) {
	if cmd.Flags().Changed("admin-port") {
		s.AdminPort = serveFlags.adminPort
	}
	if serveFlags.configFile != "" {
		s.ConfigFile = serveFlags.configFile
	}
	if serveFlags.configDir != "" {
		s.ConfigDir = serveFlags.configDir
	}
	if serveFlags.logLevel != "" {
		s.LogLevel = serveFlags.logLevel
	}
	if serveFlags.logFormat != "" {
		s.LogFormat = serveFlags.logFormat
	}
}

func loadCollection(s *settings.Settings) (*config.Collection, error) {
	collection := &config.Collection{}
	if s.ConfigFile != "" {
		c, err := config.LoadFromFile(s.ConfigFile)
		if err != nil {
			return nil, err
		}
		collection.Merge(c)
	}
	if s.ConfigDir != "" {
		c, err := config.LoadFromDir(s.ConfigDir, "")
		if err != nil {
			return nil, err
		}
		collection.Merge(c)
	}
	return collection, nil
}

func stopAll(registry *protocol.Registry, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := registry.StopAll(ctx, shutdownTimeout); err != nil {
		logger.Warn("stopping imposters", "error", err)
	}
}

func printPorts(registry *protocol.Registry) {
	for _, h := range registry.List() {
		srv, ok := h.(protocol.StandaloneServer)
		if !ok {
			continue
		}
		name := h.Metadata().Name
		if name == "" {
			name = h.Metadata().ID
		}
		fmt.Printf("  %s  tcp://0.0.0.0:%d\n", name, srv.Port())
	}
}
