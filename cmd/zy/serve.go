package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/muurk/zy/internal/announce"
	"github.com/muurk/zy/internal/config"
	"github.com/muurk/zy/internal/logging"
	"github.com/muurk/zy/internal/server"
	"github.com/muurk/zy/internal/shutdown"
	"github.com/muurk/zy/internal/ui"
	"github.com/muurk/zy/internal/version"
)

// loadConfig reads the config file, sets up logging and builds the
// validated configuration. Logging comes first so that config loading can
// warn about ignored values.
func loadConfig(v *viper.Viper, configPath string, args []string) (*config.Config, error) {
	path, err := config.ReadConfigFile(v, configPath)
	if err != nil {
		return nil, err
	}

	level := v.GetString(config.KeyLogLevel)
	if v.GetBool(config.KeyVerbose) {
		level = "debug"
	}
	if err := logging.Initialize(level); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if path != "" {
		logging.Debug("Loaded config file", zap.String("path", path))
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	return config.Load(v, dir, logging.GetLogger())
}

// runServe binds the listeners and serves until the shutdown coordinator
// stops the server.
func runServe(cfg *config.Config) error {
	defer logging.Sync()
	log := logging.GetLogger()

	logging.Info(fmt.Sprintf("PID: %d", os.Getpid()))
	logging.Debug("Configuration", zap.Any("config", cfg))

	// Subscribe before binding so a signal during startup still goes
	// through the coordinator.
	coord := shutdown.New(cfg.ConfirmExit, log.Named("signal"))
	defer coord.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, log)
	if err := srv.Listen(); err != nil {
		return err
	}

	if ui.IsTerminal(os.Stdout) {
		fmt.Println(ui.NewBanner(cfg).Render())
	}

	if cfg.MDNS {
		a := announce.New(log.Named("mdns"))
		if err := a.Start(announce.DefaultInstance(), srv.Addrs()); err != nil {
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			defer a.Shutdown()
		}
	}

	logging.Debug("Serving", zap.String("version", version.Full()), zap.Strings("urls", cfg.URLs()))
	return supervise(context.Background(), coord, srv.Serve, srv.Stop)
}

// supervise runs serve until coord decides to stop. A serve failure asks the
// coordinator for a graceful stop of whatever is left and is then returned.
func supervise(ctx context.Context, coord *shutdown.Coordinator, serve func() error, stop shutdown.StopFunc) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- serve()
	}()

	runErr := make(chan error, 1)
	go func() {
		runErr <- coord.Run(ctx, stop)
	}()

	select {
	case err := <-serveErr:
		if err == nil {
			// Serve only returns nil once Stop ran; let the coordinator finish.
			return <-runErr
		}
		coord.Trigger()
		if rerr := <-runErr; rerr != nil {
			logging.Warn("Shutdown after serve failure", zap.Error(rerr))
		}
		return err
	case err := <-runErr:
		return err
	}
}
