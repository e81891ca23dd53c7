// Command rendang-server runs the RESP key/value server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukluk/rendang/internal/adminserver"
	"github.com/lukluk/rendang/internal/config"
	"github.com/lukluk/rendang/internal/logger"
	"github.com/lukluk/rendang/internal/server"
	"github.com/lukluk/rendang/internal/sigs"
	"github.com/lukluk/rendang/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "rendang-server",
	Short: "A minimal Redis-compatible key/value server",
}

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger.SetOptions(cfg.Logger)

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Address = addr
		}

		st := store.New()

		errc := make(chan error, 1)
		admin := adminserver.New(cfg.Admin)
		if admin != nil {
			if err := admin.Start(errc); err != nil {
				fmt.Fprintf(os.Stderr, "failed to start admin server: %v\n", err)
				os.Exit(1)
			}
		}

		srv := server.New(cfg.Address, st)
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to bind %s: %v\n", cfg.Address, err)
			os.Exit(1)
		}

		select {
		case <-sigs.Terminate():
			logger.Infof("shutting down")
		case err := <-errc:
			logger.Errorf("admin server error: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.GracePeriod)
		defer cancel()
		if err := srv.Shutdown(ctx, cfg.GracePeriod); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
		if admin != nil {
			admin.Shutdown(ctx)
		}
	},
	Example: "# rendang-server serve --config rendang.yaml --addr 0.0.0.0:6379",
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Configuration file path")
	serveCmd.Flags().String("addr", "", "Override the listen address from config")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
