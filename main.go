/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kasperleth/ktable/core/config"
	"github.com/kasperleth/ktable/core/logging"
	"github.com/kasperleth/ktable/core/rendering"
	"github.com/kasperleth/ktable/core/server"
	"github.com/kasperleth/ktable/core/widget"
	"github.com/kasperleth/ktable/datasources"
	"github.com/kasperleth/ktable/demo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	verbose bool
	logFile string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ktable",
	Short: "Sortable tables over JSON envelope endpoints",
	Long: `ktable fetches a JSON envelope once per table, renders it as an HTML table
and re-sorts the rows when a sortable column header is clicked.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logFlags(config.LogConfig{Level: "info"}))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// logFlags applies the global logging flags over cfg.
func logFlags(cfg config.LogConfig) config.LogConfig {
	if verbose {
		cfg.Level = "debug"
	}
	if logFile != "" {
		cfg.File = logFile
	}
	return cfg
}

var (
	serveConfig string
	serveDemo   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configured tables over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var (
	renderWidget  string
	renderClicks  []string
	renderHTML    bool
	renderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Load one table definition and print it",
	Long: `Loads the table described by a widget definition file, applies the given
header clicks in order and prints the result as a text table (or as the HTML
fragment with --html).`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "ktable", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this rotating file")

	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "server config file (TOML)")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "serve the built-in demo endpoints and tables")

	renderCmd.Flags().StringVarP(&renderWidget, "widget", "w", "", "widget definition file (YAML)")
	renderCmd.Flags().StringArrayVar(&renderClicks, "click", nil, "column key to click, repeatable")
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "print the HTML fragment instead of a text table")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 30*time.Second, "fetch timeout, 0 for none")
	_ = renderCmd.MarkFlagRequired("widget")

	rootCmd.AddCommand(serveCmd, renderCmd, versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServerConfig(serveConfig)
	if err != nil {
		return err
	}
	if logger, err = logging.New(logFlags(cfg.Log)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	registry := datasources.NewRegistry(datasources.NewHTTPClient(cfg.Fetch.Timeout))
	s := server.New(logger, renderer, registry, server.WithTitle(cfg.Title))

	g, ctx := errgroup.WithContext(cmd.Context())

	if serveDemo {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to listen for demo endpoints: %w", err)
		}
		demoSrv := &http.Server{Handler: demo.Handler(), ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error {
			if err := demoSrv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return demoSrv.Close()
		})

		base := "http://" + l.Addr().String()
		logger.Info("demo endpoints", zap.String("base", base))
		for _, opts := range demo.Widgets(base) {
			if err := addWidget(s, opts); err != nil {
				return err
			}
		}
	}

	for _, path := range cfg.Widgets {
		opts, err := config.LoadWidget(path)
		if err != nil {
			return err
		}
		if err := addWidget(s, opts); err != nil {
			return err
		}
	}
	if len(s.Widgets()) == 0 {
		return errors.New("no widgets configured: list widget files in the config or use --demo")
	}

	g.Go(func() error {
		return s.ListenAndServe(ctx, cfg.Listen)
	})
	return g.Wait()
}

func addWidget(s *server.Server, opts config.Options) error {
	cfg, err := config.Resolve(opts, config.Defaults())
	if err != nil {
		return err
	}
	if _, err := s.AddWidget(cfg); err != nil {
		return err
	}
	logger.Debug("widget added", zap.String("widget", cfg.ID), zap.String("source", cfg.Source))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := config.LoadWidget(renderWidget)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(opts, config.Defaults())
	if err != nil {
		return err
	}
	src, err := datasources.NewRegistry(datasources.NewHTTPClient(renderTimeout)).Open(cfg.Source)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if renderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, renderTimeout)
		defer cancel()
	}

	w := widget.New(cfg, src, widget.WithLogger(logger))
	if err := w.Load(ctx); err != nil {
		return err
	}
	for _, key := range renderClicks {
		if err := w.Click(key); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if renderHTML {
		renderer, err := rendering.NewTableRenderer()
		if err != nil {
			return err
		}
		return renderer.Render(out, w.Snapshot())
	}
	return rendering.RenderText(out, w.Snapshot())
}
