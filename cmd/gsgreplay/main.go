// Command gsgreplay replays a frame script through a graphics state
// guardian and prints what the guardian issued for every frame.
//
// Usage:
//
//	gsgreplay frames.toml
//	gsgreplay --backend native --hal noop frames.toml
//	gsgreplay --watch --complete frames.toml
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gogpu/gsg"
	"github.com/gogpu/gsg/internal/script"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	// HAL backends for the native guardian backend.
	_ "github.com/gogpu/wgpu/hal/allbackends"
)

var exampleUsage = strings.TrimSpace(`
  gsgreplay frames.toml
  gsgreplay --backend native,recorder --hal vulkan frames.toml
  gsgreplay --config ./replay.toml --watch frames.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	root := newRootCommand(os.Stdout, log)
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("gsgreplay failed")
		os.Exit(1)
	}
}

type flags struct {
	config     string
	backends   string
	hal        string
	clearColor []float64
	poolSize   int
	logLevel   string
	complete   bool
	watch      bool
	verbose    bool
}

func newRootCommand(out io.Writer, log zerolog.Logger) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:          "gsgreplay [script.toml]",
		Short:        "Replay a frame script through a graphics state guardian",
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(fl *pflag.Flag) { changed[fl.Name] = true })

			cfg, err := f.resolve(changed)
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			gsg.SetLogger(logger)
			defer gsg.SetLogger(nil)

			r := &replayer{
				out:      out,
				log:      log,
				reg:      newRegistry(cfg.Backends),
				cfg:      cfg,
				logger:   logger,
				complete: cfg.Complete,
			}
			if !f.watch {
				return r.run(args[0])
			}
			return watchAndReplay(cmd.Context(), r, args[0])
		},
	}

	fs := root.Flags()
	fs.StringVar(&f.config, "config", "", "TOML configuration file (default $HOME/.gsg/replay.toml)")
	fs.StringVar(&f.backends, "backend", "recorder", "comma separated guardian backends to try, in order")
	fs.StringVar(&f.hal, "hal", "", "HAL variant of the native backend (vulkan, metal, dx12, gl, software)")
	fs.Float64SliceVar(&f.clearColor, "clear-color", nil, "color clear value as r,g,b[,a]")
	fs.IntVar(&f.poolSize, "pool-size", 0, "texture pool limit, 0 for unlimited")
	fs.StringVar(&f.logLevel, "log-level", "warn", "guardian log level (debug, info, warn, error)")
	fs.BoolVar(&f.complete, "complete", false, "treat every frame as a complete state")
	fs.BoolVar(&f.watch, "watch", false, "replay again whenever the script changes")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every issued attribute (same as --log-level debug)")
	return root
}

// resolve merges defaults, the configuration file and the flags given on
// the command line, in increasing precedence.
func (f *flags) resolve(changed map[string]bool) (script.Config, error) {
	cfg := script.DefaultConfig()

	path := f.config
	if path == "" {
		path = script.DefaultConfigPath()
	}
	if path != "" {
		err := script.LoadConfigFile(path, &cfg, changed)
		switch {
		case err == nil:
		case os.IsNotExist(err) && !changed["config"]:
		default:
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	if changed["backend"] {
		cfg.Backends = script.ParseBackends(f.backends)
	}
	if changed["hal"] {
		cfg.HALBackend = f.hal
	}
	if changed["clear-color"] {
		c, err := script.ParseColor(f.clearColor)
		if err != nil {
			return cfg, fmt.Errorf("--clear-color: %w", err)
		}
		cfg.ClearColor = c
	}
	if changed["pool-size"] {
		cfg.PoolSize = f.poolSize
	}
	if changed["log-level"] {
		cfg.LogLevel = f.logLevel
	}
	if changed["complete"] {
		cfg.Complete = f.complete
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// watchAndReplay replays the script, then again on every change, until
// interrupted.
func watchAndReplay(ctx context.Context, r *replayer, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	replay := func() {
		mu.Lock()
		defer mu.Unlock()
		if err := r.run(path); err != nil {
			r.log.Error().Err(err).Str("script", path).Msg("replay failed")
		}
	}

	replay()
	r.log.Info().Str("script", path).Msg("watching for changes")
	w := &watcher{path: path, log: r.log, run: replay}
	return w.watch(ctx)
}
