package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"retrofire/internal/logger"
	"retrofire/pkg/config"
	"retrofire/pkg/placeholder"
	"retrofire/pkg/remote"
)

// cli holds the parsed global flags and, once the pre-action ran, the
// session every command works against.
type cli struct {
	envFiles  *[]string
	transport *string
	logLevel  *string
	baseURL   *string
	timeout   *time.Duration

	out  io.Writer
	base *remote.Base
	api  *placeholder.API
	log  *zap.Logger
}

func newApp(out io.Writer) (*kingpin.Application, *cli) {
	app := kingpin.New("retrofire", "Query a JSONPlaceholder style posts and comments API.")
	c := &cli{
		envFiles:  app.Flag("env-file", "Load environment variables from this file before reading config.").Strings(),
		transport: app.Flag("transport", "HTTP transport to use (resty or fiber).").Enum(config.TransportResty, config.TransportFiber),
		logLevel:  app.Flag("log-level", "Log level (debug, info, warn, error).").String(),
		baseURL:   app.Flag("base-url", "Root URL of the API.").String(),
		timeout:   app.Flag("timeout", "Give up waiting for a call after this long.").Default("30s").Duration(),
		out:       out,
	}
	app.PreAction(func(*kingpin.ParseContext) error { return c.open() })
	registerCommands(app, c)
	return app, c
}

func main() {
	app, c := newApp(os.Stdout)
	_, err := app.Parse(os.Args[1:])
	c.close()
	app.FatalIfError(err, "")
}

func (c *cli) config() (config.Config, error) {
	cfg, err := config.Load(*c.envFiles...)
	if err != nil {
		return cfg, err
	}
	if *c.transport != "" {
		cfg.Transport = *c.transport
	}
	if *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}
	if *c.baseURL != "" {
		cfg.APIBaseURL = *c.baseURL
	}
	return cfg, cfg.Validate()
}

func (c *cli) open() error {
	cfg, err := c.config()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.log = logger.Init(cfg.LogLevel)
	c.base, err = remote.NewBaseFromConfig(cfg, remote.WithLogger(c.log))
	if err != nil {
		return err
	}
	c.api = placeholder.New(c.base, strings.TrimSpace(cfg.APIBaseURL))
	c.log.Debug("session ready",
		zap.String("transport", cfg.Transport),
		zap.String("base_url", cfg.APIBaseURL),
		zap.Int("size", cfg.Size))
	return nil
}

func (c *cli) close() {
	c.base.Close()
	_ = logger.Close()
}

// run triggers call, waits for it and prints the result as indented JSON.
func run[T any](c *cli, call *remote.Call[T]) error {
	ctx, cancel := context.WithTimeout(context.Background(), *c.timeout)
	defer cancel()

	v, err := call.Start(ctx).Wait(ctx)
	if err != nil {
		c.log.Debug("call failed", zap.String("call_id", call.ID()), zap.Error(err))
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
