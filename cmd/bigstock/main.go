package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/bigstock-client/internal/config"
	"github.com/samvad-hq/bigstock-client/internal/logger"
	"github.com/samvad-hq/bigstock-client/internal/render"
	"github.com/samvad-hq/bigstock-client/pkg/bigstock"
	"github.com/samvad-hq/bigstock-client/pkg/httpclient"
)

// errFailedResult marks a command whose API call returned the error variant.
// The record has already been printed by then.
var errFailedResult = errors.New("api call failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd(os.Stdout).ExecuteContext(ctx)
	logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bigstock: %v\n", err)
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand once the root has run.
type cli struct {
	out     io.Writer
	mode    string
	format  string
	rawOut  string
	cfg     *config.Config
	log     logger.Logger
	client  *bigstock.Client
	printer *render.Renderer
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	rootCmd := &cobra.Command{
		Use:           "bigstock",
		Short:         "Command line client for the Bigstock API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.mode, "mode", "", "API mode: prod or test (overrides BIGSTOCK_MODE)")
	rootCmd.PersistentFlags().StringVar(&c.format, "format", render.FormatJSON, "output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&c.rawOut, "raw-out", "", "write non-JSON payloads to this file")

	rootCmd.AddCommand(
		c.newSearchCmd(),
		c.newAssetCmd(),
		c.newTypedAssetCmd("image", bigstock.TypeImage),
		c.newTypedAssetCmd("video", bigstock.TypeVideo),
		c.newCollectionsCmd(),
		c.newCollectionCmd(),
		c.newLightboxesCmd(),
		c.newLightboxCmd(),
		c.newClipboxesCmd(),
		c.newClipboxCmd(),
		c.newCategoriesCmd(),
		c.newPurchaseCmd(),
		c.newDownloadURLCmd(),
		c.newDownloadCmd(),
		c.newAuthKeyCmd(),
		c.newAcquireCmd(),
	)
	return rootCmd
}

// setup loads config, starts the logger and builds the API client.
func (c *cli) setup() error {
	printer, err := render.New(c.out, c.format, c.rawOut)
	if err != nil {
		return err
	}
	c.printer = printer

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if m := strings.ToLower(strings.TrimSpace(c.mode)); m != "" {
		cfg.Mode = m
	}
	c.cfg = cfg

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	c.log = log
	log.DebugObj("bigstock cli starting", "config", cfg.Summary())

	client, err := bigstock.New(cfg.AccountID, cfg.SecretKey,
		bigstock.WithMode(bigstock.Mode(cfg.Mode)),
		bigstock.WithBaseURLTemplate(cfg.BaseURLTemplate),
		bigstock.WithTransportOptions(httpclient.Options{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}),
		bigstock.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("init bigstock client: %w", err)
	}
	c.client = client
	return nil
}

// show prints res and turns the error variant into a command failure.
func (c *cli) show(res bigstock.Result) error {
	if err := c.printer.Result(res); err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("%w: %v", errFailedResult, err)
	}
	return nil
}

// parseKV turns key=value arguments into alternating key/value strings.
func parseKV(args []string) ([]string, error) {
	kv := make([]string, 0, len(args)*2)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		kv = append(kv, strings.TrimSpace(key), value)
	}
	return kv, nil
}
