package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irvrobbi/promusic/internal/config"
	"github.com/irvrobbi/promusic/internal/metrics"
	"github.com/irvrobbi/promusic/internal/observability"
	"github.com/irvrobbi/promusic/internal/providers/pdf"
	"github.com/irvrobbi/promusic/internal/quote"
	quotedomain "github.com/irvrobbi/promusic/internal/quote/domain"
	"github.com/irvrobbi/promusic/internal/ratecard"
	"github.com/irvrobbi/promusic/internal/ratecard/seed"
	"github.com/irvrobbi/promusic/internal/ratelimit"
	"github.com/irvrobbi/promusic/internal/receipt"
	"github.com/irvrobbi/promusic/internal/server"
	"github.com/irvrobbi/promusic/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "promusic",
		Short:   "Production music licence quote engine",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newSeedCmd(), newServeCmd(), newQuoteCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the 2025 rate card into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the quote API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newQuoteCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Compute a single estimate from a JSON request and print the receipt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(input)
		},
	}
	cmd.Flags().StringVarP(&input, "file", "f", "-", "request JSON file, - for stdin")
	return cmd
}

func runSeed() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		fx.Invoke(ensureRateCard),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	return app.Stop(context.Background())
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		metrics.Module,
		db.Module,
		fx.Invoke(ensureRateCard),
		ratecard.Module,
		quote.Module,
		pdf.Module,
		ratelimit.Module,
		server.Module,
	)
	app.Run()
}

func runQuote(input string) error {
	req, err := readRequest(input)
	if err != nil {
		return err
	}

	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		fx.Invoke(ensureRateCard),
		ratecard.Module,
		quote.Module,
		fx.Invoke(func(svc quotedomain.Service, log *zap.Logger) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := svc.Compute(ctx, *req)
			if err != nil {
				return err
			}

			issuedAt := time.Now().UTC()
			number, err := receipt.FormatQuoteNumber(receipt.DefaultQuoteNumberTemplate, issuedAt, 1)
			if err == nil {
				result.QuoteNumber = number
			}
			fmt.Print(receipt.Render(result, issuedAt))
			return nil
		}),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("quote failed: %w", err)
	}
	return app.Stop(context.Background())
}

func readRequest(input string) (*quotedomain.LicenseRequest, error) {
	var raw []byte
	var err error
	if input == "-" || input == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(input)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var req quotedomain.LicenseRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return &req, nil
}

func ensureRateCard(gdb *gorm.DB, log *zap.Logger) error {
	if err := seed.Ensure2025Card(gdb); err != nil {
		return err
	}
	log.Debug("rate card ready")
	return nil
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
