// Command importer upserts locations or events from a CSV file.
//
//	importer locations -source ./data/locations.csv
//	importer events -source gs://society-imports/events.csv -name-fallback
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"society/config"
	deliverycontext "society/internal/delivery/context"
	"society/internal/domain/lifecycle"
	logs "society/internal/infra/log"
	"society/internal/infra/persistence"
	"society/internal/infra/pubsub"
	"society/internal/infra/source"
	"society/internal/usecase"
	"society/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type importFlags struct {
	kind         usecase.ImportKind
	source       string
	nameFallback bool
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(2)
	}

	// Ctrl-C stops the batch between rows; the partial report is still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*importFlags, error) {
	if len(args) < 1 {
		return nil, errors.New("missing record kind")
	}

	kind := usecase.ImportKind(args[0])
	if kind != usecase.ImportKindLocations && kind != usecase.ImportKindEvents {
		return nil, errors.Errorf("unknown record kind %q", args[0])
	}

	cmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	sourceFlag := cmd.String("source", "", "CSV path or bucket URL (file://, gs://, s3://)")
	nameFallback := cmd.Bool("name-fallback", false, "Resolve event locations by name when location_external_id is empty")
	if err := cmd.Parse(args[1:]); err != nil {
		return nil, errors.WithStack(err)
	}
	if *sourceFlag == "" {
		return nil, errors.New("-source is required")
	}

	return &importFlags{kind: kind, source: *sourceFlag, nameFallback: *nameFallback}, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: importer <locations|events> -source <path|bucket URL> [-name-fallback]")
}

func run(ctx context.Context, flags *importFlags) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	repoModule, err := persistence.Module(cfg.Storage.Driver)
	if err != nil {
		return err
	}

	var (
		importUC usecase.ImportUsecase
		logger   *slog.Logger
	)
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			logs.New,
			context.Background,
		),
		repoModule,
		pubsub.Module,
		impl.Module,
		fx.Populate(&importUC, &logger),
	)

	startCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start importer")
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Warn("Importer shutdown failed", slog.Any("error", err))
		}
	}()

	ctx, requestID := deliverycontext.NewRequestContext(ctx, logger)
	logger.Info("Import requested",
		slog.String("request_id", requestID),
		slog.String("kind", string(flags.kind)),
		slog.String("source", flags.source),
	)

	batch, err := source.Load(ctx, flags.source, logger)
	if err != nil {
		return err
	}

	opts := usecase.ImportOptions{Source: flags.source, AllowNameFallback: flags.nameFallback}

	var report *usecase.ImportReport
	switch flags.kind {
	case usecase.ImportKindLocations:
		report, err = importUC.ImportLocations(ctx, batch.Rows, opts)
	default:
		report, err = importUC.ImportEvents(ctx, batch.Rows, opts)
	}
	if report != nil {
		printReport(report)
	}

	return err
}

func printReport(report *usecase.ImportReport) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(report)
}
