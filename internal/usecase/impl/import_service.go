package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"society/config"
	deliverycontext "society/internal/delivery/context"
	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"
	"society/internal/domain/lifecycle"
	"society/internal/domain/repository"
	"society/internal/domain/service"
	"society/internal/errors"
	"society/internal/usecase"
	"society/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// ImportServiceParams defines the dependencies of the import service.
type ImportServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// importService implements the ImportUsecase interface.
type importService struct {
	txManager         repository.TransactionManager
	publisher         service.EventPublisher
	location          *time.Location
	allowNameFallback bool
	logger            *slog.Logger
}

// NewImportService is the constructor for importService.
func NewImportService(params ImportServiceParams) (usecase.ImportUsecase, error) {
	timeZone := config.DefaultImportTimeZone
	allowNameFallback := false
	if params.Config != nil && params.Config.Import != nil {
		if params.Config.Import.TimeZone != "" {
			timeZone = params.Config.Import.TimeZone
		}
		allowNameFallback = params.Config.Import.AllowNameFallback
	}

	location, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid import time zone %q", timeZone)
	}

	return &importService{
		txManager:         params.TxManager,
		publisher:         params.Publisher,
		location:          location,
		allowNameFallback: allowNameFallback,
		logger:            params.Logger,
	}, nil
}

// UpsertLocation creates or updates the location described by row. The key
// is related_store_external_id when present, otherwise (name, country_code).
func (srv *importService) UpsertLocation(ctx context.Context, row usecase.ImportRow) (usecase.UpsertOutcome, *entity.Location, error) {
	location, err := parseLocationRow(row)
	if err != nil {
		return "", nil, err
	}

	var outcome usecase.UpsertOutcome
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()

		var existing *entity.Location
		var findErr error
		if location.RelatedStoreExternalID != "" {
			existing, findErr = locationRepo.FindLocationByExternalID(ctx, location.RelatedStoreExternalID)
		} else {
			existing, findErr = locationRepo.FindLocationByNameAndCountry(ctx, location.Name, location.CountryCode)
		}

		switch {
		case findErr == nil:
			location.ID = existing.ID
			location.CreatedAt = existing.CreatedAt
			outcome = usecase.OutcomeUpdated

			return translateRepoError(locationRepo.UpdateLocation(ctx, location))
		case errors.Is(findErr, repository.ErrLocationNotFound):
			outcome = usecase.OutcomeCreated

			return translateRepoError(locationRepo.CreateLocation(ctx, location))
		default:
			return findErr
		}
	})
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to upsert location")
	}

	return outcome, location, nil
}

// UpsertEvent creates or updates the event keyed by event_external_id.
func (srv *importService) UpsertEvent(ctx context.Context, row usecase.ImportRow, opts usecase.ImportOptions) (usecase.UpsertOutcome, *entity.Event, error) {
	event, err := parseEventRow(row, srv.location)
	if err != nil {
		return "", nil, err
	}
	allowNameFallback := srv.allowNameFallback || opts.AllowNameFallback

	var outcome usecase.UpsertOutcome
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		location, err := resolveEventLocation(ctx, repoFactory.NewLocationRepository(), row, allowNameFallback)
		if err != nil {
			return err
		}
		event.LocationID = location.ID
		event.Location = location

		if err := event.Validate(); err != nil {
			return err
		}

		eventRepo := repoFactory.NewEventRepository()
		existing, err := eventRepo.FindEventByExternalID(ctx, event.ExternalID)
		switch {
		case err == nil:
			event.ID = existing.ID
			event.CreatedAt = existing.CreatedAt
			outcome = usecase.OutcomeUpdated

			return translateRepoError(eventRepo.UpdateEvent(ctx, event))
		case errors.Is(err, repository.ErrEventNotFound):
			outcome = usecase.OutcomeCreated

			return translateRepoError(eventRepo.CreateEvent(ctx, event))
		default:
			return err
		}
	})
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to upsert event")
	}

	return outcome, event, nil
}

// resolveEventLocation finds the location an event row points at. Name
// matching is tried only when allowed and no external id is given: first an
// exact case-insensitive match, then a substring match on the part of the
// name before any "(". Anything but a single match is ambiguous.
func resolveEventLocation(ctx context.Context, locationRepo repository.LocationRepository, row usecase.ImportRow, allowNameFallback bool) (*entity.Location, error) {
	if externalID := row.Get(colLocationExternalID); externalID != "" {
		location, err := locationRepo.FindLocationByExternalID(ctx, externalID)
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, domainerrors.ErrLocationNotFound.WithDetails("no location with related_store_external_id " + strconv.Quote(externalID))
		}

		return location, err
	}

	name := row.Get(colLocation)
	if !allowNameFallback {
		return nil, domainerrors.Validation("missing location_external_id")
	}
	if name == "" {
		return nil, domainerrors.Validation("missing location (or location_external_id)")
	}

	exact, err := locationRepo.FindLocationsByName(ctx, name, true)
	if err != nil {
		return nil, err
	}
	if len(exact) == 1 {
		return exact[0], nil
	}

	prefix := locationNamePrefix(name)
	if prefix == "" {
		return nil, domainerrors.ErrAmbiguousLocationReference.WithDetails("location name " + strconv.Quote(name) + " is empty before '('")
	}
	partial, err := locationRepo.FindLocationsByName(ctx, prefix, false)
	if err != nil {
		return nil, err
	}

	switch len(partial) {
	case 1:
		return partial[0], nil
	case 0:
		return nil, domainerrors.ErrAmbiguousLocationReference.WithDetails(
			fmt.Sprintf("no location matches name %q; add location_external_id", name))
	default:
		return nil, domainerrors.ErrAmbiguousLocationReference.WithDetails(
			fmt.Sprintf("%d locations match name %q; add location_external_id", len(partial), name))
	}
}

// ImportLocations upserts every row in order.
func (srv *importService) ImportLocations(ctx context.Context, rows []usecase.ImportRow, opts usecase.ImportOptions) (*usecase.ImportReport, error) {
	return srv.runBatch(ctx, usecase.ImportKindLocations, rows, opts,
		func(ctx context.Context, row usecase.ImportRow) (usecase.UpsertOutcome, error) {
			outcome, _, err := srv.UpsertLocation(ctx, row)

			return outcome, err
		})
}

// ImportEvents upserts every row in order.
func (srv *importService) ImportEvents(ctx context.Context, rows []usecase.ImportRow, opts usecase.ImportOptions) (*usecase.ImportReport, error) {
	return srv.runBatch(ctx, usecase.ImportKindEvents, rows, opts,
		func(ctx context.Context, row usecase.ImportRow) (usecase.UpsertOutcome, error) {
			outcome, _, err := srv.UpsertEvent(ctx, row, opts)

			return outcome, err
		})
}

type upsertFunc func(ctx context.Context, row usecase.ImportRow) (usecase.UpsertOutcome, error)

// runBatch applies rows one by one, each in its own transaction. Row errors
// become skips; cancellation stops the batch between rows.
func (srv *importService) runBatch(ctx context.Context, kind usecase.ImportKind, rows []usecase.ImportRow, opts usecase.ImportOptions, apply upsertFunc) (*usecase.ImportReport, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	started := time.Now()
	report := &usecase.ImportReport{
		BatchID: uuid.NewString(),
		Kind:    kind,
		Skips:   []usecase.ImportSkip{},
	}

	logger.Info("Import batch started",
		slog.String("batch_id", report.BatchID),
		slog.String("kind", string(kind)),
		slog.String("source", opts.Source),
		slog.Int("rows", len(rows)),
	)

	var interruptErr error
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			interruptErr = err

			break
		}

		var outcome usecase.UpsertOutcome
		err := row.Err
		if err == nil {
			outcome, err = apply(ctx, row)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				interruptErr = ctxErr

				break
			}

			report.Skipped++
			report.Skips = append(report.Skips, usecase.ImportSkip{
				Row:    row.Number,
				Line:   row.Line,
				Reason: skipReason(err),
				Code:   domainerrors.Code(err),
			})
			logger.Warn("Import row skipped",
				slog.String("batch_id", report.BatchID),
				slog.Int("row", row.Number),
				slog.Int("line", row.Line),
				slog.String("error", err.Error()),
			)

			continue
		}

		switch outcome {
		case usecase.OutcomeCreated:
			report.Created++
		case usecase.OutcomeUpdated:
			report.Updated++
		}
	}
	report.Interrupted = interruptErr != nil

	logger.Info("Import batch finished",
		slog.String("batch_id", report.BatchID),
		slog.String("kind", string(kind)),
		slog.Int("created", report.Created),
		slog.Int("updated", report.Updated),
		slog.Int("skipped", report.Skipped),
		slog.Bool("interrupted", report.Interrupted),
		slog.String("duration", util.FormatDuration(time.Since(started))),
	)

	srv.publishCompleted(ctx, report, opts)

	if interruptErr != nil {
		return report, errors.Wrap(interruptErr, "import interrupted")
	}

	return report, nil
}

// publishCompleted announces the batch. Failures are logged only; the
// import itself already succeeded.
func (srv *importService) publishCompleted(ctx context.Context, report *usecase.ImportReport, opts usecase.ImportOptions) {
	if srv.publisher == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	event := &service.ImportCompletedEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		BatchID:     report.BatchID,
		Kind:        string(report.Kind),
		Source:      opts.Source,
		Created:     report.Created,
		Updated:     report.Updated,
		Skipped:     report.Skipped,
		Interrupted: report.Interrupted,
		FinishedAt:  time.Now().UTC(),
	}
	if err := srv.publisher.PublishImportCompleted(publishCtx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Warn("Failed to publish import completion",
			slog.String("batch_id", report.BatchID),
			slog.String("error", err.Error()),
		)
	}
}

// skipReason prefers the application error message over the wrap chain.
func skipReason(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}

	return err.Error()
}
