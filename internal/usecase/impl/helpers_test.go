package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"society/config"
	"society/internal/domain/service"
	"society/internal/infra/persistence/memory"
	"society/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPublisher records import completion events.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishImportCompleted(ctx context.Context, event *service.ImportCompletedEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type testFixture struct {
	store     *memory.Store
	publisher *mockPublisher
	locations usecase.LocationUsecase
	events    usecase.EventUsecase
	members   usecase.MemberUsecase
	imports   usecase.ImportUsecase
}

func newTestFixture(t *testing.T, mutate ...func(*config.Config)) *testFixture {
	t.Helper()

	cfg := &config.Config{
		Directory: &config.DirectoryConfig{DefaultRadiusKm: 25, MaxRadiusKm: 500},
		Import:    &config.ImportConfig{TimeZone: "UTC"},
	}
	for _, fn := range mutate {
		fn(cfg)
	}

	logger := discardLogger()
	store := memory.NewStore()
	publisher := &mockPublisher{}
	publisher.On("PublishImportCompleted", mock.Anything, mock.Anything).Return(nil).Maybe()

	imports, err := NewImportService(ImportServiceParams{
		TxManager: store,
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	})
	require.NoError(t, err)

	return &testFixture{
		store:     store,
		publisher: publisher,
		locations: NewLocationService(store, store.Locations(), logger),
		events:    NewEventService(store, store.Events(), cfg, logger),
		members:   NewMemberService(store, store.MemberProfiles(), logger),
		imports:   imports,
	}
}

// csvRows turns a header and data lines into import rows. Each data line
// is assumed to occupy one source line.
func csvRows(header string, lines ...string) []usecase.ImportRow {
	columns := strings.Split(header, "|")
	rows := make([]usecase.ImportRow, 0, len(lines))
	for i, line := range lines {
		values := strings.Split(line, "|")
		fields := make(map[string]string, len(columns))
		for j, column := range columns {
			if j < len(values) {
				fields[column] = values[j]
			}
		}
		rows = append(rows, usecase.ImportRow{Number: i + 1, Line: i + 2, Fields: fields})
	}

	return rows
}

const locationHeader = "name|category|address|website|country_code|related_store_external_id|coordinates"

const eventHeader = "event_external_id|title|description|banner_image|event_type|start_date|end_date|design_template_external_id|location_external_id|location"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floatPtr(v float64) *float64 {
	return &v
}
