package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"society/internal/delivery/api/response"
	deliverycontext "society/internal/delivery/context"
	domainerrors "society/internal/domain/errors"
	"society/internal/infra/source"
	"society/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// uploadField is the multipart field holding the CSV file.
const uploadField = "file"

// ImportHandlerParams holds dependencies for ImportHandler, injected by Fx.
type ImportHandlerParams struct {
	fx.In

	ImportUC usecase.ImportUsecase
	Logger   *slog.Logger
}

// ImportHandler accepts CSV uploads and runs them through the import layer.
type ImportHandler struct {
	importUC usecase.ImportUsecase
	logger   *slog.Logger
}

// NewImportHandler is the constructor for ImportHandler
func NewImportHandler(params ImportHandlerParams) *ImportHandler {
	return &ImportHandler{
		importUC: params.ImportUC,
		logger:   params.Logger,
	}
}

// ImportLocations handles POST /admin/import/locations
func (h *ImportHandler) ImportLocations(c echo.Context) error {
	return h.run(c, usecase.ImportKindLocations)
}

// ImportEvents handles POST /admin/import/events. The optional form field
// name_fallback=true resolves locations by name for rows without
// location_external_id.
func (h *ImportHandler) ImportEvents(c echo.Context) error {
	return h.run(c, usecase.ImportKindEvents)
}

func (h *ImportHandler) run(c echo.Context, kind usecase.ImportKind) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return domainerrors.Validation("multipart field " + strconv.Quote(uploadField) + " is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domainerrors.Validation("uploaded file cannot be read")
	}
	defer file.Close()

	batch, err := source.Read(fileHeader.Filename, file, logger)
	if err != nil {
		return domainerrors.Validation("uploaded file is not valid CSV: " + err.Error())
	}

	opts := usecase.ImportOptions{Source: fileHeader.Filename}
	if raw := c.FormValue("name_fallback"); raw != "" {
		fallback, err := strconv.ParseBool(raw)
		if err != nil {
			return domainerrors.Validation("name_fallback must be a boolean")
		}
		opts.AllowNameFallback = fallback
	}

	var report *usecase.ImportReport
	switch kind {
	case usecase.ImportKindLocations:
		report, err = h.importUC.ImportLocations(ctx, batch.Rows, opts)
	default:
		report, err = h.importUC.ImportEvents(ctx, batch.Rows, opts)
	}
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, report)
}
