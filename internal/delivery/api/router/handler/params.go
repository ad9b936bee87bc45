package handler

import (
	"math"
	"strconv"
	"strings"

	"society/internal/domain/entity"
	domainerrors "society/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.Validation("invalid " + name + " " + strconv.Quote(c.Param(name)))
	}

	return id, nil
}

func queryInt64(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domainerrors.Validation(name + " must be an integer")
	}

	return v, nil
}

func queryFloat(c echo.Context, name string, required bool) (float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		if required {
			return 0, domainerrors.Validation(name + " is required")
		}

		return 0, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domainerrors.Validation(name + " must be a finite number")
	}

	return v, nil
}

// queryBool reads an optional boolean, returning def when absent.
func queryBool(c echo.Context, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, domainerrors.Validation(name + " must be a boolean")
	}

	return v, nil
}

// queryCategory reads an exact category filter. Unknown names are rejected
// rather than silently mapped to the default category.
func queryCategory(c echo.Context) (*entity.LocationCategory, error) {
	raw := strings.TrimSpace(c.QueryParam("category"))
	if raw == "" {
		return nil, nil
	}

	category := entity.LocationCategory(strings.ToUpper(raw))
	if !category.IsValid() {
		return nil, domainerrors.Validation("unknown category " + strconv.Quote(raw))
	}

	return &category, nil
}

func queryEventType(c echo.Context) (*entity.EventType, error) {
	raw := strings.TrimSpace(c.QueryParam("event_type"))
	if raw == "" {
		return nil, nil
	}

	eventType, ok := entity.ParseEventType(raw)
	if !ok {
		return nil, domainerrors.Validation("unknown event_type " + strconv.Quote(raw))
	}

	return &eventType, nil
}

// bindAndValidate binds the request body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.Validation("malformed request body")
	}

	return c.Validate(req)
}
