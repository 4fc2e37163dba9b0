package handler

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/loghive/loghive/internal/auth"
	"github.com/loghive/loghive/internal/metrics"
	"github.com/loghive/loghive/internal/model"
	"github.com/loghive/loghive/internal/query"
	"github.com/loghive/loghive/internal/response"
)

// LogStore is the persistence surface the handler needs: one atomic insert
// and one filtered read. Implemented by repository.LogRepository.
type LogStore interface {
	Insert(ctx context.Context, rec *model.LogRecord) error
	List(ctx context.Context, spec query.FilterSpec) ([]model.LogRecord, error)
}

// LogHandler handles POST /logs and GET /logs. Both routes run behind the
// auth middleware, so a resolved tenant is always present on the context.
type LogHandler struct {
	store    LogStore
	validate *validator.Validate
}

// NewLogHandler returns a LogHandler over the given store.
func NewLogHandler(store LogStore) *LogHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &LogHandler{store: store, validate: v}
}

type createLogRequest struct {
	Tenant    string     `json:"tenant" validate:"required"`
	EventTime *time.Time `json:"event_time" validate:"required"`
	Severity  string     `json:"severity" validate:"required"`
	Message   string     `json:"message" validate:"required"`
}

// CreateLog validates and persists one record (POST /logs). id and
// received_at are server-assigned; a body carrying them (or any other
// unknown field) is rejected rather than silently stripped.
func (h *LogHandler) CreateLog(c echo.Context) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	var req createLogRequest
	if err := dec.Decode(&req); err != nil {
		return response.BadRequest(c, "invalid log payload", err.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return response.BadRequest(c, "invalid log payload", "missing or invalid field: "+verrs[0].Field())
		}
		return response.BadRequest(c, "invalid log payload", err.Error())
	}

	rec := &model.LogRecord{
		Tenant:    req.Tenant,
		EventTime: *req.EventTime,
		Severity:  req.Severity,
		Message:   req.Message,
	}
	if err := h.store.Insert(c.Request().Context(), rec); err != nil {
		return response.InternalError(c, "store log failed", err.Error())
	}
	metrics.IngestedRecords.WithLabelValues(rec.Tenant, rec.Severity).Inc()
	return response.Created(c, rec, "")
}

// ListLogs returns the authenticated tenant's records, newest ingested
// first, narrowed by any optional filters (GET /logs).
func (h *LogHandler) ListLogs(c echo.Context) error {
	tenant := auth.TenantFromContext(c)

	var params query.Params
	var err error
	if params.EventTimeStart, err = timeParam(c, "event_time_start"); err != nil {
		return response.BadRequest(c, "invalid filter", err.Error())
	}
	if params.EventTimeEnd, err = timeParam(c, "event_time_end"); err != nil {
		return response.BadRequest(c, "invalid filter", err.Error())
	}
	if params.ReceivedAtStart, err = timeParam(c, "received_at_start"); err != nil {
		return response.BadRequest(c, "invalid filter", err.Error())
	}
	if params.ReceivedAtEnd, err = timeParam(c, "received_at_end"); err != nil {
		return response.BadRequest(c, "invalid filter", err.Error())
	}
	params.Severity = c.QueryParam("severity")
	params.Tenant = c.QueryParam("tenant")

	spec, err := query.Build(params, tenant)
	if err != nil {
		var forbidden *query.ForbiddenError
		if errors.As(err, &forbidden) {
			metrics.ForbiddenOverrides.Inc()
			return response.Forbidden(c, "tenant not allowed", forbidden.Error())
		}
		return response.BadRequest(c, "invalid filter", err.Error())
	}

	list, err := h.store.List(c.Request().Context(), spec)
	if err != nil {
		return response.InternalError(c, "list logs failed", err.Error())
	}
	metrics.LogQueries.WithLabelValues(tenant).Inc()
	return response.OK(c, list, "")
}

// timeParam parses an optional RFC3339 query parameter.
func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.New(name + " must be an RFC3339 timestamp")
	}
	return &t, nil
}
