// Package http exposes the production tracker over an echo HTTP API.
// The server is a thin shell: it binds and validates request DTOs, builds
// commands and queries, and maps domain error kinds to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"prodtrack/internal/core/application/usecases/commands"
	"prodtrack/internal/core/application/usecases/queries"
	"prodtrack/internal/core/domain/model/kernel"
	"prodtrack/internal/core/domain/model/order"
	"prodtrack/internal/core/domain/model/stage"
	"prodtrack/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts validator/v10 to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a request validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags and reports violations as 400s.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	transitionHandler    commands.TransitionItemStageCommandHandler
	measurementsHandler  commands.UpdateMeasurementsCommandHandler
	deleteAccountHandler commands.DeleteAccountCommandHandler

	yieldHandler       queries.GetFirstPassYieldQueryHandler
	stagesHandler      queries.GetStageDistributionQueryHandler
	completionHandler  queries.GetCompletionTimeQueryHandler
	throughputHandler  queries.GetThroughputQueryHandler
	salesHandler       queries.GetSalesQueryHandler
	regressionsHandler queries.GetItemRegressionsQueryHandler
	auditHandler       queries.GetAuditHistoryQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	transitionHandler commands.TransitionItemStageCommandHandler,
	measurementsHandler commands.UpdateMeasurementsCommandHandler,
	deleteAccountHandler commands.DeleteAccountCommandHandler,
	yieldHandler queries.GetFirstPassYieldQueryHandler,
	stagesHandler queries.GetStageDistributionQueryHandler,
	completionHandler queries.GetCompletionTimeQueryHandler,
	throughputHandler queries.GetThroughputQueryHandler,
	salesHandler queries.GetSalesQueryHandler,
	regressionsHandler queries.GetItemRegressionsQueryHandler,
	auditHandler queries.GetAuditHistoryQueryHandler,
) *Server {
	return &Server{
		transitionHandler:    transitionHandler,
		measurementsHandler:  measurementsHandler,
		deleteAccountHandler: deleteAccountHandler,
		yieldHandler:         yieldHandler,
		stagesHandler:        stagesHandler,
		completionHandler:    completionHandler,
		throughputHandler:    throughputHandler,
		salesHandler:         salesHandler,
		regressionsHandler:   regressionsHandler,
		auditHandler:         auditHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance and installs the
// request validator.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/items/:id/stage", s.TransitionItemStage)
	api.PATCH("/items/measurements", s.UpdateMeasurements)
	api.GET("/items/:id/regressions", s.GetItemRegressions)
	api.DELETE("/accounts/:id", s.DeleteAccount)
	api.GET("/reports/yield", s.GetYieldReport)
	api.GET("/reports/stages", s.GetStageReport)
	api.GET("/reports/completion", s.GetCompletionReport)
	api.GET("/reports/throughput", s.GetThroughputReport)
	api.GET("/reports/sales", s.GetSalesReport)
	api.GET("/audit/:entityType/:id", s.GetAuditHistory)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// TransitionItemStage handles POST /api/v1/items/:id/stage.
func (s *Server) TransitionItemStage(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req TransitionItemStageRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	target, err := stage.Parse(req.Stage)
	if err != nil {
		return writeError(ctx, err)
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionItemStageCommand(itemID, target, actor, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionItemStageResponse{
		ItemID:     result.Item.ID().String(),
		From:       result.Transition.From.String(),
		To:         result.Transition.To.String(),
		Direction:  result.Transition.Direction.String(),
		Regression: result.Transition.IsRegression(),
		OrderStage: result.OrderStage.String(),
		Note:       req.Note,
	})
}

// UpdateMeasurements handles PATCH /api/v1/items/measurements for one or many
// items.
func (s *Server) UpdateMeasurements(ctx echo.Context) error {
	var req UpdateMeasurementsRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	patches := make([]commands.ItemMeasurementPatch, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, idErr := kernel.UUIDFromString(item.ItemID)
		if idErr != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("itemId", idErr))
		}

		patch, patchErr := measurementPatch(item)
		if patchErr != nil {
			return writeError(ctx, patchErr)
		}

		patches = append(patches, commands.ItemMeasurementPatch{ItemID: itemID, Patch: patch})
	}

	cmd, err := commands.NewUpdateMeasurementsCommand(patches, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.measurementsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := UpdateMeasurementsResponse{Items: make([]ItemMeasurementsResponse, 0, len(result.Items))}
	for _, item := range result.Items {
		response.Items = append(response.Items, ItemMeasurementsResponse{
			ItemID:          item.ID().String(),
			Height:          item.Height(),
			Width:           item.Width(),
			Length:          item.Length(),
			Weight:          item.Weight(),
			MeasurementUnit: item.MeasurementUnit(),
			WeightUnit:      item.WeightUnit(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetItemRegressions handles GET /api/v1/items/:id/regressions.
func (s *Server) GetItemRegressions(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetItemRegressionsQuery(itemID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.regressionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RegressionResponse, 0, len(result.Regressions))
	for _, r := range result.Regressions {
		response = append(response, RegressionResponse{
			From: r.From.String(),
			To:   r.To.String(),
			Note: r.Note,
			At:   r.At,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteAccount handles DELETE /api/v1/accounts/:id. A blocked deletion is a
// 409 with the blocking order examples, not an error body.
func (s *Server) DeleteAccount(ctx echo.Context) error {
	accountID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteAccountCommand(accountID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.deleteAccountHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	if !result.Ok {
		blocking := make([]BlockingOrderResponse, 0, len(result.BlockingOrders))
		for _, o := range result.BlockingOrders {
			blocking = append(blocking, BlockingOrderResponse{
				ID:            o.ID.String(),
				PurchaseOrder: o.PurchaseOrder,
				CreatedAt:     o.CreatedAt,
			})
		}
		return ctx.JSON(http.StatusConflict, DeleteAccountResponse{
			Deleted:        false,
			Reason:         "account has existing orders",
			BlockingOrders: blocking,
			OverflowCount:  result.OverflowCount,
		})
	}

	return ctx.JSON(http.StatusOK, DeleteAccountResponse{Deleted: true})
}

// GetYieldReport handles GET /api/v1/reports/yield.
func (s *Server) GetYieldReport(ctx echo.Context) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetFirstPassYieldQuery(from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.yieldHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetStageReport handles GET /api/v1/reports/stages.
func (s *Server) GetStageReport(ctx echo.Context) error {
	result, err := s.stagesHandler.Handle(ctx.Request().Context(), queries.NewGetStageDistributionQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetCompletionReport handles GET /api/v1/reports/completion.
func (s *Server) GetCompletionReport(ctx echo.Context) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetCompletionTimeQuery(from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.completionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetThroughputReport handles GET /api/v1/reports/throughput.
func (s *Server) GetThroughputReport(ctx echo.Context) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetThroughputQuery(from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.throughputHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetSalesReport handles GET /api/v1/reports/sales.
func (s *Server) GetSalesReport(ctx echo.Context) error {
	from, to, err := parseRange(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetSalesQuery(from, to)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.salesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetAuditHistory handles GET /api/v1/audit/:entityType/:id.
func (s *Server) GetAuditHistory(ctx echo.Context) error {
	query, err := queries.NewGetAuditHistoryQuery(ctx.Param("entityType"), ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.auditHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AuditEntryJSON, 0, len(result.Entries))
	for _, entry := range result.Entries {
		response = append(response, AuditEntryJSON{
			ID:        entry.ID.String(),
			Action:    entry.Action,
			Metadata:  entry.Metadata,
			ActorID:   entry.ActorID.String(),
			ActorName: entry.ActorName,
			CreatedAt: entry.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromHeaders builds the acting user from the X-Actor-ID and
// X-Actor-Name request headers.
func actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	rawID := ctx.Request().Header.Get("X-Actor-ID")
	if rawID == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError("X-Actor-ID header")
	}

	actorID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-ID header", err)
	}

	name := ctx.Request().Header.Get("X-Actor-Name")
	if name == "" {
		return kernel.Actor{}, errs.NewValueIsRequiredError("X-Actor-Name header")
	}

	return kernel.NewActor(actorID, name)
}

// parseRange reads the from/to query parameters, accepting RFC3339 timestamps
// or plain dates. A date-only "to" extends to the end of that day.
func parseRange(ctx echo.Context) (time.Time, time.Time, error) {
	from, err := parseRangeBound(ctx.QueryParam("from"), false)
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause("from", err)
	}

	to, err := parseRangeBound(ctx.QueryParam("to"), true)
	if err != nil {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause("to", err)
	}

	return from, to, nil
}

func parseRangeBound(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing value")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}

// measurementPatch converts a request item to a domain measurement patch,
// normalizing each present field.
func measurementPatch(req ItemMeasurementsRequest) (order.MeasurementPatch, error) {
	patch := order.MeasurementPatch{
		MeasurementUnit: req.MeasurementUnit,
		WeightUnit:      req.WeightUnit,
	}

	fields := []struct {
		name string
		raw  RawField
		dst  *order.Field
	}{
		{order.FieldHeight, req.Height, &patch.Height},
		{order.FieldWidth, req.Width, &patch.Width},
		{order.FieldLength, req.Length, &patch.Length},
		{order.FieldWeight, req.Weight, &patch.Weight},
	}
	for _, f := range fields {
		if !f.raw.Present() {
			*f.dst = order.OmittedField()
			continue
		}

		normalized, err := order.NormalizeField(f.name, f.raw.Value())
		if err != nil {
			return order.MeasurementPatch{}, err
		}
		*f.dst = normalized
	}

	return patch, nil
}

// writeError maps domain error kinds to HTTP status codes with a structured
// body.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrReferentialConstraint):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrInvalidStage),
		errors.Is(err, errs.ErrInvalidMeasurement):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
