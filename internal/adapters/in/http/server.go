// Package http provides the inbound HTTP adapter. It translates Echo requests
// into commands and queries and maps domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	distributeOrderHandler     commands.DistributeOrderCommandHandler
	addPackageHandler          commands.AddPackageCommandHandler
	addItemHandler             commands.AddItemToPackageCommandHandler
	removeItemHandler          commands.RemoveItemFromPackageCommandHandler
	deletePackageHandler       commands.DeletePackageCommandHandler
	updatePackageHandler       commands.UpdatePackageCommandHandler
	insertTariffRuleHandler    commands.InsertTariffRuleCommandHandler
	placeLabelsHandler         commands.PlaceShippingLabelsCommandHandler
	generateWaybillHandler     commands.GenerateWaybillCommandHandler
	applyTrackingHandler       commands.ApplyTrackingEventsCommandHandler

	// Query handlers
	getOrderPackagesHandler    queries.GetOrderPackagesQueryHandler
	resolveShippingCostHandler queries.ResolveShippingCostQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	distributeOrderHandler commands.DistributeOrderCommandHandler,
	addPackageHandler commands.AddPackageCommandHandler,
	addItemHandler commands.AddItemToPackageCommandHandler,
	removeItemHandler commands.RemoveItemFromPackageCommandHandler,
	deletePackageHandler commands.DeletePackageCommandHandler,
	updatePackageHandler commands.UpdatePackageCommandHandler,
	insertTariffRuleHandler commands.InsertTariffRuleCommandHandler,
	placeLabelsHandler commands.PlaceShippingLabelsCommandHandler,
	generateWaybillHandler commands.GenerateWaybillCommandHandler,
	applyTrackingHandler commands.ApplyTrackingEventsCommandHandler,
	getOrderPackagesHandler queries.GetOrderPackagesQueryHandler,
	resolveShippingCostHandler queries.ResolveShippingCostQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		distributeOrderHandler:     distributeOrderHandler,
		addPackageHandler:          addPackageHandler,
		addItemHandler:             addItemHandler,
		removeItemHandler:          removeItemHandler,
		deletePackageHandler:       deletePackageHandler,
		updatePackageHandler:       updatePackageHandler,
		insertTariffRuleHandler:    insertTariffRuleHandler,
		placeLabelsHandler:         placeLabelsHandler,
		generateWaybillHandler:     generateWaybillHandler,
		applyTrackingHandler:       applyTrackingHandler,
		getOrderPackagesHandler:    getOrderPackagesHandler,
		resolveShippingCostHandler: resolveShippingCostHandler,
	}
}

// RegisterRoutes binds every endpoint of the packaging and tariff API.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/distribute", s.DistributeOrder)
	api.GET("/orders/:orderId/packages", s.GetOrderPackages)
	api.POST("/orders/:orderId/packages", s.AddPackage)
	api.PATCH("/orders/:orderId/packages/:packageIndex", s.UpdatePackage)
	api.DELETE("/orders/:orderId/packages/:packageIndex", s.DeletePackage)
	api.POST("/orders/:orderId/packages/:packageIndex/items", s.AddItemToPackage)
	api.DELETE("/orders/:orderId/packages/:packageIndex/items/:productId", s.RemoveItemFromPackage)
	api.POST("/orders/:orderId/labels", s.PlaceShippingLabels)
	api.POST("/orders/:orderId/waybill", s.GenerateWaybill)

	api.POST("/tariffs", s.InsertTariffRule)
	api.GET("/shipping-cost", s.ResolveShippingCost)

	api.POST("/tracking/events", s.ApplyTrackingEvents)
}

// CreateOrder handles POST /api/v1/orders - registers a new order for packaging.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.LineItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.LineItemInput{
			ProductID:  item.ProductID,
			UnitWeight: item.UnitWeightGrams,
			Quantity:   item.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.Method, request.Subtotal, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// DistributeOrder handles POST /api/v1/orders/:orderId/distribute - runs the
// automatic greedy distribution over the order's undistributed units.
func (s *Server) DistributeOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	cmd, err := commands.NewDistributeOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid distribution request: "+err.Error())
	}

	if handleErr := s.distributeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderPackages handles GET /api/v1/orders/:orderId/packages - returns the
// composition read model of one order.
func (s *Server) GetOrderPackages(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	query, err := queries.NewGetOrderPackagesQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	result, err := s.getOrderPackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := OrderPackagesResponse{
		OrderID:           result.OrderID.String(),
		FulfillmentStatus: result.FulfillmentStatus,
		WaybillDocument:   result.WaybillDocument,
		Packages:          make([]PackageResponse, 0, len(result.Packages)),
	}
	for _, pkg := range result.Packages {
		items := make([]PackageItemResponse, 0, len(pkg.Items))
		for _, item := range pkg.Items {
			items = append(items, PackageItemResponse{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		response.Packages = append(response.Packages, PackageResponse{
			ID:            pkg.ID.String(),
			WeightGrams:   pkg.WeightGrams,
			ShippingLabel: pkg.ShippingLabel,
			LabelDocument: pkg.LabelDocument,
			Status:        pkg.Status,
			Items:         items,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddPackage handles POST /api/v1/orders/:orderId/packages - opens an empty
// package and returns its position.
func (s *Server) AddPackage(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	cmd, err := commands.NewAddPackageCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid package request: "+err.Error())
	}

	index, err := s.addPackageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AddPackageResponse{PackageIndex: index})
}

// UpdatePackage handles PATCH /api/v1/orders/:orderId/packages/:packageIndex -
// sets or clears the manual weight override and the dimensions.
func (s *Server) UpdatePackage(ctx echo.Context) error {
	orderID, packageIndex, err := parsePackageRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid package reference")
	}

	var request UpdatePackageRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var dimensions *order.Dimensions
	if request.Dimensions != nil {
		dimensions = &order.Dimensions{
			Height: request.Dimensions.Height,
			Width:  request.Dimensions.Width,
			Length: request.Dimensions.Length,
		}
	}

	cmd, err := commands.NewUpdatePackageCommand(orderID, packageIndex, request.WeightGrams, dimensions)
	if err != nil {
		return badRequest(ctx, "Invalid package data: "+err.Error())
	}

	if handleErr := s.updatePackageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeletePackage handles DELETE /api/v1/orders/:orderId/packages/:packageIndex.
func (s *Server) DeletePackage(ctx echo.Context) error {
	orderID, packageIndex, err := parsePackageRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid package reference")
	}

	cmd, err := commands.NewDeletePackageCommand(orderID, packageIndex)
	if err != nil {
		return badRequest(ctx, "Invalid package request: "+err.Error())
	}

	if handleErr := s.deletePackageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddItemToPackage handles POST /api/v1/orders/:orderId/packages/:packageIndex/items.
func (s *Server) AddItemToPackage(ctx echo.Context) error {
	orderID, packageIndex, err := parsePackageRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid package reference")
	}

	var request AddItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddItemToPackageCommand(orderID, packageIndex, request.ProductID, request.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid placement data: "+err.Error())
	}

	if handleErr := s.addItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveItemFromPackage handles
// DELETE /api/v1/orders/:orderId/packages/:packageIndex/items/:productId.
func (s *Server) RemoveItemFromPackage(ctx echo.Context) error {
	orderID, packageIndex, err := parsePackageRef(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid package reference")
	}

	cmd, err := commands.NewRemoveItemFromPackageCommand(orderID, packageIndex, ctx.Param("productId"))
	if err != nil {
		return badRequest(ctx, "Invalid removal request: "+err.Error())
	}

	if handleErr := s.removeItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlaceShippingLabels handles POST /api/v1/orders/:orderId/labels - requests a
// shipping label for every unlabeled package of a distributed order.
func (s *Server) PlaceShippingLabels(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	cmd, err := commands.NewPlaceShippingLabelsCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid label request: "+err.Error())
	}

	if handleErr := s.placeLabelsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateWaybill handles POST /api/v1/orders/:orderId/waybill - requests the
// transport document covering the order's labeled packages.
func (s *Server) GenerateWaybill(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	cmd, err := commands.NewGenerateWaybillCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid waybill request: "+err.Error())
	}

	if handleErr := s.generateWaybillHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// InsertTariffRule handles POST /api/v1/tariffs - inserts a tariff rule after
// the conflict check against the method's existing grid.
func (s *Server) InsertTariffRule(ctx echo.Context) error {
	var request InsertTariffRuleRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ruleID := kernel.NewUUID()
	cmd, err := commands.NewInsertTariffRuleCommand(
		ruleID,
		request.MethodName,
		request.Criterion,
		request.MinValue,
		request.MaxValue,
		request.Price,
		request.ShippingThreshold,
	)
	if err != nil {
		return badRequest(ctx, "Invalid tariff rule: "+err.Error())
	}

	if handleErr := s.insertTariffRuleHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, InsertTariffRuleResponse{RuleID: ruleID.String()})
}

// ResolveShippingCost handles GET /api/v1/shipping-cost - prices a delivery
// method for the given subtotal and weight.
func (s *Server) ResolveShippingCost(ctx echo.Context) error {
	subtotal, err := strconv.ParseFloat(ctx.QueryParam("subtotal"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid subtotal")
	}

	weightGrams, err := strconv.Atoi(ctx.QueryParam("weight"))
	if err != nil {
		return badRequest(ctx, "Invalid weight")
	}

	query, err := queries.NewResolveShippingCostQuery(ctx.QueryParam("method"), subtotal, weightGrams)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	result, err := s.resolveShippingCostHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, tariff.ErrNoApplicableRate) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "No applicable rate for this method",
			})
		}
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ShippingCostResponse{
		Method: result.MethodName,
		Cost:   result.Cost,
		Free:   result.Free,
	})
}

// ApplyTrackingEvents handles POST /api/v1/tracking/events - ingests a batch
// of raw carrier events and returns the normalized status per applied label.
func (s *Server) ApplyTrackingEvents(ctx echo.Context) error {
	var request TrackingEventsRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	events := make([]shipment.TrackingEvent, 0, len(request.Events))
	for _, event := range request.Events {
		events = append(events, shipment.TrackingEvent{
			LabelNumber:       event.LabelNumber,
			EventCode:         event.EventCode,
			JustificationCode: event.JustificationCode,
		})
	}

	cmd, err := commands.NewApplyTrackingEventsCommand(events)
	if err != nil {
		return badRequest(ctx, "Invalid event batch: "+err.Error())
	}

	applied, err := s.applyTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := TrackingEventsResponse{Applied: make(map[string]string, len(applied))}
	for labelNumber, status := range applied {
		response.Applied[labelNumber] = status.String()
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderId"))
}

func parsePackageRef(ctx echo.Context) (kernel.UUID, int, error) {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return kernel.UUID{}, 0, err
	}

	packageIndex, err := strconv.Atoi(ctx.Param("packageIndex"))
	if err != nil {
		return kernel.UUID{}, 0, err
	}

	return orderID, packageIndex, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps domain errors onto HTTP status codes: missing objects to
// 404, rejected state transitions and capacity violations to 409, validation
// failures to 400, everything else to 500.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrPreconditionNotMet),
		errors.Is(err, order.ErrItemTooHeavy),
		errors.Is(err, order.ErrPackageCapacityExceeded),
		errors.Is(err, order.ErrInsufficientRemainingQuantity),
		errors.Is(err, order.ErrPackageIsLabeled),
		errors.Is(err, order.ErrLabelAlreadyPlaced),
		errors.Is(err, order.ErrPackageIsEmpty),
		errors.Is(err, services.ErrOrderAlreadyDistributed),
		errors.Is(err, tariff.ErrTariffConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, shipment.ErrUnknownTrackingCode):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
