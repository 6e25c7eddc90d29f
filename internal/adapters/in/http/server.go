// Package http exposes the marketplace over a JSON REST API.
// Handlers translate requests into commands and queries; all business rules
// live behind them. The actor performing a mutation is carried explicitly in
// the request body; identity verification sits outside this service.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	submitBidHandler         commands.SubmitBidCommandHandler
	selectBidHandler         commands.SelectBidCommandHandler
	depositEscrowHandler     commands.DepositEscrowCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	submitReviewHandler      commands.SubmitReviewCommandHandler

	// Query handlers
	getOpenOrdersHandler      queries.GetOpenOrdersQueryHandler
	getOrderBidsHandler       queries.GetOrderBidsQueryHandler
	getWalletStatementHandler queries.GetWalletStatementQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	submitBidHandler commands.SubmitBidCommandHandler,
	selectBidHandler commands.SelectBidCommandHandler,
	depositEscrowHandler commands.DepositEscrowCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	submitReviewHandler commands.SubmitReviewCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOrderBidsHandler queries.GetOrderBidsQueryHandler,
	getWalletStatementHandler queries.GetWalletStatementQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		submitBidHandler:          submitBidHandler,
		selectBidHandler:          selectBidHandler,
		depositEscrowHandler:      depositEscrowHandler,
		updateOrderStatusHandler:  updateOrderStatusHandler,
		submitReviewHandler:       submitReviewHandler,
		getOpenOrdersHandler:      getOpenOrdersHandler,
		getOrderBidsHandler:       getOrderBidsHandler,
		getWalletStatementHandler: getWalletStatementHandler,
	}
}

// RegisterRoutes attaches all marketplace endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.POST("/orders/:orderId/bids", s.SubmitBid)
	api.GET("/orders/:orderId/bids", s.GetOrderBids)
	api.POST("/orders/:orderId/selection", s.SelectBid)
	api.POST("/orders/:orderId/escrow", s.DepositEscrow)
	api.POST("/orders/:orderId/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderId/reviews", s.SubmitReview)
	api.GET("/wallets/:userId", s.GetWalletStatement)

	e.GET("/health", s.Health)
}

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrder handles POST /api/v1/orders - publishes a new order for bidding.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req struct {
		StoreID       string `json:"storeId"`
		Description   string `json:"description"`
		Price         int64  `json:"price"`
		SuggestedFee  int64  `json:"suggestedFee"`
		Address       string `json:"address"`
		ClientContact string `json:"clientContact"`
	}
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store ID")
	}

	price, err := kernel.NewMoney(req.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price")
	}

	suggestedFee, err := kernel.NewMoney(req.SuggestedFee)
	if err != nil {
		return badRequest(ctx, "Invalid suggested fee")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, storeID, req.Description, price, suggestedFee, req.Address, req.ClientContact,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOpenOrders handles GET /api/v1/orders/open - the courier-facing listing.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve open orders")
	}

	type openOrder struct {
		ID           string `json:"id"`
		StoreID      string `json:"storeId"`
		Description  string `json:"description"`
		Price        int64  `json:"price"`
		SuggestedFee int64  `json:"suggestedFee"`
		Address      string `json:"address"`
		CreatedAt    string `json:"createdAt"`
	}

	response := make([]openOrder, 0, len(orders))
	for _, o := range orders {
		response = append(response, openOrder{
			ID:           o.ID.String(),
			StoreID:      o.StoreID.String(),
			Description:  o.Description,
			Price:        o.Price,
			SuggestedFee: o.SuggestedFee,
			Address:      o.Address,
			CreatedAt:    o.CreatedAt.Format(timeFormat),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitBid handles POST /api/v1/orders/:orderId/bids - places or replaces
// a courier's bid on an open order.
func (s *Server) SubmitBid(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req struct {
		CourierID   string `json:"courierId"`
		CourierName string `json:"courierName"`
		Amount      int64  `json:"amount"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier ID")
	}

	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid bid amount")
	}

	cmd, err := commands.NewSubmitBidCommand(kernel.NewUUID(), orderID, courierID, req.CourierName, amount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.submitBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderBids handles GET /api/v1/orders/:orderId/bids - the store's
// comparison view, cheapest bid first.
func (s *Server) GetOrderBids(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderBidsQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	bids, err := s.getOrderBidsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve bids")
	}

	type orderBid struct {
		ID          string `json:"id"`
		CourierID   string `json:"courierId"`
		CourierName string `json:"courierName"`
		Amount      int64  `json:"amount"`
		UpdatedAt   string `json:"updatedAt"`
	}

	response := make([]orderBid, 0, len(bids))
	for _, b := range bids {
		response = append(response, orderBid{
			ID:          b.ID.String(),
			CourierID:   b.CourierID.String(),
			CourierName: b.CourierName,
			Amount:      b.Amount,
			UpdatedAt:   b.UpdatedAt.Format(timeFormat),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SelectBid handles POST /api/v1/orders/:orderId/selection - the store picks
// the winning bid, closing the auction.
func (s *Server) SelectBid(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req struct {
		ActorID string `json:"actorId"`
		BidID   string `json:"bidId"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	bidID, err := kernel.UUIDFromString(req.BidID)
	if err != nil {
		return badRequest(ctx, "Invalid bid ID")
	}

	cmd, err := commands.NewSelectBidCommand(orderID, bidID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.selectBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DepositEscrow handles POST /api/v1/orders/:orderId/escrow - either party
// locks up its escrow deposit. The side is inferred from the actor.
func (s *Server) DepositEscrow(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req struct {
		ActorID string `json:"actorId"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	cmd, err := commands.NewDepositEscrowCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.depositEscrowHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles POST /api/v1/orders/:orderId/status - advances
// fulfillment; reaching Completed triggers settlement.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req struct {
		ActorID string `json:"actorId"`
		Status  string `json:"status"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitReview handles POST /api/v1/orders/:orderId/reviews - one review per
// side on a completed order.
func (s *Server) SubmitReview(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var req struct {
		ReviewerID string `json:"reviewerId"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
	}
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	reviewerID, err := kernel.UUIDFromString(req.ReviewerID)
	if err != nil {
		return badRequest(ctx, "Invalid reviewer ID")
	}

	reviewID := kernel.NewUUID()
	cmd, err := commands.NewSubmitReviewCommand(reviewID, orderID, reviewerID, req.Rating, req.Comment)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.submitReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": reviewID.String()})
}

// GetWalletStatement handles GET /api/v1/wallets/:userId - balances plus the
// full ledger history. A user that never transacted gets a zero statement.
func (s *Server) GetWalletStatement(ctx echo.Context) error {
	userID, err := pathUUID(ctx, "userId")
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	query, err := queries.NewGetWalletStatementQuery(userID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	statement, err := s.getWalletStatementHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve wallet statement")
	}

	type statementEntry struct {
		ID          string `json:"id"`
		Direction   string `json:"direction"`
		Amount      int64  `json:"amount"`
		EscrowDelta int64  `json:"escrowDelta"`
		Description string `json:"description"`
		CreatedAt   string `json:"createdAt"`
	}

	entries := make([]statementEntry, 0, len(statement.Transactions))
	for _, tx := range statement.Transactions {
		entries = append(entries, statementEntry{
			ID:          tx.ID.String(),
			Direction:   tx.Direction,
			Amount:      tx.Amount,
			EscrowDelta: tx.EscrowDelta,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt.Format(timeFormat),
		})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"userId":       statement.UserID.String(),
		"balance":      statement.Balance,
		"escrow":       statement.Escrow,
		"transactions": entries,
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

const timeFormat = time.RFC3339

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// domainError maps application errors onto HTTP statuses by their sentinel.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthenticated):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrStateConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
