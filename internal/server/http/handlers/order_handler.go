package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/pricing"
	"github.com/polkiloo/printshop/internal/server/http/dto"
	"github.com/polkiloo/printshop/internal/usecase"
)

// OrderHandler serves order creation, reads and lifecycle transitions.
type OrderHandler struct {
	orders    OrderFacade
	lifecycle LifecycleFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(orders OrderFacade, lifecycle LifecycleFacade) *OrderHandler {
	return &OrderHandler{orders: orders, lifecycle: lifecycle}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tr, err := h.orders.CreateOrder(c.Request.Context(), CurrentPrincipal(c), usecase.CreateOrderInput{
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		DeliveryDate:   req.DeliveryDate,
		DeliveryMethod: model.DeliveryMethod(req.DeliveryMethod),
		TotalPrice:     req.TotalPrice,
		Currency:       req.Currency,
		PricingTierID:  req.PricingTierID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transitionResponse(tr))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := model.OrderFilter{Status: c.Query("status")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	orders, err := h.orders.Orders(c.Request.Context(), CurrentPrincipal(c).CompanyID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, orderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.orders.Order(c.Request.Context(), CurrentPrincipal(c).CompanyID, orderID, pricing.ParseVariant(c.Query("variant")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderViewResponse{
		Order:           orderResponse(view.Order),
		Price:           view.Price,
		StatusColor:     view.StatusColor,
		StatusTextColor: view.StatusTextColor,
		Delivery:        eligibilityResponse(view.Eligibility),
	})
}

// AdvanceStatus handles POST /api/orders/:id/status.
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tr, err := h.lifecycle.AdvanceStatus(c.Request.Context(), CurrentPrincipal(c).CompanyID, orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transitionResponse(tr))
}

// ConfirmPayment handles POST /api/orders/:id/payment.
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tr, err := h.lifecycle.ConfirmPayment(c.Request.Context(), CurrentPrincipal(c).CompanyID, orderID, usecase.PaymentInput{
		Method:     model.PaymentMethod(req.PaymentMethod),
		Status:     model.PaymentStatus(req.PaymentStatus),
		PaidAmount: req.PaidAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transitionResponse(tr))
}

// Delivery handles GET /api/orders/:id/delivery.
func (h *OrderHandler) Delivery(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	eligibility, err := h.lifecycle.DeliveryEligibility(c.Request.Context(), CurrentPrincipal(c).CompanyID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligibilityResponse(eligibility))
}

// Deliver handles POST /api/orders/:id/deliver. The body is optional.
func (h *OrderHandler) Deliver(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DeliverRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	tr, err := h.lifecycle.MarkDelivered(c.Request.Context(), CurrentPrincipal(c).CompanyID, orderID, model.PaymentMethod(req.BalancePaymentMethod))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transitionResponse(tr))
}

func transitionResponse(tr usecase.Transition) dto.TransitionResponse {
	resp := dto.TransitionResponse{Refresh: refreshPaths(tr.Affected)}
	if tr.Order != nil {
		resp.Order = orderResponse(*tr.Order)
	}
	return resp
}

func orderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:             o.ID,
		ClientName:     o.ClientName,
		ClientEmail:    o.ClientEmail,
		DeliveryDate:   o.DeliveryDate,
		DeliveryMethod: string(o.DeliveryMethod),
		Status:         o.Status,
		TotalPrice:     o.TotalPrice,
		PaidAmount:     o.PaidAmount,
		Currency:       o.Currency,
		BaseAmount:     o.BaseAmount,
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  string(o.PaymentStatus),
		PricingTierID:  o.PricingTierID,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func eligibilityResponse(e usecase.Eligibility) dto.EligibilityResponse {
	return dto.EligibilityResponse{Remaining: e.Remaining, BalanceDue: e.BalanceDue}
}
