package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
	"github.com/polkiloo/printshop/internal/usecase"
)

// CatalogHandler serves the status registry, pricing tiers and currencies.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler creates CatalogHandler instance.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Statuses handles GET /api/statuses.
func (h *CatalogHandler) Statuses(c *gin.Context) {
	badges, err := h.facade.Statuses(c.Request.Context(), CurrentPrincipal(c).CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.OrderStatusResponse, 0, len(badges))
	for _, b := range badges {
		item := statusResponse(b.Status)
		item.TextColor = b.TextColor
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}

// CreateStatus handles POST /api/admin/statuses.
func (h *CatalogHandler) CreateStatus(c *gin.Context) {
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.facade.CreateStatus(c.Request.Context(), CurrentPrincipal(c).CompanyID, statusInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, statusResponse(*status))
}

// UpdateStatus handles PUT /api/admin/statuses/:id.
func (h *CatalogHandler) UpdateStatus(c *gin.Context) {
	statusID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := h.facade.UpdateStatus(c.Request.Context(), CurrentPrincipal(c).CompanyID, statusID, statusInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse(*status))
}

// PricingTiers handles GET /api/pricing-tiers.
func (h *CatalogHandler) PricingTiers(c *gin.Context) {
	tiers, err := h.facade.PricingTiers(c.Request.Context(), CurrentPrincipal(c).CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.PricingTierResponse, 0, len(tiers))
	for _, t := range tiers {
		resp = append(resp, tierResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePricingTier handles POST /api/admin/pricing-tiers.
func (h *CatalogHandler) CreatePricingTier(c *gin.Context) {
	var req dto.PricingTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	tier, err := h.facade.CreatePricingTier(c.Request.Context(), CurrentPrincipal(c).CompanyID, usecase.TierInput{
		Name:          req.Name,
		Label:         req.Label,
		MarkupPercent: req.MarkupPercent,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tierResponse(*tier))
}

// Currencies handles GET /api/currencies.
func (h *CatalogHandler) Currencies(c *gin.Context) {
	currencies, err := h.facade.Currencies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.CurrencyResponse, 0, len(currencies))
	for _, cur := range currencies {
		resp = append(resp, currencyResponse(cur))
	}
	c.JSON(http.StatusOK, resp)
}

// ExchangeRates handles GET /api/exchange-rates.
func (h *CatalogHandler) ExchangeRates(c *gin.Context) {
	rates, err := h.facade.ExchangeRates(c.Request.Context(), CurrentPrincipal(c).CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]dto.ExchangeRateResponse, 0, len(rates))
	for _, r := range rates {
		resp = append(resp, rateResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateExchangeRate handles POST /api/admin/exchange-rates.
func (h *CatalogHandler) CreateExchangeRate(c *gin.Context) {
	var req dto.ExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rate, err := h.facade.CreateExchangeRate(c.Request.Context(), CurrentPrincipal(c).CompanyID, usecase.RateInput{
		Currency:  req.Currency,
		Rate:      req.Rate,
		ValidFrom: req.ValidFrom,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rateResponse(*rate))
}

// CompanyCurrency handles GET /api/company/currency.
func (h *CatalogHandler) CompanyCurrency(c *gin.Context) {
	currency, err := h.facade.CompanyCurrency(c.Request.Context(), CurrentPrincipal(c).CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, currencyResponse(*currency))
}

func statusInput(req dto.OrderStatusRequest) usecase.StatusInput {
	return usecase.StatusInput{Name: req.Name, SortOrder: req.SortOrder, Color: req.Color}
}

func statusResponse(s model.OrderStatus) dto.OrderStatusResponse {
	return dto.OrderStatusResponse{ID: s.ID, Name: s.Name, SortOrder: s.SortOrder, Color: s.Color}
}

func tierResponse(t model.PricingTier) dto.PricingTierResponse {
	return dto.PricingTierResponse{
		ID:            t.ID,
		Name:          t.Name,
		Label:         t.Label,
		MarkupPercent: t.MarkupPercent,
		IsDefault:     t.IsDefault,
	}
}

func currencyResponse(c model.Currency) dto.CurrencyResponse {
	return dto.CurrencyResponse{Code: c.Code, Name: c.Name, Symbol: c.Symbol}
}

func rateResponse(r model.ExchangeRate) dto.ExchangeRateResponse {
	return dto.ExchangeRateResponse{
		ID:        r.ID,
		Currency:  r.CurrencyCode,
		Rate:      r.RateToCompanyCurrency,
		ValidFrom: r.ValidFrom,
		IsActive:  r.IsActive,
	}
}
