package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/robomation/roboquote-api/internal/application/service"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles exchange rate and team settings HTTP requests
type SettingsHandler struct {
	ratesService    *service.RatesService
	settingsService *service.SettingsService
	bulkService     *service.BulkOperationService
	activityService *service.ActivityService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	ratesService *service.RatesService,
	settingsService *service.SettingsService,
	bulkService *service.BulkOperationService,
	activityService *service.ActivityService,
) *SettingsHandler {
	return &SettingsHandler{
		ratesService:    ratesService,
		settingsService: settingsService,
		bulkService:     bulkService,
		activityService: activityService,
	}
}

// RatesRequest represents the exchange rate update request body
type RatesRequest struct {
	USDToILSRate float64 `json:"usd_to_ils_rate" binding:"required"`
	EURToILSRate float64 `json:"eur_to_ils_rate" binding:"required"`
}

// TeamSettingsRequest represents the team settings update request body
type TeamSettingsRequest struct {
	DefaultMarkupMode  string  `json:"default_markup_mode" binding:"required"`
	DefaultMarkupValue float64 `json:"default_markup_value"`
	LaborDayCostILS    float64 `json:"labor_day_cost_ils"`
	DefaultRiskPercent float64 `json:"default_risk_percent"`
	IncludeVAT         bool    `json:"include_vat"`
	DefaultVATRate     float64 `json:"default_vat_rate"`
	PaymentTerms       string  `json:"payment_terms"`
	DeliveryTerms      string  `json:"delivery_terms"`
}

// GetRates returns the current exchange rate snapshot
// @Summary Get Exchange Rates
// @Description Get the process-wide exchange rate snapshot
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings/rates [get]
func (h *SettingsHandler) GetRates(c *gin.Context) {
	rates, err := h.ratesService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange rates retrieved", rates)
}

// UpdateRates persists new exchange rates and refreshes the snapshot
// @Summary Update Exchange Rates
// @Description Persist new exchange rates; admin only
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RatesRequest true "New rates"
// @Success 200 {object} response.APIResponse
// @Router /settings/rates [put]
func (h *SettingsHandler) UpdateRates(c *gin.Context) {
	if !IsAdmin(c) {
		response.Forbidden(c, "Admin role required")
		return
	}

	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.ratesService.UpdateRates(c.Request.Context(), req.USDToILSRate, req.EURToILSRate, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange rates updated", settings)
}

// GetTeamSettings returns the team's quotation defaults
// @Summary Get Team Settings
// @Description Get the team's quotation defaults
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings/team [get]
func (h *SettingsHandler) GetTeamSettings(c *gin.Context) {
	settings, err := h.settingsService.GetTeamSettings(c.Request.Context(), GetTeamID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Team settings retrieved", settings)
}

// UpdateTeamSettings updates the team's quotation defaults
// @Summary Update Team Settings
// @Description Update the team's quotation defaults; admin only
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body TeamSettingsRequest true "Team settings"
// @Success 200 {object} response.APIResponse
// @Router /settings/team [put]
func (h *SettingsHandler) UpdateTeamSettings(c *gin.Context) {
	if !IsAdmin(c) {
		response.Forbidden(c, "Admin role required")
		return
	}

	var req TeamSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateTeamSettings(c.Request.Context(), GetTeamID(c), &service.TeamSettingsInput{
		DefaultMarkupMode:  enum.MarkupMode(req.DefaultMarkupMode),
		DefaultMarkupValue: req.DefaultMarkupValue,
		LaborDayCostILS:    req.LaborDayCostILS,
		DefaultRiskPercent: req.DefaultRiskPercent,
		IncludeVAT:         req.IncludeVAT,
		DefaultVATRate:     req.DefaultVATRate,
		PaymentTerms:       req.PaymentTerms,
		DeliveryTerms:      req.DeliveryTerms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Team settings updated", settings)
}

// ListActivity returns the team's recent audit entries
// @Summary List Activity
// @Description Get the team's recent audit log entries
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.APIResponse
// @Router /activity [get]
func (h *SettingsHandler) ListActivity(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := parsePositiveInt(l); err == nil {
			limit = parsed
		}
	}

	entries, err := h.activityService.ListRecent(c.Request.Context(), GetTeamID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Activity retrieved", entries)
}

// PurgeExpiredMarkers removes orphaned bulk operation markers
// @Summary Purge Expired Markers
// @Description Remove bulk operation markers past their staleness bound; admin only
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings/bulk-markers/purge [post]
func (h *SettingsHandler) PurgeExpiredMarkers(c *gin.Context) {
	if !IsAdmin(c) {
		response.Forbidden(c, "Admin role required")
		return
	}

	purged, err := h.bulkService.PurgeExpired(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expired markers purged", gin.H{"purged": purged})
}
