package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/service"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/internal/presentation/http/dto/response"
	"github.com/robomation/roboquote-api/pkg/pagination"
)

// ComponentHandler handles catalog component HTTP requests
type ComponentHandler struct {
	componentService *service.ComponentService
}

// NewComponentHandler creates a new component handler
func NewComponentHandler(componentService *service.ComponentService) *ComponentHandler {
	return &ComponentHandler{componentService: componentService}
}

// ComponentRequest represents the component create or update request body
type ComponentRequest struct {
	PartNumber   string `json:"part_number"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Manufacturer string `json:"manufacturer"`
	SupplierName string `json:"supplier_name"`

	UnitCostILS      float64 `json:"unit_cost_ils"`
	UnitCostUSD      float64 `json:"unit_cost_usd"`
	UnitCostEUR      float64 `json:"unit_cost_eur"`
	OriginalCurrency string  `json:"original_currency"`
}

// BulkDeleteRequest represents the bulk delete request body
type BulkDeleteRequest struct {
	ComponentIDs []string `json:"component_ids" binding:"required,min=1"`
}

func (r *ComponentRequest) toInput() *service.ComponentInput {
	return &service.ComponentInput{
		PartNumber:       r.PartNumber,
		Name:             r.Name,
		Description:      r.Description,
		Category:         r.Category,
		Manufacturer:     r.Manufacturer,
		SupplierName:     r.SupplierName,
		UnitCostILS:      r.UnitCostILS,
		UnitCostUSD:      r.UnitCostUSD,
		UnitCostEUR:      r.UnitCostEUR,
		OriginalCurrency: enum.Currency(r.OriginalCurrency),
	}
}

// List handles listing components
// @Summary List Components
// @Description Get all catalog components with pagination and filtering
// @Tags components
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param category query string false "Category filter"
// @Success 200 {object} response.APIResponse
// @Router /components [get]
func (h *ComponentHandler) List(c *gin.Context) {
	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	params := &repository.ComponentFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	components, total, err := h.componentService.ListComponents(c.Request.Context(), GetTeamID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(components,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Components retrieved successfully", result)
}

// Get handles getting a single component
// @Summary Get Component
// @Description Get a component by ID
// @Tags components
// @Security BearerAuth
// @Produce json
// @Param id path string true "Component ID"
// @Success 200 {object} response.APIResponse
// @Router /components/{id} [get]
func (h *ComponentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	component, err := h.componentService.GetComponent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Component retrieved successfully", component)
}

// Create handles creating a component
// @Summary Create Component
// @Description Create a catalog component; costs are normalized to all currencies
// @Tags components
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ComponentRequest true "Component data"
// @Success 201 {object} response.APIResponse
// @Router /components [post]
func (h *ComponentHandler) Create(c *gin.Context) {
	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	component, err := h.componentService.CreateComponent(c.Request.Context(), GetTeamID(c), GetUserID(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Component created successfully", component)
}

// Update handles updating a component
// @Summary Update Component
// @Description Update a component and re-normalize its pricing
// @Tags components
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Component ID"
// @Param request body ComponentRequest true "Component data"
// @Success 200 {object} response.APIResponse
// @Router /components/{id} [put]
func (h *ComponentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	component, err := h.componentService.UpdateComponent(c.Request.Context(), id, GetUserID(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Component updated successfully", component)
}

// Delete handles deleting a single component
// @Summary Delete Component
// @Description Delete a component
// @Tags components
// @Security BearerAuth
// @Param id path string true "Component ID"
// @Success 204
// @Router /components/{id} [delete]
func (h *ComponentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	if err := h.componentService.DeleteComponent(c.Request.Context(), id, GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// BulkDelete handles deleting many components as one logical operation
// @Summary Bulk Delete Components
// @Description Delete many components; produces a single audit summary
// @Tags components
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Component IDs"
// @Success 200 {object} response.APIResponse
// @Router /components/bulk-delete [post]
func (h *ComponentHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ids := make([]uuid.UUID, len(req.ComponentIDs))
	for i, s := range req.ComponentIDs {
		parsed, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(c, "Invalid component ID")
			return
		}
		ids[i] = parsed
	}

	deleted, err := h.componentService.BulkDelete(c.Request.Context(), GetTeamID(c), GetUserID(c), ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Components deleted", gin.H{"deleted": deleted})
}

// ApplyRates re-derives all component costs from their original currency at
// the current exchange rates
// @Summary Apply Exchange Rates
// @Description Re-derive catalog costs from original amounts at current rates
// @Tags components
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /components/apply-rates [post]
func (h *ComponentHandler) ApplyRates(c *gin.Context) {
	if !IsAdmin(c) {
		response.Forbidden(c, "Admin role required")
		return
	}

	updated, err := h.componentService.ApplyExchangeRates(c.Request.Context(), GetTeamID(c), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Exchange rates applied", gin.H{"updated": updated})
}
