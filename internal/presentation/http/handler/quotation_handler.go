package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/service"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/internal/presentation/http/dto/response"
	"github.com/robomation/roboquote-api/pkg/pagination"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
	exportService    *service.ExportService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService, exportService *service.ExportService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService, exportService: exportService}
}

// CreateQuotationRequest represents the create quotation request body
type CreateQuotationRequest struct {
	CustomerID  *string `json:"customer_id"`
	ProjectName string  `json:"project_name" binding:"required"`
	Note        *string `json:"note"`
}

// UpdateQuotationRequest represents the update quotation request body
type UpdateQuotationRequest struct {
	CustomerID  *string `json:"customer_id"`
	ProjectName string  `json:"project_name"`
	Note        *string `json:"note"`
}

// ParametersRequest represents the quotation parameters request body
type ParametersRequest struct {
	USDToILSRate    float64 `json:"usd_to_ils_rate" binding:"required"`
	EURToILSRate    float64 `json:"eur_to_ils_rate" binding:"required"`
	MarkupMode      string  `json:"markup_mode" binding:"required"`
	MarkupValue     float64 `json:"markup_value"`
	LaborDayCostILS float64 `json:"labor_day_cost_ils"`
	RiskPercent     float64 `json:"risk_percent"`
	IncludeVAT      bool    `json:"include_vat"`
	VATRate         float64 `json:"vat_rate"`
	PaymentTerms    string  `json:"payment_terms"`
	DeliveryTerms   string  `json:"delivery_terms"`
}

// SystemRequest represents a system create or update request body
type SystemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
}

// ReorderRequest represents the system reorder request body
type ReorderRequest struct {
	SystemIDs []string `json:"system_ids" binding:"required,min=1"`
}

// ItemRequest represents an item create or update request body
type ItemRequest struct {
	SystemID      string  `json:"system_id"`
	ComponentID   *string `json:"component_id"`
	Name          string  `json:"name"`
	ItemType      string  `json:"item_type" binding:"required"`
	LaborSubtype  string  `json:"labor_subtype"`
	Quantity      float64 `json:"quantity"`
	UnitPriceUSD  float64 `json:"unit_price_usd"`
	UnitPriceILS  float64 `json:"unit_price_ils"`
	MarkupPercent float64 `json:"markup_percent"`
}

// StatusRequest represents the status change request body
type StatusRequest struct {
	Status int `json:"status"`
}

// List handles listing quotations
// @Summary List Quotations
// @Description Get all quotations with pagination and filtering
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	teamID := GetTeamID(c)

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

	var status *enum.QuotationStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.QuotationStatus(parsed)
			status = &st
		}
	}

	var customerID *uuid.UUID
	if cid := c.Query("customer_id"); cid != "" {
		if parsed, err := uuid.Parse(cid); err == nil {
			customerID = &parsed
		}
	}

	params := &repository.QuotationFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		Status:     status,
		CustomerID: customerID,
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	projects, total, err := h.quotationService.ListQuotations(c.Request.Context(), teamID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(projects,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Get handles getting a single quotation with full details
// @Summary Get Quotation
// @Description Get a quotation by ID with parameters, systems and items
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	project, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", project)
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Create a new quotation project with snapshotted parameters
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateQuotationRequest true "Quotation data"
// @Success 201 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	project, err := h.quotationService.CreateQuotation(c.Request.Context(), GetTeamID(c), &service.CreateQuotationInput{
		UserID:      *userID,
		CustomerID:  customerID,
		ProjectName: req.ProjectName,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", project)
}

// Update handles updating quotation metadata
// @Summary Update Quotation
// @Description Update quotation metadata
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body UpdateQuotationRequest true "Quotation data"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req UpdateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	project, err := h.quotationService.UpdateQuotation(c.Request.Context(), id, GetUserID(c), &service.UpdateQuotationInput{
		ProjectName: req.ProjectName,
		CustomerID:  customerID,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", project)
}

// Delete handles deleting a quotation
// @Summary Delete Quotation
// @Description Delete a quotation with its systems and items
// @Tags quotations
// @Security BearerAuth
// @Param id path string true "Quotation ID"
// @Success 204
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), id, GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatus handles quotation status changes
// @Summary Update Quotation Status
// @Description Change the quotation status
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Param id path string true "Quotation ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.quotationService.UpdateStatus(c.Request.Context(), id, GetUserID(c), enum.QuotationStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation status updated", nil)
}

// UpdateParameters handles replacing the quotation's pricing parameters
// @Summary Update Quotation Parameters
// @Description Replace the quotation pricing parameters and recalculate
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body ParametersRequest true "Parameters"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/parameters [put]
func (h *QuotationHandler) UpdateParameters(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req ParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	params := &entity.QuotationParameters{
		USDToILSRate:    req.USDToILSRate,
		EURToILSRate:    req.EURToILSRate,
		MarkupMode:      enum.MarkupMode(req.MarkupMode),
		MarkupValue:     req.MarkupValue,
		LaborDayCostILS: req.LaborDayCostILS,
		RiskPercent:     req.RiskPercent,
		IncludeVAT:      req.IncludeVAT,
		VATRate:         req.VATRate,
		PaymentTerms:    req.PaymentTerms,
		DeliveryTerms:   req.DeliveryTerms,
	}

	project, err := h.quotationService.UpdateParameters(c.Request.Context(), id, GetUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation parameters updated", project)
}

// Recalculate reruns the full renumber and pricing pass
// @Summary Recalculate Quotation
// @Description Rerun the renumber and pricing pass on the quotation
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/recalculate [post]
func (h *QuotationHandler) Recalculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	project, err := h.quotationService.Recalculate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation recalculated", project)
}

// AddSystem handles adding a system to the quotation
// @Summary Add System
// @Description Append a system to the quotation
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body SystemRequest true "System data"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/systems [post]
func (h *QuotationHandler) AddSystem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req SystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.quotationService.AddSystem(c.Request.Context(), id, &service.SystemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "System added", project)
}

// UpdateSystem handles updating a system
// @Summary Update System
// @Description Update a system's metadata or quantity
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param systemId path string true "System ID"
// @Param request body SystemRequest true "System data"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/systems/{systemId} [put]
func (h *QuotationHandler) UpdateSystem(c *gin.Context) {
	id, systemID, err := parseTwoIDs(c, "id", "systemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req SystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.quotationService.UpdateSystem(c.Request.Context(), id, systemID, &service.SystemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "System updated", project)
}

// DeleteSystem handles deleting a system and its items
// @Summary Delete System
// @Description Remove a system and its items, renumbering the rest
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Param systemId path string true "System ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/systems/{systemId} [delete]
func (h *QuotationHandler) DeleteSystem(c *gin.Context) {
	id, systemID, err := parseTwoIDs(c, "id", "systemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.quotationService.DeleteSystem(c.Request.Context(), id, systemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "System deleted", project)
}

// ReorderSystems handles applying a new system order
// @Summary Reorder Systems
// @Description Apply a new system order from the full ID list
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body ReorderRequest true "Ordered system IDs"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/systems/reorder [post]
func (h *QuotationHandler) ReorderSystems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	orderedIDs := make([]uuid.UUID, len(req.SystemIDs))
	for i, s := range req.SystemIDs {
		parsed, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(c, "Invalid system ID")
			return
		}
		orderedIDs[i] = parsed
	}

	project, err := h.quotationService.ReorderSystems(c.Request.Context(), id, orderedIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Systems reordered", project)
}

// AddItem handles adding an item to a system
// @Summary Add Item
// @Description Append an item to a system in the quotation
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body ItemRequest true "Item data"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/items [post]
func (h *QuotationHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	systemID, err := uuid.Parse(req.SystemID)
	if err != nil {
		response.BadRequest(c, "Invalid system ID")
		return
	}
	componentID, err := parseOptionalUUID(req.ComponentID)
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	project, err := h.quotationService.AddItem(c.Request.Context(), id, &service.ItemInput{
		SystemID:      systemID,
		ComponentID:   componentID,
		Name:          req.Name,
		ItemType:      enum.ItemType(req.ItemType),
		LaborSubtype:  enum.LaborSubtype(req.LaborSubtype),
		Quantity:      req.Quantity,
		UnitPriceUSD:  req.UnitPriceUSD,
		UnitPriceILS:  req.UnitPriceILS,
		MarkupPercent: req.MarkupPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added", project)
}

// UpdateItem handles updating an item
// @Summary Update Item
// @Description Update an item's pricing fields and recalculate
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param itemId path string true "Item ID"
// @Param request body ItemRequest true "Item data"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/items/{itemId} [put]
func (h *QuotationHandler) UpdateItem(c *gin.Context) {
	id, itemID, err := parseTwoIDs(c, "id", "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.quotationService.UpdateItem(c.Request.Context(), id, itemID, &service.ItemInput{
		Name:          req.Name,
		ItemType:      enum.ItemType(req.ItemType),
		LaborSubtype:  enum.LaborSubtype(req.LaborSubtype),
		Quantity:      req.Quantity,
		UnitPriceUSD:  req.UnitPriceUSD,
		UnitPriceILS:  req.UnitPriceILS,
		MarkupPercent: req.MarkupPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", project)
}

// DeleteItem handles deleting an item
// @Summary Delete Item
// @Description Remove an item and renumber its system's remaining items
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/items/{itemId} [delete]
func (h *QuotationHandler) DeleteItem(c *gin.Context) {
	id, itemID, err := parseTwoIDs(c, "id", "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.quotationService.DeleteItem(c.Request.Context(), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted", project)
}

// Export streams the quotation as an xlsx workbook
// @Summary Export Quotation
// @Description Download the quotation as an Excel workbook
// @Tags quotations
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quotation ID"
// @Success 200
// @Router /quotations/{id}/export.xlsx [get]
func (h *QuotationHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	data, filename, err := h.exportService.GenerateQuotationExcel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("not a positive integer: %s", s)
	}
	return n, nil
}

func parseNonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("not a non-negative integer: %s", s)
	}
	return n, nil
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseTwoIDs(c *gin.Context, first, second string) (uuid.UUID, uuid.UUID, error) {
	a, err := uuid.Parse(c.Param(first))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid %s", first)
	}
	b, err := uuid.Parse(c.Param(second))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid %s", second)
	}
	return a, b, nil
}
