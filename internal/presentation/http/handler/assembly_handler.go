package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/service"
	"github.com/robomation/roboquote-api/internal/presentation/http/dto/response"
	"github.com/robomation/roboquote-api/pkg/pagination"
)

// AssemblyHandler handles assembly HTTP requests
type AssemblyHandler struct {
	assemblyService *service.AssemblyService
}

// NewAssemblyHandler creates a new assembly handler
func NewAssemblyHandler(assemblyService *service.AssemblyService) *AssemblyHandler {
	return &AssemblyHandler{assemblyService: assemblyService}
}

// AssemblyRequest represents the assembly create or update request body
type AssemblyRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Components  []AssemblyComponentEntry  `json:"components"`
}

// AssemblyComponentEntry links a component into the assembly
type AssemblyComponentEntry struct {
	ComponentID string  `json:"component_id" binding:"required"`
	Quantity    float64 `json:"quantity"`
}

func (r *AssemblyRequest) toInput() (*service.AssemblyInput, error) {
	components := make([]service.AssemblyComponentInput, len(r.Components))
	for i, entry := range r.Components {
		id, err := uuid.Parse(entry.ComponentID)
		if err != nil {
			return nil, err
		}
		components[i] = service.AssemblyComponentInput{
			ComponentID: id,
			Quantity:    entry.Quantity,
		}
	}
	return &service.AssemblyInput{
		Name:        r.Name,
		Description: r.Description,
		Components:  components,
	}, nil
}

// List handles listing assemblies
// @Summary List Assemblies
// @Description Get all assemblies with pagination
// @Tags assemblies
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /assemblies [get]
func (h *AssemblyHandler) List(c *gin.Context) {
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

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	assemblies, total, err := h.assemblyService.ListAssemblies(c.Request.Context(), GetTeamID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(assemblies,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Assemblies retrieved successfully", result)
}

// Get handles getting a single assembly
// @Summary Get Assembly
// @Description Get an assembly with its components
// @Tags assemblies
// @Security BearerAuth
// @Produce json
// @Param id path string true "Assembly ID"
// @Success 200 {object} response.APIResponse
// @Router /assemblies/{id} [get]
func (h *AssemblyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	assembly, err := h.assemblyService.GetAssembly(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assembly retrieved successfully", assembly)
}

// Create handles creating an assembly
// @Summary Create Assembly
// @Description Create an assembly with its component list
// @Tags assemblies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AssemblyRequest true "Assembly data"
// @Success 201 {object} response.APIResponse
// @Router /assemblies [post]
func (h *AssemblyHandler) Create(c *gin.Context) {
	var req AssemblyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	assembly, err := h.assemblyService.CreateAssembly(c.Request.Context(), GetTeamID(c), GetUserID(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Assembly created successfully", assembly)
}

// Update handles updating an assembly
// @Summary Update Assembly
// @Description Update assembly metadata and replace its component list
// @Tags assemblies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Assembly ID"
// @Param request body AssemblyRequest true "Assembly data"
// @Success 200 {object} response.APIResponse
// @Router /assemblies/{id} [put]
func (h *AssemblyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	var req AssemblyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	assembly, err := h.assemblyService.UpdateAssembly(c.Request.Context(), id, GetUserID(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assembly updated successfully", assembly)
}

// Delete handles deleting an assembly
// @Summary Delete Assembly
// @Description Delete an assembly and its component links
// @Tags assemblies
// @Security BearerAuth
// @Param id path string true "Assembly ID"
// @Success 204
// @Router /assemblies/{id} [delete]
func (h *AssemblyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	if err := h.assemblyService.DeleteAssembly(c.Request.Context(), id, GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Cost handles the assembly cost rollup
// @Summary Assembly Cost
// @Description Get the summed component cost per currency
// @Tags assemblies
// @Security BearerAuth
// @Produce json
// @Param id path string true "Assembly ID"
// @Success 200 {object} response.APIResponse
// @Router /assemblies/{id}/cost [get]
func (h *AssemblyHandler) Cost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	cost, err := h.assemblyService.CalculateCost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Assembly cost calculated", cost)
}
