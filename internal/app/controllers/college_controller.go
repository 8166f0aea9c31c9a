package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/app/services"
	"github.com/emrekoc/campushire/internal/middleware"
)

// CollegeController handles college onboarding operations
type CollegeController struct {
	collegeService *services.CollegeService
	logger         zerolog.Logger
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService *services.CollegeService, logger zerolog.Logger) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
		logger:         logger,
	}
}

// AddCollege registers a new college
// @Summary Register a college
// @Description Registers a new college. Name and contact email must both be unused.
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddCollegeRequest true "College details"
// @Success 200 {object} dto.APIResponse{data=dto.AddCollegeResponse} "College registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /colleges [post]
func (c *CollegeController) AddCollege(ctx *gin.Context) {
	var req dto.AddCollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	college, err := c.collegeService.AddCollege(ctx.Request.Context(), middleware.IdentityFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.AddCollegeResponse{CollegeID: college.ID}, "College added successfully"))
}

// AddSuperAdmin creates a SuperAdmin account for a college
// @Summary Create a SuperAdmin
// @Description Creates a SuperAdmin account and links it to its college atomically.
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddSuperAdminRequest true "SuperAdmin details"
// @Success 200 {object} dto.APIResponse{data=dto.AddSuperAdminResponse} "SuperAdmin created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /superadmins [post]
func (c *CollegeController) AddSuperAdmin(ctx *gin.Context) {
	var req dto.AddSuperAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID, err := c.collegeService.AddSuperAdmin(ctx.Request.Context(), middleware.IdentityFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.AddSuperAdminResponse{UserID: userID}, "Super admin created successfully"))
}

// ListColleges returns every college with its SuperAdmin's name
// @Summary List colleges
// @Description Returns all colleges with their assigned SuperAdmin, newest first.
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CollegeData}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /colleges [get]
func (c *CollegeController) ListColleges(ctx *gin.Context) {
	colleges, err := c.collegeService.ListColleges(ctx.Request.Context(), middleware.IdentityFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := make([]dto.CollegeData, 0, len(colleges))
	for _, college := range colleges {
		data = append(data, toCollegeData(college))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}

func toCollegeData(college *models.College) dto.CollegeData {
	return dto.CollegeData{
		ID:             college.ID,
		Name:           college.Name,
		Address:        college.Address,
		ContactEmail:   college.ContactEmail,
		ContactPhone:   college.ContactPhone,
		Website:        college.Website,
		SuperAdminID:   college.SuperAdminID,
		SuperAdminName: college.SuperAdminName,
		IsActive:       college.IsActive,
		CreatedAt:      college.CreatedAt,
	}
}
