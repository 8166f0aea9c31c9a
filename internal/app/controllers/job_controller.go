package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/app/models"
	"github.com/emrekoc/campushire/internal/app/models/dto"
	"github.com/emrekoc/campushire/internal/app/services"
	"github.com/emrekoc/campushire/internal/middleware"
	"github.com/emrekoc/campushire/internal/pkg/helpers"
)

// JobController handles job posting management
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{jobService: jobService, logger: logger}
}

// CreateJob publishes a job posting
// @Summary Publish a job posting
// @Description Publishes a job posting in the caller's college.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobPostingRequest true "Job posting details"
// @Success 200 {object} dto.APIResponse{data=dto.JobPostingData} "Posting published"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /jobs [post]
func (c *JobController) CreateJob(ctx *gin.Context) {
	var req dto.CreateJobPostingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.CreateJob(ctx.Request.Context(), middleware.IdentityFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toJobData(job), "Job posting published"))
}

// GetJob returns a single job posting
// @Summary Get a job posting
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job posting ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobPostingData}
// @Failure 404 {object} dto.ErrorResponse "Posting not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	jobID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	job, err := c.jobService.GetJob(ctx.Request.Context(), middleware.IdentityFromContext(ctx), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toJobData(job), ""))
}

// UpdateJob edits a posting
// @Summary Update a job posting
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job posting ID"
// @Param request body dto.CreateJobPostingRequest true "Job posting details"
// @Success 200 {object} dto.APIResponse{data=dto.JobPostingData}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /jobs/{id} [put]
func (c *JobController) UpdateJob(ctx *gin.Context) {
	jobID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateJobPostingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.UpdateJob(ctx.Request.Context(), middleware.IdentityFromContext(ctx), jobID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toJobData(job), "Job posting updated"))
}

// CloseJob deactivates a posting
// @Summary Close a job posting
// @Description Stops a posting from accepting applications. Existing applications continue.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job posting ID"
// @Success 200 {object} dto.APIResponse "Posting closed"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /jobs/{id}/close [post]
func (c *JobController) CloseJob(ctx *gin.Context) {
	jobID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.jobService.CloseJob(ctx.Request.Context(), middleware.IdentityFromContext(ctx), jobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Job posting closed"))
}

// ListJobs returns the caller's college postings, paginated
// @Summary List job postings
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by posting type"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	page, pageSize := helpers.PaginationParams(ctx)

	var jobType *string
	if t := ctx.Query("type"); t != "" {
		jobType = &t
	}

	jobs, total, err := c.jobService.ListJobs(ctx.Request.Context(), middleware.IdentityFromContext(ctx), jobType, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := make([]dto.JobPostingData, 0, len(jobs))
	for _, job := range jobs {
		data = append(data, toJobData(job))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      data,
		Pagination: helpers.NewPaginationInfo(page, pageSize, total),
	}, ""))
}

func toJobData(job *models.JobPosting) dto.JobPostingData {
	return dto.JobPostingData{
		ID:                  job.ID,
		CollegeID:           job.CollegeID,
		Title:               job.Title,
		Description:         job.Description,
		Type:                job.Type,
		Location:            job.Location,
		SalaryMin:           job.SalaryMin,
		SalaryMax:           job.SalaryMax,
		ExperienceRequired:  job.ExperienceRequired,
		IsActive:            job.IsActive,
		ApplicationDeadline: job.ApplicationDeadline,
		CreatedAt:           job.CreatedAt,
	}
}

// pathID parses a positive integer path parameter, answering 400 on failure
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")))
		return 0, false
	}
	return id, true
}
