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

// PlacementController handles the application lifecycle endpoints
type PlacementController struct {
	placementService *services.PlacementService
	logger           zerolog.Logger
}

// NewPlacementController creates a new PlacementController
func NewPlacementController(placementService *services.PlacementService, logger zerolog.Logger) *PlacementController {
	return &PlacementController{placementService: placementService, logger: logger}
}

// Apply submits an application to a job posting
// @Summary Apply to a job posting
// @Description Submits the calling student's application. At most one application per posting.
// @Tags placements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplyRequest true "Job posting to apply to"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationData} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /applications [post]
func (c *PlacementController) Apply(ctx *gin.Context) {
	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	app, err := c.placementService.Apply(ctx.Request.Context(), middleware.IdentityFromContext(ctx), req.JobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toApplicationData(app), "Application submitted"))
}

// Shortlist moves an application to Shortlisted
// @Summary Shortlist an application
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse "Application shortlisted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /applications/{id}/shortlist [post]
func (c *PlacementController) Shortlist(ctx *gin.Context) {
	appID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.Shortlist(ctx.Request.Context(), middleware.IdentityFromContext(ctx), appID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application shortlisted"))
}

// Reject moves an application to Rejected
// @Summary Reject an application
// @Description Rejects a shortlisted or interviewed application. Terminal applications never move again.
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse "Application rejected"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /applications/{id}/reject [post]
func (c *PlacementController) Reject(ctx *gin.Context) {
	appID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.Reject(ctx.Request.Context(), middleware.IdentityFromContext(ctx), appID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application rejected"))
}

// ScheduleInterview schedules an interview round
// @Summary Schedule an interview
// @Description Schedules an interview round for a shortlisted application.
// @Tags placements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleInterviewRequest true "Interview details"
// @Success 200 {object} dto.APIResponse{data=dto.InterviewData} "Interview scheduled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /interviews [post]
func (c *PlacementController) ScheduleInterview(ctx *gin.Context) {
	var req dto.ScheduleInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	interview, err := c.placementService.ScheduleInterview(ctx.Request.Context(), middleware.IdentityFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toInterviewData(interview), "Interview scheduled"))
}

// CompleteInterview marks an interview round completed
// @Summary Complete an interview round
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.APIResponse "Interview completed"
// @Router /interviews/{id}/complete [post]
func (c *PlacementController) CompleteInterview(ctx *gin.Context) {
	interviewID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.CompleteInterview(ctx.Request.Context(), middleware.IdentityFromContext(ctx), interviewID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Interview completed"))
}

// CancelInterview marks an interview round cancelled
// @Summary Cancel an interview round
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.APIResponse "Interview cancelled"
// @Router /interviews/{id}/cancel [post]
func (c *PlacementController) CancelInterview(ctx *gin.Context) {
	interviewID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.placementService.CancelInterview(ctx.Request.Context(), middleware.IdentityFromContext(ctx), interviewID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Interview cancelled"))
}

// RecordResult records the final outcome of an application
// @Summary Record a final result
// @Description Records SELECTED or REJECTED for an interviewed application.
// @Tags placements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordResultRequest true "Final outcome"
// @Success 200 {object} dto.APIResponse "Result recorded"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /applications/result [post]
func (c *PlacementController) RecordResult(ctx *gin.Context) {
	var req dto.RecordResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.placementService.RecordResult(ctx.Request.Context(), middleware.IdentityFromContext(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Result recorded"))
}

// ListOpenJobs returns the postings the calling student can still apply to
// @Summary List open postings for the calling student
// @Description Own college, still open, not already applied to. Oldest first.
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.JobPostingData}
// @Router /jobs/open [get]
func (c *PlacementController) ListOpenJobs(ctx *gin.Context) {
	jobs, err := c.placementService.ListOpenJobs(ctx.Request.Context(), middleware.IdentityFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := make([]dto.JobPostingData, 0, len(jobs))
	for _, job := range jobs {
		data = append(data, toJobData(job))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}

// ListApplications returns applications for the caller: a student sees their
// own, staff see their college's
// @Summary List applications
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationData}
// @Router /applications [get]
func (c *PlacementController) ListApplications(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	reqCtx := ctx.Request.Context()

	var (
		apps []*models.ApplicationWithJob
		err  error
	)
	if identity != nil && identity.Role == models.RoleStudent {
		apps, err = c.placementService.ListOwnApplications(reqCtx, identity)
	} else {
		apps, err = c.placementService.ListCollegeApplications(reqCtx, identity)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := make([]dto.ApplicationData, 0, len(apps))
	for _, app := range apps {
		data = append(data, toApplicationData(&app.Application))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}

// ListJobApplicants returns a posting's applications with applicant details
// @Summary List a posting's applicants
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job posting ID"
// @Success 200 {object} dto.APIResponse
// @Router /jobs/{id}/applications [get]
func (c *PlacementController) ListJobApplicants(ctx *gin.Context) {
	jobID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	apps, err := c.placementService.ListJobApplicants(ctx.Request.Context(), middleware.IdentityFromContext(ctx), jobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps, ""))
}

// ListInterviews returns the interview rounds of an application
// @Summary List an application's interview rounds
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterviewData}
// @Router /applications/{id}/interviews [get]
func (c *PlacementController) ListInterviews(ctx *gin.Context) {
	appID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	interviews, err := c.placementService.ListInterviews(ctx.Request.Context(), middleware.IdentityFromContext(ctx), appID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := make([]dto.InterviewData, 0, len(interviews))
	for _, interview := range interviews {
		data = append(data, toInterviewData(interview))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}

func toApplicationData(app *models.Application) dto.ApplicationData {
	data := dto.ApplicationData{
		ID:        app.ID,
		StudentID: app.StudentID,
		JobID:     app.JobID,
		Status:    string(app.Status),
		AppliedAt: app.AppliedAt,
		UpdatedAt: app.UpdatedAt,
	}
	if result := app.FinalResult(); result != nil {
		s := string(*result)
		data.FinalResult = &s
	}
	return data
}

func toInterviewData(interview *models.InterviewSchedule) dto.InterviewData {
	return dto.InterviewData{
		ID:            interview.ID,
		ApplicationID: interview.ApplicationID,
		ScheduledAt:   interview.ScheduledAt,
		Mode:          string(interview.Mode),
		Status:        string(interview.Status),
	}
}
