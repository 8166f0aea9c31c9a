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

// StudentController handles student profile endpoints
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{studentService: studentService, logger: logger}
}

// GetProfile returns the calling student's profile
// @Summary Get own profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentData}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /students/me [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	student, err := c.studentService.GetOwnProfile(ctx.Request.Context(), middleware.IdentityFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toStudentData(student), ""))
}

// UpdateProfile updates the calling student's profile
// @Summary Update own profile
// @Description Updates the student-editable profile fields. College and roll number are staff-managed.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentData} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /students/me [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateOwnProfile(ctx.Request.Context(), middleware.IdentityFromContext(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(toStudentData(student), "Profile updated"))
}

// ListStudents returns the active students of the caller's college
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentData}
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context(), middleware.IdentityFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data := make([]dto.StudentData, 0, len(students))
	for _, student := range students {
		data = append(data, toStudentData(student))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, ""))
}

func toStudentData(student *models.Student) dto.StudentData {
	data := dto.StudentData{
		ID:          student.ID,
		UserID:      student.UserID,
		CollegeID:   student.CollegeID,
		RollNo:      student.RollNo,
		Department:  student.Department,
		Course:      student.Course,
		PassingYear: student.PassingYear,
		CGPA:        student.CGPA,
		Links:       student.Links,
		Skills:      student.Skills,
		ResumePath:  student.ResumePath,
	}
	if student.User != nil {
		data.FullName = student.User.FullName
		data.Email = student.User.Email
	}
	return data
}
