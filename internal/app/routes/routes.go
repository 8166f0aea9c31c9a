package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emrekoc/campushire/internal/app/auth"
	"github.com/emrekoc/campushire/internal/app/controllers"
	"github.com/emrekoc/campushire/internal/middleware"
)

// SetupRouter configures all application routes. Route-level role groups are
// a coarse first gate derived from the authorization table via
// auth.AllowedRoles; the services re-check the full table, scope included,
// on every call.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	jobController *controllers.JobController,
	placementController *controllers.PlacementController,
	studentController *controllers.StudentController,
	authenticator middleware.Authenticator,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.SessionAuth(authenticator))
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		// Developer-only platform administration
		developerOnly := authenticated.Group("")
		developerOnly.Use(middleware.RoleRequired(auth.AllowedRoles(auth.ActionAddCollege)...))
		{
			developerOnly.POST("/colleges", collegeController.AddCollege)
			developerOnly.GET("/colleges", collegeController.ListColleges)
			developerOnly.POST("/superadmins", collegeController.AddSuperAdmin)
			developerOnly.POST("/users/:id/deactivate", authController.DeactivateUser)
		}

		// Job postings
		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("", jobController.ListJobs)
			jobs.GET("/open", placementController.ListOpenJobs)
			jobs.GET("/:id", jobController.GetJob)

			jobsStaff := jobs.Group("")
			jobsStaff.Use(middleware.RoleRequired(auth.AllowedRoles(auth.ActionManageJobs)...))
			{
				jobsStaff.POST("", jobController.CreateJob)
				jobsStaff.PUT("/:id", jobController.UpdateJob)
				jobsStaff.POST("/:id/close", jobController.CloseJob)
				jobsStaff.GET("/:id/applications", placementController.ListJobApplicants)
			}
		}

		// Applications and the placement lifecycle
		applications := authenticated.Group("/applications")
		{
			applications.GET("", placementController.ListApplications)
			applications.GET("/:id/interviews", placementController.ListInterviews)

			applicationsStudent := applications.Group("")
			applicationsStudent.Use(middleware.RoleRequired(auth.AllowedRoles(auth.ActionApplyToJob)...))
			{
				applicationsStudent.POST("", placementController.Apply)
			}

			applicationsStaff := applications.Group("")
			applicationsStaff.Use(middleware.RoleRequired(auth.AllowedRoles(auth.ActionShortlist)...))
			{
				applicationsStaff.POST("/:id/shortlist", placementController.Shortlist)
				applicationsStaff.POST("/:id/reject", placementController.Reject)
				applicationsStaff.POST("/result", placementController.RecordResult)
			}
		}

		// Interview rounds
		interviews := authenticated.Group("/interviews")
		interviews.Use(middleware.RoleRequired(auth.AllowedRoles(auth.ActionScheduleRound)...))
		{
			interviews.POST("", placementController.ScheduleInterview)
			interviews.POST("/:id/complete", placementController.CompleteInterview)
			interviews.POST("/:id/cancel", placementController.CancelInterview)
		}

		// Students
		students := authenticated.Group("/students")
		{
			students.GET("/me", studentController.GetProfile)
			students.PUT("/me", studentController.UpdateProfile)

			studentsStaff := students.Group("")
			studentsStaff.Use(middleware.RoleRequired(auth.AllowedRoles(auth.ActionViewStudents)...))
			{
				studentsStaff.GET("", studentController.ListStudents)
			}
		}
	}
}
