package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/iuermili/LeCourse/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	advisingController *controllers.AdvisingController,
	catalogController *controllers.CatalogController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Advising routes. Chat requires a bearer session token; fetch accepts
	// one optionally to scope results to the student's eligible courses.
	v1.POST("/students/init", advisingController.InitStudent)
	v1.POST("/classes/fetch", advisingController.FetchClasses)
	v1.POST("/advisor/chat", advisingController.Chat)

	// Catalog routes (public access)
	courses := v1.Group("/courses")
	{
		courses.GET("", catalogController.GetAllCourses)
		courses.GET("/:id", catalogController.GetCourseByID)
	}
}
