package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/app/services"
	"github.com/iuermili/LeCourse/internal/middleware"
)

// CatalogController handles course catalog read operations
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetAllCourses retrieves the full course catalog
// @Summary Get all courses
// @Description Retrieves every course in the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CatalogController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.catalogService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves one course by its identifier
// @Summary Get course details
// @Description Retrieves a single course by its canonical identifier
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Course identifier"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourseByID(ctx *gin.Context) {
	course, err := c.catalogService.GetCourseByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}
