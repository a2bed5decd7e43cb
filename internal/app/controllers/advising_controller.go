package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/app/services"
	"github.com/iuermili/LeCourse/internal/middleware"
	"github.com/iuermili/LeCourse/internal/pkg/auth"
)

// AdvisingController handles student advising operations
type AdvisingController struct {
	advisingService services.AdvisingService
	logger          zerolog.Logger
}

// NewAdvisingController creates a new AdvisingController
func NewAdvisingController(advisingService services.AdvisingService, logger zerolog.Logger) *AdvisingController {
	return &AdvisingController{
		advisingService: advisingService,
		logger:          logger,
	}
}

// InitStudent reconciles a free-text transcript into an advising session
// @Summary Initialize a student advising session
// @Description Matches the student's free-text course history against the catalog and returns the structured advising view with a session token
// @Tags advising
// @Accept json
// @Produce json
// @Param request body dto.InitStudentRequest true "Major and courses taken"
// @Success 200 {object} dto.APIResponse{data=dto.InitStudentResponse} "Advising session initialized"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Failure 503 {object} dto.ErrorResponse "Language model unavailable"
// @Router /students/init [post]
func (c *AdvisingController) InitStudent(ctx *gin.Context) {
	var req dto.InitStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.advisingService.InitStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// FetchClasses filters the catalog by criteria and/or model-matched interests
// @Summary Fetch courses by criteria and interests
// @Description Filters the catalog by requirement criteria and, when interest text is given, by model-recommended courses. A bearer session token scopes results to the student's eligible courses.
// @Tags advising
// @Accept json
// @Produce json
// @Param request body dto.FetchClassesRequest true "Criteria and/or interested topics"
// @Success 200 {object} dto.APIResponse{data=dto.FetchClassesResponse} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired session token"
// @Failure 503 {object} dto.ErrorResponse "Language model unavailable"
// @Router /classes/fetch [post]
func (c *AdvisingController) FetchClasses(ctx *gin.Context) {
	var req dto.FetchClassesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fetch request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The session token is optional here: without one the whole catalog is
	// searched instead of the student's eligible view.
	sessionToken := ""
	if header := ctx.GetHeader("Authorization"); header != "" {
		token, err := auth.ExtractBearerToken(header)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		sessionToken = token
	}

	resp, err := c.advisingService.FetchClasses(ctx, sessionToken, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Chat relays one student message to the advisor model
// @Summary Send a message to the course advisor
// @Description Relays a free-form question to the advising model within the student's session
// @Tags advising
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Student message"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse} "Advisor reply"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired session token"
// @Failure 503 {object} dto.ErrorResponse "Language model unavailable"
// @Router /advisor/chat [post]
func (c *AdvisingController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid chat message")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sessionToken, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.advisingService.Chat(ctx, sessionToken, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
