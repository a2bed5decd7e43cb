package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iuermili/LeCourse/internal/app/models"
	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

type stubCatalogService struct {
	courses []models.Course
	course  *models.Course
	err     error
}

func (s *stubCatalogService) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses, s.err
}

func (s *stubCatalogService) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.course, s.err
}

func newCatalogRouter(service *stubCatalogService) *gin.Engine {
	controller := NewCatalogController(service)
	router := gin.New()
	router.GET("/courses", controller.GetAllCourses)
	router.GET("/courses/:id", controller.GetCourseByID)
	return router
}

func TestGetAllCourses(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{
		courses: []models.Course{
			{ID: "CS101", Name: "Intro to Computer Science", Field: "Computer Science", CreditHours: 3},
		},
	})

	recorder := performRequest(router, http.MethodGet, "/courses", "", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"courseId":"CS101"`)
}

func TestGetCourseByID(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{
		course: &models.Course{ID: "MATH211", Name: "Calculus I", Field: "Mathematics", CreditHours: 4},
	})

	recorder := performRequest(router, http.MethodGet, "/courses/MATH211", "", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"courseName":"Calculus I"`)
}

func TestGetCourseByIDNotFound(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{err: apperrors.ErrCourseNotFound})

	recorder := performRequest(router, http.MethodGet, "/courses/NOPE", "", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), string(dto.ErrorCodeResourceNotFound))
}

func TestGetAllCoursesStorageError(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{err: apperrors.ErrStorage})

	recorder := performRequest(router, http.MethodGet, "/courses", "", "")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), string(dto.ErrorCodeDatabaseError))
}
