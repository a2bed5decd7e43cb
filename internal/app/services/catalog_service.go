package services

import (
	"context"

	"github.com/iuermili/LeCourse/internal/app/models"
)

// CourseReader is the repository surface the catalog service needs
type CourseReader interface {
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
}

// CatalogService defines the interface for catalog read operations
type CatalogService interface {
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	courseRepo CourseReader
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(courseRepo CourseReader) CatalogService {
	return &catalogServiceImpl{
		courseRepo: courseRepo,
	}
}

// GetAllCourses returns the full catalog
func (s *catalogServiceImpl) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCourseByID returns one course by its canonical identifier
func (s *catalogServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}
