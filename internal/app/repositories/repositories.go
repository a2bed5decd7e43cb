package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	CourseRepository      *CourseRepository
	RequirementRepository *RequirementRepository
}

// NewRepositories creates all repositories over one shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:      NewCourseRepository(db),
		RequirementRepository: NewRequirementRepository(db),
	}
}
