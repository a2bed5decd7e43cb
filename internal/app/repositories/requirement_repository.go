package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iuermili/LeCourse/internal/app/models"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

// RequirementRepository handles database operations for major requirements
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{
		db: db,
	}
}

// GetByMajor retrieves the courses required by a major
func (r *RequirementRepository) GetByMajor(ctx context.Context, major string) ([]models.MajorRequirement, error) {
	query := `
		SELECT course_id, major
		FROM requirements
		WHERE major = $1
		ORDER BY course_id
	`

	rows, err := r.db.Query(ctx, query, major)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieving requirements: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var requirements []models.MajorRequirement
	for rows.Next() {
		var requirement models.MajorRequirement
		if err := rows.Scan(&requirement.CourseID, &requirement.Major); err != nil {
			return nil, fmt.Errorf("%w: scanning requirement: %v", apperrors.ErrStorage, err)
		}
		requirements = append(requirements, requirement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading requirements: %v", apperrors.ErrStorage, err)
	}

	return requirements, nil
}

// RequiredCreditHours sums the credit hours of a major's required courses.
// Returns 0 when the requirements table has no rows for the major.
func (r *RequirementRepository) RequiredCreditHours(ctx context.Context, major string) (int, error) {
	query := `
		SELECT COALESCE(SUM(c.credit_hours), 0)
		FROM requirements r
		JOIN courses c ON c.course_id = r.course_id
		WHERE r.major = $1
	`

	var total int
	if err := r.db.QueryRow(ctx, query, major).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing required credits: %v", apperrors.ErrStorage, err)
	}

	return total, nil
}

// Upsert inserts a requirement row if it is not already present
func (r *RequirementRepository) Upsert(ctx context.Context, requirement *models.MajorRequirement) error {
	query := `
		INSERT INTO requirements (course_id, major)
		VALUES ($1, $2)
		ON CONFLICT (course_id, major) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, requirement.CourseID, requirement.Major)
	if err != nil {
		return fmt.Errorf("%w: upserting requirement: %v", apperrors.ErrStorage, err)
	}

	return nil
}
