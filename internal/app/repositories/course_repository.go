package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iuermili/LeCourse/internal/app/models"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

const courseColumns = `course_id, course_name, field, credit_hours, prerequisites, semester_offered, time, days, gen_ed`

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

func scanCourse(row pgx.Row, course *models.Course) error {
	return row.Scan(
		&course.ID,
		&course.Name,
		&course.Field,
		&course.CreditHours,
		&course.Prerequisite,
		&course.SemesterOffered,
		&course.Time,
		&course.Days,
		&course.GenEd,
	)
}

// GetAll retrieves the full course catalog ordered by course id
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		ORDER BY course_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieving courses: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, fmt.Errorf("%w: scanning course: %v", apperrors.ErrStorage, err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading courses: %v", apperrors.ErrStorage, err)
	}

	return courses, nil
}

// GetByID retrieves a course by its canonical identifier
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE course_id = $1
	`

	var course models.Course
	err := scanCourse(r.db.QueryRow(ctx, query, id), &course)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("%w: retrieving course: %v", apperrors.ErrStorage, err)
	}

	return &course, nil
}

// Upsert inserts a course or replaces an existing row with the same id
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (course_id) DO UPDATE SET
			course_name = EXCLUDED.course_name,
			field = EXCLUDED.field,
			credit_hours = EXCLUDED.credit_hours,
			prerequisites = EXCLUDED.prerequisites,
			semester_offered = EXCLUDED.semester_offered,
			time = EXCLUDED.time,
			days = EXCLUDED.days,
			gen_ed = EXCLUDED.gen_ed
	`

	_, err := r.db.Exec(ctx, query,
		course.ID,
		course.Name,
		course.Field,
		course.CreditHours,
		course.Prerequisite,
		course.SemesterOffered,
		course.Time,
		course.Days,
		course.GenEd,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting course: %v", apperrors.ErrStorage, err)
	}

	return nil
}

// Count returns the number of catalog rows
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting courses: %v", apperrors.ErrStorage, err)
	}
	return count, nil
}
