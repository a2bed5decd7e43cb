package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/iuermili/LeCourse/internal/app/models"
	appRepos "github.com/iuermili/LeCourse/internal/app/repositories"
	"github.com/iuermili/LeCourse/internal/config"
)

// LoadCatalogData loads the course catalog and major requirements from the
// configured CSV files. Missing files are skipped with a warning so the server
// can start against an already-seeded database.
func LoadCatalogData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	if err := loadCourses(ctx, repos.CourseRepository, cfg.Advising.CourseDataPath, lgr); err != nil {
		return err
	}

	return loadRequirements(ctx, repos.RequirementRepository, cfg.Advising.RequirementDataPath, lgr)
}

func loadCourses(ctx context.Context, repo *appRepos.CourseRepository, path string, lgr zerolog.Logger) error {
	records, header, err := readCSV(path)
	if err != nil {
		lgr.Warn().Err(err).Str("path", path).Msg("Course data file not readable, skipping catalog seed")
		return nil
	}

	count := 0
	for i, record := range records {
		course, err := courseFromRecord(header, record)
		if err != nil {
			lgr.Warn().Err(err).Int("row", i+2).Str("path", path).Msg("Skipping malformed course row")
			continue
		}

		if err := repo.Upsert(ctx, course); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.ID, err)
		}
		count++
	}

	lgr.Info().Int("courses", count).Str("path", path).Msg("Course catalog seeded")
	return nil
}

func loadRequirements(ctx context.Context, repo *appRepos.RequirementRepository, path string, lgr zerolog.Logger) error {
	records, header, err := readCSV(path)
	if err != nil {
		lgr.Warn().Err(err).Str("path", path).Msg("Requirement data file not readable, skipping requirement seed")
		return nil
	}

	count := 0
	for i, record := range records {
		courseID := field(header, record, "CourseID")
		major := field(header, record, "Major")
		if courseID == "" || major == "" {
			lgr.Warn().Int("row", i+2).Str("path", path).Msg("Skipping malformed requirement row")
			continue
		}

		requirement := &appModels.MajorRequirement{CourseID: courseID, Major: major}
		if err := repo.Upsert(ctx, requirement); err != nil {
			return fmt.Errorf("failed to seed requirement %s/%s: %w", courseID, major, err)
		}
		count++
	}

	lgr.Info().Int("requirements", count).Str("path", path).Msg("Major requirements seeded")
	return nil
}

// readCSV reads a header-first CSV file and returns its data rows
func readCSV(path string) ([][]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	return rows[1:], header, nil
}

// field returns a trimmed cell by column name, or "" when the column is absent
func field(header map[string]int, record []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// courseFromRecord maps one CSV row to a course. CourseID and CourseName are
// required; a blank CreditHours cell counts as zero.
func courseFromRecord(header map[string]int, record []string) (*appModels.Course, error) {
	id := field(header, record, "CourseID")
	name := field(header, record, "CourseName")
	if id == "" || name == "" {
		return nil, fmt.Errorf("missing CourseID or CourseName")
	}

	creditHours := 0
	if raw := field(header, record, "CreditHours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CreditHours %q: %w", raw, err)
		}
		creditHours = parsed
	}

	return &appModels.Course{
		ID:              id,
		Name:            name,
		Field:           field(header, record, "Field"),
		CreditHours:     creditHours,
		Prerequisite:    field(header, record, "Prerequisites"),
		SemesterOffered: field(header, record, "SemesterOffered"),
		Time:            field(header, record, "Time"),
		Days:            field(header, record, "Days"),
		GenEd:           field(header, record, "GenEd"),
	}, nil
}
