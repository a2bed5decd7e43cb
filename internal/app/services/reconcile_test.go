package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iuermili/LeCourse/internal/app/models"
	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

func testCatalog() []models.Course {
	return []models.Course{
		{ID: "CS101", Name: "Intro to Computer Science", Field: "Computer Science", CreditHours: 3},
		{ID: "CS201", Name: "Data Structures", Field: "Computer Science", CreditHours: 3, Prerequisite: "CS101"},
		{ID: "MATH211", Name: "Calculus I", Field: "Mathematics", CreditHours: 4, GenEd: "Quantitative Reasoning"},
		{ID: "ART100", Name: "Art Appreciation", Field: "Fine Arts", CreditHours: 3, GenEd: "Arts & Humanities"},
		{ID: "HIST150", Name: "World History", Field: "History", CreditHours: 3, GenEd: "Arts & Humanities"},
	}
}

func TestParseCourseCodes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"none lowercase", "none", nil},
		{"none mixed case", "NoNe", nil},
		{"none padded", "  None  ", nil},
		{"single", "CS101", []string{"CS101"}},
		{"list with padding", "CS101, CS102 ,  ", []string{"CS101", "CS102"}},
		{"inner empties", "CS101,,CS102", []string{"CS101", "CS102"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCourseCodes(tt.raw))
		})
	}
}

func TestParseTranscriptJSON(t *testing.T) {
	codes, err := ParseTranscriptJSON(`[{"code": "CS101"}, {"code": "MATH211"}]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "MATH211"}, codes)
}

func TestParseTranscriptJSONStripsFence(t *testing.T) {
	codes, err := ParseTranscriptJSON("```json\n[{\"code\": \"CS101\"}]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, codes)
}

func TestParseTranscriptJSONCoursesWrapper(t *testing.T) {
	codes, err := ParseTranscriptJSON(`{"courses": [{"code": "CS101"}]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, codes)
}

func TestParseTranscriptJSONRejectsGarbage(t *testing.T) {
	_, err := ParseTranscriptJSON("the student took intro to cs")
	assert.ErrorIs(t, err, apperrors.ErrModelParse)

	_, err = ParseTranscriptJSON("")
	assert.ErrorIs(t, err, apperrors.ErrModelParse)
}

func TestResolveAgainstCatalog(t *testing.T) {
	catalog := testCatalog()

	matched, unmatched := ResolveAgainstCatalog(catalog, []string{"cs101", "MATH211", "BIO300"})

	require.Len(t, matched, 2)
	assert.Equal(t, "CS101", matched[0].ID)
	assert.Equal(t, "MATH211", matched[1].ID)
	assert.Equal(t, []string{"BIO300"}, unmatched)
}

func TestResolveAgainstCatalogIsPureFilter(t *testing.T) {
	catalog := testCatalog()
	input := []string{"CS101", "CS999", "ART100", "ART100"}

	matched, _ := ResolveAgainstCatalog(catalog, input)

	assert.LessOrEqual(t, len(matched), len(input))
	for _, course := range matched {
		assert.Contains(t, []string{"CS101", "ART100"}, course.ID)
	}
}

func TestResolveAgainstCatalogCollapsesDuplicates(t *testing.T) {
	matched, unmatched := ResolveAgainstCatalog(testCatalog(), []string{"CS101", "cs101", "CS101"})

	assert.Len(t, matched, 1)
	assert.Empty(t, unmatched)
}

func TestEligibleCoursesPrerequisiteHandling(t *testing.T) {
	catalog := testCatalog()

	eligible := EligibleCourses(catalog, []string{"CS101"})

	ids := make([]string, 0, len(eligible))
	for _, course := range eligible {
		ids = append(ids, course.ID)
	}

	// CS101 is taken; CS201's prerequisite is satisfied; everything else has none
	assert.Equal(t, []string{"CS201", "MATH211", "ART100", "HIST150"}, ids)
}

func TestEligibleCoursesUnsatisfiedPrerequisite(t *testing.T) {
	eligible := EligibleCourses(testCatalog(), nil)

	for _, course := range eligible {
		assert.NotEqual(t, "CS201", course.ID, "CS201 requires CS101 which was not taken")
	}
}

func TestEligibleCoursesDoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	before := len(catalog)

	_ = EligibleCourses(catalog, []string{"CS101", "MATH211"})

	assert.Len(t, catalog, before)
}

func TestMajorCredits(t *testing.T) {
	catalog := []models.Course{
		{ID: "CS101", Field: "Computer Science", CreditHours: 3},
		{ID: "CS201", Field: "Computer Science", CreditHours: 3},
		{ID: "CS301", Field: "Computer Science", CreditHours: 24},
		{ID: "MATH211", Field: "Mathematics", CreditHours: 4},
	}

	taken, required := MajorCredits(catalog, "Computer Science", []string{"CS101"})

	assert.Equal(t, 3, taken)
	assert.Equal(t, 30, required)
}

func TestMajorCreditsIgnoresOtherFields(t *testing.T) {
	taken, required := MajorCredits(testCatalog(), "Computer Science", []string{"CS101", "MATH211"})

	assert.Equal(t, 3, taken)
	assert.Equal(t, 6, required)
}

func TestCreditsByRequirement(t *testing.T) {
	matched := []models.Course{
		{ID: "ART100", CreditHours: 3, GenEd: "Arts & Humanities"},
		{ID: "HIST150", CreditHours: 3, GenEd: "Arts & Humanities"},
		{ID: "MATH211", CreditHours: 4, GenEd: "Quantitative Reasoning"},
		{ID: "CS101", CreditHours: 3}, // no tag, contributes nothing
	}

	credits := CreditsByRequirement(matched)

	assert.Equal(t, []dto.RequirementCredits{
		{Tag: "Arts & Humanities", Credits: 6},
		{Tag: "Quantitative Reasoning", Credits: 4},
	}, credits)
}

func TestFilterCatalogNoFilters(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, catalog, FilterCatalog(catalog, nil, nil))
}

func TestFilterCatalogByCriteria(t *testing.T) {
	filtered := FilterCatalog(testCatalog(), []string{"Arts & Humanities"}, nil)

	require.Len(t, filtered, 2)
	assert.Equal(t, "ART100", filtered[0].ID)
	assert.Equal(t, "HIST150", filtered[1].ID)
}

func TestFilterCatalogByCriteriaMatchesField(t *testing.T) {
	filtered := FilterCatalog(testCatalog(), []string{"Computer Science"}, nil)

	require.Len(t, filtered, 2)
	assert.Equal(t, "CS101", filtered[0].ID)
	assert.Equal(t, "CS201", filtered[1].ID)
}

func TestFilterCatalogByIdentifiers(t *testing.T) {
	filtered := FilterCatalog(testCatalog(), nil, []string{"cs101", "ART100"})

	require.Len(t, filtered, 2)
	assert.Equal(t, "CS101", filtered[0].ID)
	assert.Equal(t, "ART100", filtered[1].ID)
}

func TestFilterCatalogConjunction(t *testing.T) {
	filtered := FilterCatalog(testCatalog(),
		[]string{"Arts & Humanities"},
		[]string{"ART100", "CS101"})

	require.Len(t, filtered, 1)
	assert.Equal(t, "ART100", filtered[0].ID)
}
