package services

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/iuermili/LeCourse/internal/app/models"
	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
)

// noneToken is the literal the model is instructed to emit for an empty match
const noneToken = "none"

// ParseCourseCodes parses a comma-separated identifier list from model output.
// An empty reply or the literal "None" (any casing) yields an empty list;
// tokens are trimmed and empty tokens dropped.
func ParseCourseCodes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, noneToken) {
		return nil
	}

	var codes []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			codes = append(codes, token)
		}
	}
	return codes
}

// transcriptEntry is one object of the strict-JSON transcript reply
type transcriptEntry struct {
	Code string `json:"code"`
}

// transcriptWrapper tolerates models that wrap the list in a "courses" key
type transcriptWrapper struct {
	Courses []transcriptEntry `json:"courses"`
}

// ParseTranscriptJSON parses the strict-JSON transcript reply variant. It
// strips a markdown code fence before decoding and tolerates a {"courses":
// [...]} wrapper. Anything else fails with ErrModelParse.
func ParseTranscriptJSON(raw string) ([]string, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return nil, apperrors.NewModelParseError("Model did not return valid JSON")
	}

	var entries []transcriptEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		var wrapper transcriptWrapper
		if err := json.Unmarshal([]byte(raw), &wrapper); err != nil || wrapper.Courses == nil {
			return nil, apperrors.NewModelParseError("Model did not return valid JSON")
		}
		entries = wrapper.Courses
	}

	var codes []string
	for _, entry := range entries {
		code := strings.TrimSpace(entry.Code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// stripCodeFence removes a leading ```json fence and trailing ``` fence
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// ResolveAgainstCatalog filters candidate identifiers against the catalog.
// Matching is case-insensitive and duplicates collapse to one course; the
// returned courses carry the catalog's canonical identifiers. Identifiers
// that resolve to nothing come back in unmatched, for the surfacing policy.
func ResolveAgainstCatalog(catalog []models.Course, identifiers []string) (matched []models.Course, unmatched []string) {
	byID := make(map[string]models.Course, len(catalog))
	for _, course := range catalog {
		byID[strings.ToLower(course.ID)] = course
	}

	seen := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		key := strings.ToLower(strings.TrimSpace(id))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		if course, ok := byID[key]; ok {
			matched = append(matched, course)
		} else {
			unmatched = append(unmatched, id)
		}
	}
	return matched, unmatched
}

// EligibleCourses projects the "not yet taken and prerequisite-satisfied"
// view of the catalog for one student. Pure function over its inputs; the
// shared catalog is never mutated to represent per-student state.
func EligibleCourses(catalog []models.Course, takenIDs []string) []models.Course {
	taken := make(map[string]bool, len(takenIDs))
	for _, id := range takenIDs {
		taken[strings.ToLower(id)] = true
	}

	var eligible []models.Course
	for _, course := range catalog {
		if taken[strings.ToLower(course.ID)] {
			continue
		}
		if course.Prerequisite != "" && !taken[strings.ToLower(course.Prerequisite)] {
			continue
		}
		eligible = append(eligible, course)
	}
	return eligible
}

// MajorCredits sums credit hours toward a major: taken counts only the
// student's courses in that field, required counts the whole catalog's.
func MajorCredits(catalog []models.Course, major string, takenIDs []string) (taken, required int) {
	takenSet := make(map[string]bool, len(takenIDs))
	for _, id := range takenIDs {
		takenSet[strings.ToLower(id)] = true
	}

	for _, course := range catalog {
		if course.Field != major {
			continue
		}
		required += course.CreditHours
		if takenSet[strings.ToLower(course.ID)] {
			taken += course.CreditHours
		}
	}
	return taken, required
}

// CreditsByRequirement totals credit hours per requirement tag over the
// matched course set, sorted by tag for a stable response shape. Courses
// without a tag contribute nothing.
func CreditsByRequirement(matched []models.Course) []dto.RequirementCredits {
	totals := make(map[string]int)
	for _, course := range matched {
		if course.GenEd != "" {
			totals[course.GenEd] += course.CreditHours
		}
	}

	tags := make([]string, 0, len(totals))
	for tag := range totals {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	credits := make([]dto.RequirementCredits, 0, len(tags))
	for _, tag := range tags {
		credits = append(credits, dto.RequirementCredits{Tag: tag, Credits: totals[tag]})
	}
	return credits
}

// FilterCatalog narrows the catalog three ways: no filters returns it whole,
// identifiers alone filter by id membership, criteria alone by requirement
// tag or field, and both require tag and id membership together.
func FilterCatalog(catalog []models.Course, criteria, identifiers []string) []models.Course {
	if len(criteria) == 0 && len(identifiers) == 0 {
		return catalog
	}

	idSet := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		idSet[strings.ToLower(id)] = true
	}

	criteriaSet := make(map[string]bool, len(criteria))
	for _, criterion := range criteria {
		criteriaSet[criterion] = true
	}

	var filtered []models.Course
	for _, course := range catalog {
		idMatch := idSet[strings.ToLower(course.ID)]
		criteriaMatch := criteriaSet[course.GenEd] || criteriaSet[course.Field]

		switch {
		case len(criteria) > 0 && len(identifiers) > 0:
			if idMatch && criteriaMatch {
				filtered = append(filtered, course)
			}
		case len(identifiers) > 0:
			if idMatch {
				filtered = append(filtered, course)
			}
		default:
			if criteriaMatch {
				filtered = append(filtered, course)
			}
		}
	}
	return filtered
}
