package llm

import (
	"strings"

	"github.com/iuermili/LeCourse/internal/app/models"
)

// Instruction blocks are fixed strings so that prompt construction stays
// byte-identical for identical inputs.
const (
	matchInstructions = "You are an expert academic transcript parser. Analyze the following list of courses " +
		"taken by a student. Extract the course ids (e.g., PHYS301). Format the output strictly as a list of " +
		"course ids separated by commas, with no surrounding whitespace. If you cannot match a course with the " +
		"course data provided, do not include it. If no courses are matched output 'None'. Output ONLY the " +
		"comma separated course ids in a string, without any introductory text, explanations, or markdown formatting."

	interestInstructions = "You are an academic advisor assistant. Based on the student's interests provided " +
		"below, identify which of the listed courses might be relevant to those interests. List ONLY the course " +
		"ids (e.g., CS101) of the relevant courses, separated by commas. Do not include explanations or any " +
		"other text. If no courses seem relevant, output 'None'."

	transcriptJSONInstructions = "You are an expert academic transcript parser. Analyze the following list of " +
		"courses taken by a student. Extract the course codes (e.g., CSCI-C101). Format the output strictly as " +
		"a JSON string containing a list of objects, where each object has a \"code\" key. If you cannot " +
		"extract a code, omit the object. Output ONLY the JSON string, without any introductory text, " +
		"explanations, or markdown formatting."

	advisorInstructions = "You are an academic advisor helping a student plan their courses. Answer concisely. " +
		"Here is the course catalog as id:field pairs. Use it for all subsequent prompts."
)

// CatalogSnapshot serializes the catalog as comma-separated id:field pairs,
// preserving input order.
func CatalogSnapshot(courses []models.Course) string {
	pairs := make([]string, 0, len(courses))
	for _, course := range courses {
		pairs = append(pairs, course.ID+":"+course.Field)
	}
	return strings.Join(pairs, ", ")
}

// BuildMatchPrompt builds the transcript-matching prompt. Pure string
// construction; an empty freeText just yields an empty Input Text section.
func BuildMatchPrompt(catalogSnapshot, freeText string) string {
	var b strings.Builder
	b.WriteString(matchInstructions)
	b.WriteString("\n\nCourse Data:\n")
	b.WriteString(catalogSnapshot)
	b.WriteString("\n\nInput Text:\n")
	b.WriteString(freeText)
	b.WriteString("\n")
	return b.String()
}

// BuildInterestPrompt builds the interest-matching prompt. The snapshot may be
// empty when a continuation token already carries the catalog context.
func BuildInterestPrompt(catalogSnapshot, interestText string) string {
	var b strings.Builder
	b.WriteString(interestInstructions)
	b.WriteString("\n\nCourse Data:\n")
	b.WriteString(catalogSnapshot)
	b.WriteString("\n\nStudent Interests:\n")
	b.WriteString(interestText)
	b.WriteString("\n\nRelevant Course Codes:\n")
	return b.String()
}

// BuildTranscriptJSONPrompt builds the strict-JSON transcript prompt variant.
func BuildTranscriptJSONPrompt(freeText string) string {
	var b strings.Builder
	b.WriteString(transcriptJSONInstructions)
	b.WriteString("\n\nInput Text:\n")
	b.WriteString(freeText)
	b.WriteString("\n\nJSON Output:\n")
	return b.String()
}

// AdvisorSystemPrompt builds the system message that seeds an advisor chat.
func AdvisorSystemPrompt(catalogSnapshot string) string {
	var b strings.Builder
	b.WriteString(advisorInstructions)
	b.WriteString("\n\nCourse Data:\n")
	b.WriteString(catalogSnapshot)
	b.WriteString("\n")
	return b.String()
}
