package dto

import "github.com/iuermili/LeCourse/internal/app/models"

// InitStudentRequest carries a student's major and raw transcript text
type InitStudentRequest struct {
	Major        string `json:"major" binding:"required" example:"Computer Science"`
	CoursesTaken string `json:"coursesTaken" binding:"required" example:"CSCI-C311, maTh-m211"`
}

// RequirementCredits is the credit total earned toward one requirement tag
type RequirementCredits struct {
	Tag     string `json:"tag" example:"Arts & Humanities"`
	Credits int    `json:"credits" example:"3"`
}

// MajorCredits pairs credits earned toward the major with the catalog total
type MajorCredits struct {
	Taken    int `json:"taken" example:"3"`
	Required int `json:"required" example:"30"`
}

// InitStudentResponse is the structured advising view built from the student's transcript
type InitStudentResponse struct {
	SessionToken         string               `json:"sessionToken"`
	CoursesTaken         []models.Course      `json:"coursesTaken"`
	CreditsByRequirement []RequirementCredits `json:"creditsByRequirement"`
	MajorCredits         MajorCredits         `json:"majorCredits"`
	RemainingCourses     []models.Course      `json:"remainingCourses"`
	// Present only when the surface-unmatched policy is enabled
	UnmatchedCourses []string `json:"unmatchedCourses,omitempty"`
}

// FetchClassesRequest filters the catalog by requirement criteria and/or free-text interests
type FetchClassesRequest struct {
	Criteria         []string `json:"criteria" example:"Arts & Humanities"`
	InterestedTopics string   `json:"interestedTopics" example:"i love compilers and hard math"`
}

// FetchClassesResponse separates model-recommended courses from plain catalog filtering
type FetchClassesResponse struct {
	LLMRecommendedCourses []models.Course `json:"llmRecommendedCourses"`
	FilteredCourses       []models.Course `json:"filteredCourses"`
	UnmatchedCourses      []string        `json:"unmatchedCourses,omitempty"`
}

// ChatRequest is one student turn in the advisor chat
type ChatRequest struct {
	Message string `json:"message" binding:"required" example:"what should I take next semester?"`
}

// ChatResponse is the advisor's reply
type ChatResponse struct {
	Response string `json:"response"`
}
