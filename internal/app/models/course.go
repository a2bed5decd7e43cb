package models

// Course represents one row of the course catalog
type Course struct {
	ID              string `json:"courseId"`
	Name            string `json:"courseName"`
	Field           string `json:"field"`
	CreditHours     int    `json:"creditHours"`
	Prerequisite    string `json:"prerequisite,omitempty"`
	SemesterOffered string `json:"semesterOffered,omitempty"`
	Time            string `json:"time,omitempty"`
	Days            string `json:"days,omitempty"`
	GenEd           string `json:"genEd,omitempty"`
}

// MajorRequirement marks a course as counting toward a major
type MajorRequirement struct {
	CourseID string `json:"courseId"`
	Major    string `json:"major"`
}
