package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSVMapsHeader(t *testing.T) {
	path := writeTempCSV(t, "CourseID,CourseName,CreditHours\nCS101,Intro to Computer Science,3\n")

	records, header, err := readCSV(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "CS101", field(header, records[0], "CourseID"))
	assert.Equal(t, "Intro to Computer Science", field(header, records[0], "CourseName"))
	assert.Equal(t, "", field(header, records[0], "NoSuchColumn"))
}

func TestReadCSVMissingFile(t *testing.T) {
	_, _, err := readCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestCourseFromRecord(t *testing.T) {
	path := writeTempCSV(t,
		"CourseID,CourseName,Field,CreditHours,Prerequisites,SemesterOffered,Time,Days,GenEd\n"+
			"CS201,Data Structures,Computer Science,3,CS101,Fall,10:00,MWF,\n")

	records, header, err := readCSV(path)
	require.NoError(t, err)

	course, err := courseFromRecord(header, records[0])
	require.NoError(t, err)

	assert.Equal(t, "CS201", course.ID)
	assert.Equal(t, "Data Structures", course.Name)
	assert.Equal(t, "Computer Science", course.Field)
	assert.Equal(t, 3, course.CreditHours)
	assert.Equal(t, "CS101", course.Prerequisite)
	assert.Equal(t, "Fall", course.SemesterOffered)
	assert.Equal(t, "MWF", course.Days)
	assert.Empty(t, course.GenEd)
}

func TestCourseFromRecordBlankCreditHours(t *testing.T) {
	path := writeTempCSV(t, "CourseID,CourseName,CreditHours\nART100,Art Appreciation,\n")

	records, header, err := readCSV(path)
	require.NoError(t, err)

	course, err := courseFromRecord(header, records[0])
	require.NoError(t, err)
	assert.Zero(t, course.CreditHours)
}

func TestCourseFromRecordRejectsBadRows(t *testing.T) {
	path := writeTempCSV(t,
		"CourseID,CourseName,CreditHours\n"+
			",Nameless,3\n"+
			"CS101,Intro to Computer Science,three\n")

	records, header, err := readCSV(path)
	require.NoError(t, err)

	_, err = courseFromRecord(header, records[0])
	assert.Error(t, err, "row without a course id")

	_, err = courseFromRecord(header, records[1])
	assert.Error(t, err, "row with non-numeric credit hours")
}
