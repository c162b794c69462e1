package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCourse() Course {
	return Course{
		ID:              "CS101",
		CourseType:      Lecture,
		Credits:         3,
		EnrolledCount:   20,
		DurationMinutes: 60,
		SessionsPerWeek: 2,
	}
}

func TestCourseValidate(t *testing.T) {
	// Arrange
	cases := []struct {
		name    string
		mutate  func(Course) Course
		wantErr bool
	}{
		{"valid", func(c Course) Course { return c }, false},
		{"missing id", func(c Course) Course { c.ID = ""; return c }, true},
		{"zero credits", func(c Course) Course { c.Credits = 0; return c }, true},
		{"negative enrolled", func(c Course) Course { c.EnrolledCount = -1; return c }, true},
		{"zero duration", func(c Course) Course { c.DurationMinutes = 0; return c }, true},
		{"zero sessions", func(c Course) Course { c.SessionsPerWeek = 0; return c }, true},
		{"unknown type", func(c Course) Course { c.CourseType = "Workshop"; return c }, true},
	}

	for _, c := range cases {
		// Act
		err := c.mutate(validCourse()).Validate()

		// Assert
		if c.wantErr {
			assert.Error(t, err, c.name)
		} else {
			assert.NoError(t, err, c.name)
		}
	}
}

func TestCourseCompatibleWithRoomType(t *testing.T) {
	// Arrange
	lab := validCourse()
	lab.CourseType = Lab
	lecture := validCourse()
	lecture.CourseType = Lecture
	tutorial := validCourse()
	tutorial.CourseType = Tutorial
	seminar := validCourse()
	seminar.CourseType = Seminar

	// Assert
	assert.True(t, lab.CompatibleWithRoomType(ClassroomLab))
	assert.False(t, lab.CompatibleWithRoomType(ClassroomLecture))

	assert.True(t, lecture.CompatibleWithRoomType(ClassroomLecture))
	assert.True(t, lecture.CompatibleWithRoomType(ClassroomAuditorium))
	assert.False(t, lecture.CompatibleWithRoomType(ClassroomLab))

	assert.True(t, tutorial.CompatibleWithRoomType(ClassroomTutorial))
	assert.True(t, tutorial.CompatibleWithRoomType(ClassroomLecture))

	assert.True(t, seminar.CompatibleWithRoomType(ClassroomSeminar))
	assert.True(t, seminar.CompatibleWithRoomType(ClassroomLecture))
}

func TestExpandSessions(t *testing.T) {
	// Arrange
	c := validCourse()
	c.SessionsPerWeek = 3

	// Act
	reqs := ExpandSessions(c)

	// Assert
	assert.Len(t, reqs, 3)
	assert.Equal(t, SessionRequirement{CourseID: "CS101", SessionIndex: 1}, reqs[0])
	assert.Equal(t, SessionRequirement{CourseID: "CS101", SessionIndex: 2}, reqs[1])
	assert.Equal(t, SessionRequirement{CourseID: "CS101", SessionIndex: 3}, reqs[2])
}
