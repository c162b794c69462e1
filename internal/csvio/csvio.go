// Package csvio is the CSV boundary, adapted from the teacher's loader and
// writer: gocsv struct-tag driven rows for Course, Faculty, Classroom and
// ScheduleEntry, an alternate input/output format alongside JSON.
package csvio

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-schedule/pkg/model"
)

// courseRow is the CSV row shape of a Course. Equipment and preferred days
// are semicolon-joined, matching the teacher's convention of collapsing
// multi-value fields into a single delimited column.
type courseRow struct {
	ID                string `csv:"id"`
	Code              string `csv:"code"`
	Name              string `csv:"name"`
	Department        string `csv:"department"`
	Semester          string `csv:"semester"`
	Credits           int    `csv:"credits"`
	EnrolledCount     int    `csv:"enrolled_count"`
	CourseType        string `csv:"course_type"`
	DurationMinutes   int    `csv:"duration_minutes"`
	SessionsPerWeek   int    `csv:"sessions_per_week"`
	RequiredEquipment string `csv:"required_equipment"`
	PreferredDays     string `csv:"preferred_days"`
	Batches           string `csv:"batches"`
}

// facultyRow is the CSV row shape of a Faculty. Availability and preferred
// times are packed as `Day HH:MM-HH:MM` entries joined by `;`.
type facultyRow struct {
	ID               string `csv:"id"`
	Name             string `csv:"name"`
	Department       string `csv:"department"`
	Email            string `csv:"email"`
	Availability     string `csv:"availability"`
	MaxHoursPerWeek  int    `csv:"max_hours_per_week"`
	PreferredTimes   string `csv:"preferred_times"`
	QualifiedCourses string `csv:"qualified_courses"`
}

// classroomRow is the CSV row shape of a Classroom.
type classroomRow struct {
	ID        string `csv:"id"`
	Name      string `csv:"name"`
	Type      string `csv:"type"`
	Capacity  int    `csv:"capacity"`
	Equipment string `csv:"equipment"`
	Location  string `csv:"location"`
}

// scheduleRow is the CSV row shape of a ScheduleEntry, the export format
// consumers read (mirrors the teacher's ScheduleCSVRow).
type scheduleRow struct {
	CourseID     string `csv:"course_id"`
	SessionIndex int    `csv:"session_index"`
	FacultyID    string `csv:"faculty_id"`
	ClassroomID  string `csv:"classroom_id"`
	Day          string `csv:"day"`
	StartTime    string `csv:"start_time"`
	EndTime      string `csv:"end_time"`
}

// LoadCourses reads Course rows from a CSV file.
func LoadCourses(path string) ([]model.Course, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: opening %s: %w", path, err)
	}
	defer file.Close()

	var rows []*courseRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("csvio: parsing %s: %w", path, err)
	}

	courses := make([]model.Course, 0, len(rows))
	for _, r := range rows {
		days, err := parseDayList(r.PreferredDays)
		if err != nil {
			return nil, fmt.Errorf("csvio: course %s: %w", r.ID, err)
		}
		courses = append(courses, model.Course{
			ID:                model.CourseID(r.ID),
			Code:              r.Code,
			Name:              r.Name,
			Department:        r.Department,
			Semester:          r.Semester,
			Credits:           r.Credits,
			EnrolledCount:     r.EnrolledCount,
			CourseType:        model.CourseType(r.CourseType),
			DurationMinutes:   r.DurationMinutes,
			SessionsPerWeek:   r.SessionsPerWeek,
			RequiredEquipment: splitList(r.RequiredEquipment),
			PreferredDays:     days,
			Batches:           splitList(r.Batches),
		})
	}
	return courses, nil
}

// LoadFaculty reads Faculty rows from a CSV file.
func LoadFaculty(path string) ([]model.Faculty, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: opening %s: %w", path, err)
	}
	defer file.Close()

	var rows []*facultyRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("csvio: parsing %s: %w", path, err)
	}

	faculty := make([]model.Faculty, 0, len(rows))
	for _, r := range rows {
		availability, err := parseSlotList(r.Availability)
		if err != nil {
			return nil, fmt.Errorf("csvio: faculty %s: availability: %w", r.ID, err)
		}
		preferred, err := parseSlotList(r.PreferredTimes)
		if err != nil {
			return nil, fmt.Errorf("csvio: faculty %s: preferred_times: %w", r.ID, err)
		}

		var qualified []model.CourseID
		for _, id := range splitList(r.QualifiedCourses) {
			qualified = append(qualified, model.CourseID(id))
		}

		faculty = append(faculty, model.Faculty{
			ID:               model.FacultyID(r.ID),
			Name:             r.Name,
			Department:       r.Department,
			Email:            r.Email,
			Availability:     availability,
			MaxHoursPerWeek:  r.MaxHoursPerWeek,
			PreferredTimes:   preferred,
			QualifiedCourses: qualified,
		})
	}
	return faculty, nil
}

// LoadClassrooms reads Classroom rows from a CSV file.
func LoadClassrooms(path string) ([]model.Classroom, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: opening %s: %w", path, err)
	}
	defer file.Close()

	var rows []*classroomRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("csvio: parsing %s: %w", path, err)
	}

	classrooms := make([]model.Classroom, 0, len(rows))
	for _, r := range rows {
		classrooms = append(classrooms, model.Classroom{
			ID:        model.ClassroomID(r.ID),
			Name:      r.Name,
			Type:      model.ClassroomType(r.Type),
			Capacity:  r.Capacity,
			Equipment: splitList(r.Equipment),
			Location:  r.Location,
		})
	}
	return classrooms, nil
}

// ExportSchedule writes schedule's entries as CSV rows to path, ordered the
// way PrintSchedule prints them: department-free here since ScheduleEntry
// carries no department, entries are instead ordered by (day, start_time,
// course_id) for a stable, readable file.
func ExportSchedule(schedule *model.Schedule, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvio: creating %s: %w", path, err)
	}
	defer out.Close()

	rows := scheduleRows(schedule)
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("csvio: writing %s: %w", path, err)
	}
	return nil
}

// ExportScheduleString renders schedule's entries as a CSV string.
func ExportScheduleString(schedule *model.Schedule) (string, error) {
	rows := scheduleRows(schedule)
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("csvio: marshalling schedule: %w", err)
	}
	return str, nil
}

// PrintSchedule writes a human-readable weekly grid to w, grouped by day,
// mirroring the teacher's PrintSchedule layout.
func PrintSchedule(w io.Writer, schedule *model.Schedule) {
	rows := scheduleRows(schedule)
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %s-%s  %-10s room=%-10s faculty=%s\n", r.Day, r.StartTime, r.EndTime, r.CourseID, r.ClassroomID, r.FacultyID)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(rows))
}

func scheduleRows(schedule *model.Schedule) []*scheduleRow {
	rows := make([]*scheduleRow, 0, len(schedule.Entries))
	for _, e := range schedule.Entries {
		rows = append(rows, &scheduleRow{
			CourseID:     string(e.CourseID),
			SessionIndex: e.Requirement.SessionIndex,
			FacultyID:    string(e.FacultyID),
			ClassroomID:  string(e.ClassroomID),
			Day:          e.TimeSlot.Day.String(),
			StartTime:    e.TimeSlot.StartHHMM(),
			EndTime:      e.TimeSlot.EndHHMM(),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			di, _ := model.ParseDay(rows[i].Day)
			dj, _ := model.ParseDay(rows[j].Day)
			return di < dj
		}
		if rows[i].StartTime != rows[j].StartTime {
			return rows[i].StartTime < rows[j].StartTime
		}
		return rows[i].CourseID < rows[j].CourseID
	})
	return rows
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDayList(s string) ([]model.Day, error) {
	names := splitList(s)
	if len(names) == 0 {
		return nil, nil
	}
	days := make([]model.Day, len(names))
	for i, n := range names {
		d, err := model.ParseDay(n)
		if err != nil {
			return nil, err
		}
		days[i] = d
	}
	return days, nil
}

// parseSlotList parses `;`-separated `Day HH:MM-HH:MM` entries.
func parseSlotList(s string) ([]model.TimeSlot, error) {
	entries := splitList(s)
	if len(entries) == 0 {
		return nil, nil
	}
	slots := make([]model.TimeSlot, 0, len(entries))
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) != 2 {
			return nil, fmt.Errorf("expected 'Day HH:MM-HH:MM', got %q", entry)
		}
		day, err := model.ParseDay(fields[0])
		if err != nil {
			return nil, err
		}
		bounds := strings.SplitN(fields[1], "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("expected 'HH:MM-HH:MM', got %q", fields[1])
		}
		ts, err := model.NewTimeSlot(day, bounds[0], bounds[1])
		if err != nil {
			return nil, err
		}
		slots = append(slots, ts)
	}
	return slots, nil
}
