// Package boundary (de)serializes the engine's entities, config and
// results to the JSON schema of spec §6: lower_snake_case field names,
// `HH:MM` time-of-day strings, capitalized enum identifiers, full English
// weekday names. Unknown input fields are ignored; missing required
// fields are reported as validation errors before a solve begins.
package boundary

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/rhyrak/go-schedule/internal/analyzer"
	"github.com/rhyrak/go-schedule/internal/engine"
	"github.com/rhyrak/go-schedule/pkg/model"
)

// TimeSlotDoc is the wire shape of a TimeSlot.
type TimeSlotDoc struct {
	Day       string `json:"day" mapstructure:"day"`
	StartTime string `json:"start_time" mapstructure:"start_time"`
	EndTime   string `json:"end_time" mapstructure:"end_time"`
}

// CourseDoc is the wire shape of a Course.
type CourseDoc struct {
	ID                string   `json:"id" mapstructure:"id"`
	Code              string   `json:"code" mapstructure:"code"`
	Name              string   `json:"name" mapstructure:"name"`
	Department        string   `json:"department" mapstructure:"department"`
	Semester          string   `json:"semester" mapstructure:"semester"`
	Credits           int      `json:"credits" mapstructure:"credits"`
	EnrolledCount     int      `json:"enrolled_count" mapstructure:"enrolled_count"`
	CourseType        string   `json:"course_type" mapstructure:"course_type"`
	DurationMinutes   int      `json:"duration_minutes" mapstructure:"duration_minutes"`
	SessionsPerWeek   int      `json:"sessions_per_week" mapstructure:"sessions_per_week"`
	RequiredEquipment []string `json:"required_equipment,omitempty" mapstructure:"required_equipment"`
	PreferredDays     []string `json:"preferred_days,omitempty" mapstructure:"preferred_days"`
	Batches           []string `json:"batches,omitempty" mapstructure:"batches"`
}

// FacultyDoc is the wire shape of a Faculty.
type FacultyDoc struct {
	ID               string        `json:"id" mapstructure:"id"`
	Name             string        `json:"name" mapstructure:"name"`
	Department       string        `json:"department" mapstructure:"department"`
	Email            string        `json:"email" mapstructure:"email"`
	Availability     []TimeSlotDoc `json:"availability" mapstructure:"availability"`
	MaxHoursPerWeek  int           `json:"max_hours_per_week" mapstructure:"max_hours_per_week"`
	PreferredTimes   []TimeSlotDoc `json:"preferred_times,omitempty" mapstructure:"preferred_times"`
	QualifiedCourses []string      `json:"qualified_courses,omitempty" mapstructure:"qualified_courses"`
}

// ClassroomDoc is the wire shape of a Classroom.
type ClassroomDoc struct {
	ID        string   `json:"id" mapstructure:"id"`
	Name      string   `json:"name" mapstructure:"name"`
	Type      string   `json:"type" mapstructure:"type"`
	Capacity  int      `json:"capacity" mapstructure:"capacity"`
	Equipment []string `json:"equipment,omitempty" mapstructure:"equipment"`
	Location  string   `json:"location" mapstructure:"location"`
}

// EntitiesDoc bundles the four input collections of §3.
type EntitiesDoc struct {
	Courses    []CourseDoc    `json:"courses" mapstructure:"courses"`
	Faculty    []FacultyDoc   `json:"faculty" mapstructure:"faculty"`
	Classrooms []ClassroomDoc `json:"classrooms" mapstructure:"classrooms"`
}

// ConfigDoc is the wire shape of the §6 config record.
type ConfigDoc struct {
	SolverType      string   `json:"solver_type,omitempty" mapstructure:"solver_type"`
	MaxTimeSeconds  int      `json:"max_time_seconds,omitempty" mapstructure:"max_time_seconds"`
	Optimize        bool     `json:"optimize,omitempty" mapstructure:"optimize"`
	SelectedCourses []string `json:"selected_courses,omitempty" mapstructure:"selected_courses"`
	SelectedFaculty []string `json:"selected_faculty,omitempty" mapstructure:"selected_faculty"`
	SelectedBatches []string `json:"selected_batches,omitempty" mapstructure:"selected_batches"`
}

// RequestDoc is a full generation request: config plus entities.
type RequestDoc struct {
	Config   ConfigDoc   `json:"config" mapstructure:"config"`
	Entities EntitiesDoc `json:"entities" mapstructure:"entities"`
}

// ScheduleEntryDoc is the wire shape of a ScheduleEntry.
type ScheduleEntryDoc struct {
	CourseID     string      `json:"course_id"`
	SessionIndex int         `json:"session_index"`
	FacultyID    string      `json:"faculty_id"`
	ClassroomID  string      `json:"classroom_id"`
	TimeSlot     TimeSlotDoc `json:"time_slot"`
}

// ScheduleDoc is the wire shape of a Schedule.
type ScheduleDoc struct {
	Entries []ScheduleEntryDoc `json:"entries"`
	Summary SummaryDoc         `json:"summary"`
}

// SummaryDoc is the wire shape of a Schedule's summary record.
type SummaryDoc struct {
	TotalSessionsScheduled int     `json:"total_sessions_scheduled"`
	Unscheduled            int     `json:"unscheduled"`
	OptimizationScore      float64 `json:"optimization_score"`
	Conflicts              int     `json:"conflicts"`
}

// StatisticsDoc is the wire shape of §6's statistics record.
type StatisticsDoc struct {
	SolverUsed            string  `json:"solver_used"`
	GenerationTimeSeconds float64 `json:"generation_time_seconds"`
	TotalEntries          int     `json:"total_entries"`
	Unscheduled           int     `json:"unscheduled"`
	Conflicts             int     `json:"conflicts"`
	OptimizationScore     float64 `json:"optimization_score"`
	TimedOut              bool    `json:"timed_out"`

	NodesExplored int     `json:"nodes_explored,omitempty"`
	MaxDepth      int     `json:"max_depth,omitempty"`
	AvgDomainSize float64 `json:"avg_domain_size,omitempty"`
}

// AnalysisDoc is the wire shape of the analyzer's report.
type AnalysisDoc struct {
	TotalConflicts       int                `json:"total_conflicts"`
	RoomUtilization      float64            `json:"room_utilization"`
	FacultyLoad          map[string]int     `json:"faculty_load"`
	ChromaticLowerBound  int                `json:"chromatic_lower_bound"`
	Suggestions          []string           `json:"suggestions"`
	ClassroomUtilization map[string]float64 `json:"classroom_utilization,omitempty"`
	TimeDistribution     map[string]int     `json:"time_distribution,omitempty"`
}

// GenerationResultDoc is the wire shape of §6's GenerationResult.
type GenerationResultDoc struct {
	Success    bool          `json:"success"`
	Schedule   *ScheduleDoc  `json:"schedule,omitempty"`
	Statistics StatisticsDoc `json:"statistics"`
	Analysis   *AnalysisDoc  `json:"analysis,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// DecodeRequest decodes a loosely-typed request document (e.g. parsed from
// JSON into map[string]interface{}) into a RequestDoc, ignoring unknown
// fields, then validates required fields before returning.
func DecodeRequest(raw map[string]interface{}) (RequestDoc, error) {
	var doc RequestDoc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return RequestDoc{}, fmt.Errorf("boundary: building decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return RequestDoc{}, fmt.Errorf("boundary: decoding request: %w", err)
	}
	return doc, validateRequest(doc)
}

func validateRequest(doc RequestDoc) error {
	for i, c := range doc.Entities.Courses {
		if c.ID == "" {
			return fmt.Errorf("courses[%d]: id is required", i)
		}
		if c.CourseType == "" {
			return fmt.Errorf("course %s: course_type is required", c.ID)
		}
	}
	for i, f := range doc.Entities.Faculty {
		if f.ID == "" {
			return fmt.Errorf("faculty[%d]: id is required", i)
		}
	}
	for i, r := range doc.Entities.Classrooms {
		if r.ID == "" {
			return fmt.Errorf("classrooms[%d]: id is required", i)
		}
		if r.Type == "" {
			return fmt.Errorf("classroom %s: type is required", r.ID)
		}
	}
	return nil
}

// ToModel converts a validated RequestDoc into a model.EntitySet and
// engine.Config.
func ToModel(doc RequestDoc) (model.EntitySet, engine.Config, error) {
	entities := model.EntitySet{}

	for _, c := range doc.Entities.Courses {
		course, err := courseToModel(c)
		if err != nil {
			return model.EntitySet{}, engine.Config{}, err
		}
		entities.Courses = append(entities.Courses, course)
	}
	for _, f := range doc.Entities.Faculty {
		faculty, err := facultyToModel(f)
		if err != nil {
			return model.EntitySet{}, engine.Config{}, err
		}
		entities.Faculty = append(entities.Faculty, faculty)
	}
	for _, r := range doc.Entities.Classrooms {
		entities.Classrooms = append(entities.Classrooms, model.Classroom{
			ID:        model.ClassroomID(r.ID),
			Name:      r.Name,
			Type:      model.ClassroomType(r.Type),
			Capacity:  r.Capacity,
			Equipment: r.Equipment,
			Location:  r.Location,
		})
	}

	config := engine.Config{
		SolverType:      engine.SolverType(doc.Config.SolverType),
		MaxTimeSeconds:  doc.Config.MaxTimeSeconds,
		Optimize:        doc.Config.Optimize,
		SelectedCourses: doc.Config.SelectedCourses,
		SelectedFaculty: doc.Config.SelectedFaculty,
		SelectedBatches: doc.Config.SelectedBatches,
	}
	return entities, config, nil
}

func courseToModel(c CourseDoc) (model.Course, error) {
	days, err := parseDays(c.PreferredDays)
	if err != nil {
		return model.Course{}, fmt.Errorf("course %s: %w", c.ID, err)
	}
	return model.Course{
		ID:                model.CourseID(c.ID),
		Code:              c.Code,
		Name:              c.Name,
		Department:        c.Department,
		Semester:          c.Semester,
		Credits:           c.Credits,
		EnrolledCount:     c.EnrolledCount,
		CourseType:        model.CourseType(c.CourseType),
		DurationMinutes:   c.DurationMinutes,
		SessionsPerWeek:   c.SessionsPerWeek,
		RequiredEquipment: c.RequiredEquipment,
		PreferredDays:     days,
		Batches:           c.Batches,
	}, nil
}

func facultyToModel(f FacultyDoc) (model.Faculty, error) {
	availability, err := timeSlotsToModel(f.Availability)
	if err != nil {
		return model.Faculty{}, fmt.Errorf("faculty %s: availability: %w", f.ID, err)
	}
	preferred, err := timeSlotsToModel(f.PreferredTimes)
	if err != nil {
		return model.Faculty{}, fmt.Errorf("faculty %s: preferred_times: %w", f.ID, err)
	}

	qualified := make([]model.CourseID, len(f.QualifiedCourses))
	for i, id := range f.QualifiedCourses {
		qualified[i] = model.CourseID(id)
	}

	return model.Faculty{
		ID:               model.FacultyID(f.ID),
		Name:             f.Name,
		Department:       f.Department,
		Email:            f.Email,
		Availability:     availability,
		MaxHoursPerWeek:  f.MaxHoursPerWeek,
		PreferredTimes:   preferred,
		QualifiedCourses: qualified,
	}, nil
}

func timeSlotsToModel(docs []TimeSlotDoc) ([]model.TimeSlot, error) {
	out := make([]model.TimeSlot, 0, len(docs))
	for _, d := range docs {
		ts, err := timeSlotToModel(d)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

func timeSlotToModel(d TimeSlotDoc) (model.TimeSlot, error) {
	day, err := model.ParseDay(d.Day)
	if err != nil {
		return model.TimeSlot{}, err
	}
	return model.NewTimeSlot(day, d.StartTime, d.EndTime)
}

func parseDays(names []string) ([]model.Day, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]model.Day, len(names))
	for i, n := range names {
		d, err := model.ParseDay(n)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// FromResult converts an engine.GenerationResult into its wire shape.
func FromResult(result engine.GenerationResult) GenerationResultDoc {
	doc := GenerationResultDoc{
		Success: result.Success,
		Error:   string(result.Error),
		Statistics: StatisticsDoc{
			SolverUsed:            result.Statistics.SolverUsed,
			GenerationTimeSeconds: result.Statistics.GenerationTimeSeconds,
			TotalEntries:          result.Statistics.TotalEntries,
			Unscheduled:           result.Statistics.Unscheduled,
			Conflicts:             result.Statistics.Conflicts,
			OptimizationScore:     result.Statistics.OptimizationScore,
			TimedOut:              result.Statistics.TimedOut,
			NodesExplored:         result.Statistics.NodesExplored,
			MaxDepth:              result.Statistics.MaxDepth,
			AvgDomainSize:         result.Statistics.AvgDomainSize,
		},
	}
	if result.Schedule != nil {
		doc.Schedule = scheduleToDoc(result.Schedule)
	}
	if result.Analysis != nil {
		doc.Analysis = analysisToDoc(*result.Analysis)
	}
	return doc
}

func scheduleToDoc(schedule *model.Schedule) *ScheduleDoc {
	doc := &ScheduleDoc{
		Summary: SummaryDoc{
			TotalSessionsScheduled: schedule.Summary.TotalSessionsScheduled,
			Unscheduled:            schedule.Summary.Unscheduled,
			OptimizationScore:      schedule.Summary.OptimizationScore,
			Conflicts:              schedule.Summary.Conflicts,
		},
	}
	for _, e := range schedule.Entries {
		doc.Entries = append(doc.Entries, ScheduleEntryDoc{
			CourseID:     string(e.CourseID),
			SessionIndex: e.Requirement.SessionIndex,
			FacultyID:    string(e.FacultyID),
			ClassroomID:  string(e.ClassroomID),
			TimeSlot: TimeSlotDoc{
				Day:       e.TimeSlot.Day.String(),
				StartTime: e.TimeSlot.StartHHMM(),
				EndTime:   e.TimeSlot.EndHHMM(),
			},
		})
	}
	return doc
}

func analysisToDoc(report analyzer.Report) *AnalysisDoc {
	facultyLoad := make(map[string]int, len(report.FacultyLoad))
	for id, minutes := range report.FacultyLoad {
		facultyLoad[string(id)] = minutes
	}
	classroomUtilization := make(map[string]float64, len(report.ClassroomUtilization))
	for id, util := range report.ClassroomUtilization {
		classroomUtilization[string(id)] = util
	}
	timeDistribution := make(map[string]int, len(report.TimeDistribution))
	for day, count := range report.TimeDistribution {
		timeDistribution[day.String()] = count
	}

	return &AnalysisDoc{
		TotalConflicts:       report.TotalConflicts,
		RoomUtilization:      report.RoomUtilization,
		FacultyLoad:          facultyLoad,
		ChromaticLowerBound:  report.ChromaticLowerBound,
		Suggestions:          report.Suggestions,
		ClassroomUtilization: classroomUtilization,
		TimeDistribution:     timeDistribution,
	}
}
