package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-api/internal/dto"
	"github.com/noah-isme/sma-adp-api/internal/models"
	"github.com/noah-isme/sma-adp-api/internal/solver"
	appErrors "github.com/noah-isme/sma-adp-api/pkg/errors"
)

type schedulerSubjectReader interface {
	ListForScheduling(ctx context.Context) ([]models.Subject, error)
}

type schedulerTeacherReader interface {
	ListActiveForScheduling(ctx context.Context) ([]models.Teacher, error)
}

type schedulerAssignmentReader interface {
	ListForScheduling(ctx context.Context) ([]models.TeacherAssignment, error)
}

type schedulerPreferenceReader interface {
	ListAll(ctx context.Context) (map[string]*models.TeacherPreference, error)
}

type schedulerRoomReader interface {
	List(ctx context.Context) ([]models.Room, error)
}

type schedulerBatchReader interface {
	ListForScheduling(ctx context.Context) ([]models.Batch, error)
}

// ScheduleGeneratorConfig tunes the underlying solver search.
type ScheduleGeneratorConfig struct {
	SolveTimeoutSeconds float64
	SearchWorkers       int
}

// ScheduleGeneratorService builds a whole-institution weekly timetable by
// hydrating the solver's input contract from persisted subjects, teachers,
// eligibility assignments, preferences, rooms and batches, then running the
// constraint solver over the entire dataset at once.
type ScheduleGeneratorService struct {
	subjects    schedulerSubjectReader
	teachers    schedulerTeacherReader
	assignments schedulerAssignmentReader
	prefs       schedulerPreferenceReader
	rooms       schedulerRoomReader
	batches     schedulerBatchReader
	logger      *zap.Logger
	opts        solver.Options
}

// NewScheduleGeneratorService constructs the service.
func NewScheduleGeneratorService(
	subjects schedulerSubjectReader,
	teachers schedulerTeacherReader,
	assignments schedulerAssignmentReader,
	prefs schedulerPreferenceReader,
	rooms schedulerRoomReader,
	batches schedulerBatchReader,
	logger *zap.Logger,
	cfg ScheduleGeneratorConfig,
) *ScheduleGeneratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := solver.Options{
		SolveTimeoutSeconds: cfg.SolveTimeoutSeconds,
		SearchWorkers:       cfg.SearchWorkers,
	}
	return &ScheduleGeneratorService{
		subjects:    subjects,
		teachers:    teachers,
		assignments: assignments,
		prefs:       prefs,
		rooms:       rooms,
		batches:     batches,
		logger:      logger,
		opts:        opts,
	}
}

// Generate hydrates the solver's input collections from storage and runs the
// constraint search, returning the decoded weekly timetable.
func (s *ScheduleGeneratorService) Generate(ctx context.Context) (*dto.TimetableResponse, error) {
	subjects, err := s.subjects.ListForScheduling(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	teachers, err := s.teachers.ListActiveForScheduling(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	assignments, err := s.assignments.ListForScheduling(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher assignments")
	}
	preferences, err := s.prefs.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher preferences")
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	batches, err := s.batches.ListForScheduling(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load batches")
	}

	subjectsByID := make(map[string]models.Subject, len(subjects))
	for _, subj := range subjects {
		subjectsByID[subj.ID] = subj
	}

	result := solver.GenerateSchedule(
		subjectsToSolverInput(subjects),
		facultyFromTeachers(teachers, assignments, subjectsByID, preferences),
		roomsToSolverInput(rooms),
		batchesToSolverInput(batches),
		s.opts,
	)

	return toTimetableResponse(result), nil
}

func toTimetableResponse(result solver.Result) *dto.TimetableResponse {
	if result.Status == "success" {
		sessions := make([]dto.TimetableSession, 0, len(result.Schedule))
		for _, ses := range result.Schedule {
			sessions = append(sessions, dto.TimetableSession{
				ID:          ses.ID,
				Subject:     ses.Subject,
				SubjectCode: ses.SubjectCode,
				Faculty:     ses.Faculty,
				Room:        ses.Room,
				Slot:        ses.Slot,
				Start:       ses.Start,
				End:         ses.End,
			})
		}
		return &dto.TimetableResponse{Status: "feasible", Sessions: sessions}
	}

	status := "infeasible"
	if solverErr, ok := result.Err.(*solver.Error); ok && solverErr.Kind == solver.KindTimedOut {
		status = "timed_out"
	}
	return &dto.TimetableResponse{Status: status, Message: result.Message}
}

func expandTimeRange(raw string) []int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.Contains(raw, "-") {
		parts := strings.SplitN(raw, "-", 2)
		start := parseTimeSlot(parts[0])
		end := parseTimeSlot(parts[1])
		if start == 0 || end == 0 || end < start {
			return nil
		}
		var slots []int
		for i := start; i <= end; i++ {
			slots = append(slots, i)
		}
		return slots
	}
	value := parseTimeSlot(raw)
	if value == 0 {
		return nil
	}
	return []int{value}
}

func parseTimeSlot(raw string) int {
	raw = strings.TrimSpace(raw)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

var dayNameIndex = map[string]int{
	"MONDAY":    1,
	"TUESDAY":   2,
	"WEDNESDAY": 3,
	"THURSDAY":  4,
	"FRIDAY":    5,
	"SATURDAY":  6,
	"SUNDAY":    7,
}

func dayStringToIndex(name string) int {
	return dayNameIndex[strings.ToUpper(strings.TrimSpace(name))]
}
