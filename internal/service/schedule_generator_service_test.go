package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-api/internal/models"
)

func TestScheduleGeneratorServiceGenerateFeasible(t *testing.T) {
	service := newSchedulerServiceFixture(t, schedulerFixtureConfig{})

	resp, err := service.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "feasible", resp.Status)
	assert.NotEmpty(t, resp.Sessions)
}

func TestScheduleGeneratorServiceGenerateHonoursUnavailable(t *testing.T) {
	service := newSchedulerServiceFixture(t, schedulerFixtureConfig{
		preferences: map[string]*models.TeacherPreference{
			"teacher-1": mockPreference("MONDAY", "1"),
		},
	})

	resp, err := service.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "feasible", resp.Status)
	for _, session := range resp.Sessions {
		if session.Faculty == "Teacher One" {
			assert.NotEqual(t, 0, session.Slot, "blocked slot (Monday 1st period) should not be used")
		}
	}
}

func TestScheduleGeneratorServiceGenerateInfeasibleWithNoFaculty(t *testing.T) {
	service := newSchedulerServiceFixture(t, schedulerFixtureConfig{noAssignments: true})

	resp, err := service.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "infeasible", resp.Status)
	assert.NotEmpty(t, resp.Message)
}

// --- Fixtures ---

type schedulerFixtureConfig struct {
	preferences   map[string]*models.TeacherPreference
	noAssignments bool
}

func newSchedulerServiceFixture(t *testing.T, cfg schedulerFixtureConfig) *ScheduleGeneratorService {
	subjects := schedulerSubjectStub{
		items: []models.Subject{
			{ID: "math", Code: "MATH101", Name: "Mathematics", WeeklySessions: 1, DurationMinutes: 60},
			{ID: "science", Code: "SCI101", Name: "Science", WeeklySessions: 1, DurationMinutes: 60},
		},
	}
	teachers := schedulerTeacherStub{
		items: []models.Teacher{
			{ID: "teacher-1", FullName: "Teacher One", Active: true},
			{ID: "teacher-2", FullName: "Teacher Two", Active: true},
		},
	}
	var assignments schedulerAssignmentStub
	if !cfg.noAssignments {
		assignments.items = []models.TeacherAssignment{
			{TeacherID: "teacher-1", SubjectID: "math"},
			{TeacherID: "teacher-2", SubjectID: "science"},
		}
	}
	prefs := schedulerPreferenceStub{items: cfg.preferences}
	rooms := schedulerRoomStub{items: []models.Room{{ID: "room-1", Name: "Room 1", Capacity: 40}}}
	batches := schedulerBatchStub{items: []models.Batch{{ID: "batch-1", Name: "X-A", StudentCount: 30}}}

	return NewScheduleGeneratorService(subjects, teachers, assignments, prefs, rooms, batches, zap.NewNop(), ScheduleGeneratorConfig{
		SolveTimeoutSeconds: 5,
		SearchWorkers:       2,
	})
}

type schedulerSubjectStub struct{ items []models.Subject }

func (s schedulerSubjectStub) ListForScheduling(ctx context.Context) ([]models.Subject, error) {
	return s.items, nil
}

type schedulerTeacherStub struct{ items []models.Teacher }

func (s schedulerTeacherStub) ListActiveForScheduling(ctx context.Context) ([]models.Teacher, error) {
	return s.items, nil
}

type schedulerAssignmentStub struct{ items []models.TeacherAssignment }

func (s schedulerAssignmentStub) ListForScheduling(ctx context.Context) ([]models.TeacherAssignment, error) {
	return s.items, nil
}

type schedulerPreferenceStub struct{ items map[string]*models.TeacherPreference }

func (s schedulerPreferenceStub) ListAll(ctx context.Context) (map[string]*models.TeacherPreference, error) {
	return s.items, nil
}

type schedulerRoomStub struct{ items []models.Room }

func (s schedulerRoomStub) List(ctx context.Context) ([]models.Room, error) {
	return s.items, nil
}

type schedulerBatchStub struct{ items []models.Batch }

func (s schedulerBatchStub) ListForScheduling(ctx context.Context) ([]models.Batch, error) {
	return s.items, nil
}

func mockPreference(day, slot string) *models.TeacherPreference {
	payload, _ := json.Marshal([]models.TeacherUnavailableSlot{{DayOfWeek: day, TimeRange: slot}})
	return &models.TeacherPreference{
		TeacherID:   "teacher-1",
		Unavailable: payload,
	}
}
