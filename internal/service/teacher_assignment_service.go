package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-api/internal/models"
	appErrors "github.com/noah-isme/sma-adp-api/pkg/errors"
)

type teacherAssignmentRepo interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignmentDetail, error)
	Exists(ctx context.Context, teacherID, subjectID string) (bool, error)
	Create(ctx context.Context, assignment *models.TeacherAssignment) error
	Delete(ctx context.Context, teacherID, assignmentID string) error
	CountByTeacher(ctx context.Context, teacherID string) (int, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// CreateTeacherAssignmentRequest describes an eligibility assignment payload.
type CreateTeacherAssignmentRequest struct {
	SubjectID string `json:"subject_id" validate:"required"`
}

// TeacherAssignmentService manages which subjects a teacher is eligible to teach.
type TeacherAssignmentService struct {
	teachers    teacherRepository
	subjects    subjectReader
	assignments teacherAssignmentRepo
	prefs       teacherPreferenceRepo
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherAssignmentService creates a service instance.
func NewTeacherAssignmentService(
	teachers teacherRepository,
	subjects subjectReader,
	assignments teacherAssignmentRepo,
	prefs teacherPreferenceRepo,
	validate *validator.Validate,
	logger *zap.Logger,
) *TeacherAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherAssignmentService{
		teachers:    teachers,
		subjects:    subjects,
		assignments: assignments,
		prefs:       prefs,
		validator:   validate,
		logger:      logger,
	}
}

// ListByTeacher returns eligibility assignments for the teacher.
func (s *TeacherAssignmentService) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignmentDetail, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Assign marks a teacher as eligible to teach a subject.
func (s *TeacherAssignmentService) Assign(ctx context.Context, teacherID string, req CreateTeacherAssignmentRequest) (*models.TeacherAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if !teacher.Active {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "teacher inactive")
	}

	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	exists, err := s.assignments.Exists(ctx, teacherID, req.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already eligible for this subject")
	}

	if err := s.ensureLoadCapacity(ctx, teacherID); err != nil {
		return nil, err
	}

	assignment := &models.TeacherAssignment{
		TeacherID: teacherID,
		SubjectID: req.SubjectID,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Remove deletes an assignment.
func (s *TeacherAssignmentService) Remove(ctx context.Context, teacherID, assignmentID string) error {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if err := s.assignments.Delete(ctx, teacherID, assignmentID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}

// ensureLoadCapacity rejects new assignments once a teacher already holds as
// many subjects as their weekly session budget allows. This is a coarse,
// assignment-time check; the solver itself enforces the real weekly
// session-count bound (C6) during generation.
func (s *TeacherAssignmentService) ensureLoadCapacity(ctx context.Context, teacherID string) error {
	if s.prefs == nil {
		return nil
	}
	pref, err := s.prefs.GetByTeacher(ctx, teacherID)
	if err != nil && err != sql.ErrNoRows {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read teacher preferences")
	}
	if pref == nil || pref.MaxLoadPerWeek <= 0 {
		return nil
	}
	count, err := s.assignments.CountByTeacher(ctx, teacherID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read assignment load")
	}
	if count >= pref.MaxLoadPerWeek {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "teacher has reached weekly load limit")
	}
	return nil
}
