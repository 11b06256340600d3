package service

import (
	"encoding/json"

	"github.com/noah-isme/sma-adp-api/internal/models"
	"github.com/noah-isme/sma-adp-api/internal/solver"
)

// subjectsToSolverInput converts persisted subjects into the solver's input
// contract. SubjectGroup doubles as the solver's department field; this repo
// has no dedicated department column and the two concepts coincide for
// scheduling purposes (subjects in the same group compete for the same pool
// of eligible faculty).
func subjectsToSolverInput(subjects []models.Subject) []solver.SubjectInput {
	out := make([]solver.SubjectInput, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, solver.SubjectInput{
			ID:              s.ID,
			Name:            s.Name,
			Code:            s.Code,
			WeeklySessions:  s.WeeklySessions,
			DurationMinutes: s.DurationMinutes,
			Department:      s.SubjectGroup,
		})
	}
	return out
}

func roomsToSolverInput(rooms []models.Room) []solver.RoomInput {
	out := make([]solver.RoomInput, 0, len(rooms))
	for _, r := range rooms {
		roomType := ""
		if r.RoomType != nil {
			roomType = *r.RoomType
		}
		out = append(out, solver.RoomInput{
			ID:       r.ID,
			Name:     r.Name,
			Capacity: r.Capacity,
			RoomType: roomType,
		})
	}
	return out
}

func batchesToSolverInput(batches []models.Batch) []solver.BatchInput {
	out := make([]solver.BatchInput, 0, len(batches))
	for _, b := range batches {
		var ids []string
		if len(b.SubjectIDs) > 0 {
			_ = json.Unmarshal(b.SubjectIDs, &ids)
		}
		out = append(out, solver.BatchInput{
			Name:         b.Name,
			StudentCount: b.StudentCount,
			SubjectIDs:   ids,
		})
	}
	return out
}

// facultyFromTeachers synthesizes the solver's FacultyInput collection from
// the teacher, teacher-assignment and teacher-preference tables: this repo
// has no standalone "faculty" entity, so one faculty record is derived per
// active teacher, with SubjectsCanTeach drawn from their assignments and
// AvailableSlots/MaxWeeklyLoad from their preference row when one exists.
func facultyFromTeachers(
	teachers []models.Teacher,
	assignments []models.TeacherAssignment,
	subjectsByID map[string]models.Subject,
	preferences map[string]*models.TeacherPreference,
) []solver.FacultyInput {
	canTeach := make(map[string]map[string]struct{})
	for _, a := range assignments {
		subj, ok := subjectsByID[a.SubjectID]
		if !ok {
			continue
		}
		set, ok := canTeach[a.TeacherID]
		if !ok {
			set = make(map[string]struct{})
			canTeach[a.TeacherID] = set
		}
		set[subj.Code] = struct{}{}
	}

	out := make([]solver.FacultyInput, 0, len(teachers))
	for _, t := range teachers {
		if !t.Active {
			continue
		}
		codes := make([]string, 0, len(canTeach[t.ID]))
		for code := range canTeach[t.ID] {
			codes = append(codes, code)
		}

		f := solver.FacultyInput{
			ID:               t.ID,
			Name:             t.FullName,
			SubjectsCanTeach: codes,
		}

		if pref, ok := preferences[t.ID]; ok && pref != nil {
			if pref.MaxLoadPerWeek > 0 {
				f.MaxWeeklyLoad = &pref.MaxLoadPerWeek
			}
			if slots := availableSlotsFromPreference(pref); slots != nil {
				f.AvailableSlots = &slots
			}
		}

		out = append(out, f)
	}
	return out
}

// availableSlotsFromPreference turns an unavailable-window list (day name +
// 1-based period or period range such as "1-3", parsed with dayStringToIndex
// and expandTimeRange) into the solver's whitelist of open 0-39 slot
// indices across the 5-day, 8-slot-per-day grid. A nil return means the
// preference row carries no usable restriction and the solver default
// (fully available) applies.
func availableSlotsFromPreference(pref *models.TeacherPreference) []int {
	if pref == nil || len(pref.Unavailable) == 0 {
		return nil
	}
	var blocked []models.TeacherUnavailableSlot
	if err := json.Unmarshal(pref.Unavailable, &blocked); err != nil || len(blocked) == 0 {
		return nil
	}

	blockedSlots := make(map[int]struct{})
	for _, b := range blocked {
		day := dayStringToIndex(b.DayOfWeek)
		if day < 1 || day > solver.Days {
			continue
		}
		for _, hour := range expandTimeRange(b.TimeRange) {
			if hour < 1 || hour > solver.SlotsPerDay {
				continue
			}
			blockedSlots[(day-1)*solver.SlotsPerDay+(hour-1)] = struct{}{}
		}
	}
	if len(blockedSlots) == 0 {
		return nil
	}

	available := make([]int, 0, solver.TotalSlots-len(blockedSlots))
	for slot := 0; slot < solver.TotalSlots; slot++ {
		if _, blocked := blockedSlots[slot]; !blocked {
			available = append(available, slot)
		}
	}
	return available
}
