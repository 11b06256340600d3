// Package solver implements the weekly timetable constraint solver: the
// formulation of faculty/room/slot assignment as a constraint-satisfaction
// model, the posting of hard constraints, and the extraction of a feasible
// schedule.
package solver

import "encoding/json"

const (
	// Days is the number of scheduling days per week.
	Days = 5
	// SlotsPerDay is the number of discrete slots within a single day.
	SlotsPerDay = 8
	// TotalSlots is the size of the weekly time grid (Days * SlotsPerDay).
	TotalSlots = Days * SlotsPerDay
)

// SubjectInput is the external, not-yet-validated shape of a subject record.
type SubjectInput struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	WeeklySessions  int    `json:"weekly_sessions"`
	DurationMinutes int    `json:"duration_minutes"`
	Department      string `json:"department,omitempty"`
}

// FacultyInput is the external shape of a faculty record.
//
// AvailableSlots and MaxWeeklyLoad are pointers so normalize can distinguish
// an absent field (apply the default) from an explicit empty/zero value
// (apply the stricter literal meaning). See normalize for the exact rule.
type FacultyInput struct {
	ID               string   `json:"_id"`
	Name             string   `json:"name"`
	SubjectsCanTeach []string `json:"subjects_can_teach"`
	AvailableSlots   *[]int   `json:"available_slots"`
	MaxWeeklyLoad    *int     `json:"max_weekly_load"`
}

// RoomInput is the external shape of a room record.
type RoomInput struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	RoomType string `json:"room_type,omitempty"`
}

// BatchInput is the external shape of a batch record. Callers may name the
// subject list field either "subject_ids" (the core's canonical name) or
// "subjects" (the name used by surrounding layers); both are accepted.
type BatchInput struct {
	Name         string   `json:"name"`
	StudentCount int      `json:"student_count"`
	SubjectIDs   []string `json:"subject_ids,omitempty"`
}

// UnmarshalJSON merges the "subjects" alias into SubjectIDs when
// "subject_ids" is absent, per the dual-name input contract.
func (b *BatchInput) UnmarshalJSON(data []byte) error {
	type alias BatchInput
	var aux struct {
		alias
		Subjects []string `json:"subjects,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = BatchInput(aux.alias)
	if len(b.SubjectIDs) == 0 && len(aux.Subjects) > 0 {
		b.SubjectIDs = aux.Subjects
	}
	return nil
}

// subject is the normalized, integer-indexed internal subject record.
type subject struct {
	Index           int
	ID              string
	Code            string
	Name            string
	Department      string
	WeeklySessions  int
	DurationMinutes int
	RequiredSize    int // precomputed: max student_count among batches taking this subject
}

// faculty is the normalized, integer-indexed internal faculty record.
type faculty struct {
	Index          int
	ID             string
	Name           string
	Teachable      map[string]struct{}
	AvailableSlots map[int]struct{}
	MaxWeeklyLoad  int
}

// room is the normalized, integer-indexed internal room record.
type room struct {
	Index    int
	ID       string
	Name     string
	Capacity int
	RoomType string
}

// batch is the normalized, integer-indexed internal batch record.
type batch struct {
	Index        int
	Name         string
	StudentCount int
	Subjects     map[string]struct{}
}

// normalized bundles the four normalized collections produced by normalize.
type normalized struct {
	Subjects  []subject
	Faculties []faculty
	Rooms     []room
	Batches   []batch
	subjByIdx map[string]int // subject code -> index
}

// Session is one scheduling unit produced by session expansion: one
// occurrence of a subject. Faculty, Room and Slot are filled in by the search (search.go); expandSessions initialises them to -1.
type Session struct {
	ID         string
	SubjectIdx int
	Faculty    int
	Room       int
	Slot       int
}

// SessionOut is the decoded, human-readable output record for one session.
type SessionOut struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	SubjectCode string `json:"subject_code"`
	Faculty     string `json:"faculty"`
	Room        string `json:"room"`
	Slot        int    `json:"slot"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Options configures the search stage.
type Options struct {
	// SolveTimeoutSeconds bounds solver wall-clock time. Defaults to 15s.
	SolveTimeoutSeconds float64
	// SearchWorkers is the number of parallel search goroutines. Defaults to 8.
	SearchWorkers int
}

// DefaultOptions returns the spec's default tunables.
func DefaultOptions() Options {
	return Options{SolveTimeoutSeconds: 15, SearchWorkers: 8}
}

func (o Options) normalize() Options {
	if o.SolveTimeoutSeconds <= 0 {
		o.SolveTimeoutSeconds = 15
	}
	if o.SearchWorkers <= 0 {
		o.SearchWorkers = 8
	}
	return o
}
