package solver

import "time"

// Result is the outcome of GenerateSchedule: either a feasible Schedule or a
// failure carrying a structured Err (see errors.go) describing why.
type Result struct {
	Status   string       `json:"status"` // "success" or "fail"
	Schedule []SessionOut `json:"schedule,omitempty"`
	Message  string       `json:"message,omitempty"`
	Err      error        `json:"-"`
}

// GenerateSchedule is the core's single logical entry point (§6): given the
// four input collections, it runs ingestion & normalization, session
// expansion, model construction and search, and returns either a feasible
// weekly schedule or a structured failure.
//
// Pre-search failures (missing data, duplicate codes, empty C1/C2 domains)
// are deterministic and are reported before the solver ever runs. Solver
// infeasibility and timeout are reported as a single generic outcome each;
// the core does not diagnose which hard constraint caused either.
func GenerateSchedule(subjects []SubjectInput, faculties []FacultyInput, rooms []RoomInput, batches []BatchInput, opts Options) Result {
	n, err := normalize(subjects, faculties, rooms, batches)
	if err != nil {
		return fail(err)
	}

	m, err := buildModel(n)
	if err != nil {
		return fail(err)
	}

	if len(m.sessions) == 0 {
		// Every subject's weekly_sessions coerced to >=1 in normalize, so
		// this only occurs with a genuinely empty subject list, already
		// rejected by normalize's MissingData check. Kept as a defensive
		// no-op path for an empty session set.
		return Result{Status: "success", Schedule: []SessionOut{}}
	}

	sessions, outcome := search(m, opts)
	switch outcome {
	case outcomeInfeasible:
		return fail(errInfeasible())
	case outcomeTimedOut:
		return fail(errTimedOut())
	}

	return Result{Status: "success", Schedule: decode(m, sessions)}
}

func fail(err error) Result {
	return Result{Status: "fail", Message: err.Error(), Err: err}
}

// decode maps solved session variables back into human-readable output
// records, per §4.4: start = slot_to_time(slot), end = start + duration.
func decode(m *model, sessions []Session) []SessionOut {
	out := make([]SessionOut, 0, len(sessions))
	for _, ses := range sessions {
		subj := m.subjects[ses.SubjectIdx]
		fac := m.faculty[ses.Faculty]
		rm := m.rooms[ses.Room]
		start := slotToTime(ses.Slot)
		end := start.Add(time.Duration(subj.DurationMinutes) * time.Minute)

		out = append(out, SessionOut{
			ID:          ses.ID,
			Subject:     subj.Name,
			SubjectCode: subj.Code,
			Faculty:     fac.Name,
			Room:        rm.Name,
			Slot:        ses.Slot,
			Start:       start.Format(timestampLayout),
			End:         end.Format(timestampLayout),
		})
	}
	return out
}
