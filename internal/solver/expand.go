package solver

import "fmt"

// expandSessions produces one Session per weekly occurrence of each subject.
// Sessions of the same subject are interchangeable: the model never forces
// them onto the same faculty.
func expandSessions(subjects []subject) []Session {
	var sessions []Session
	for _, s := range subjects {
		for n := 0; n < s.WeeklySessions; n++ {
			sessions = append(sessions, Session{
				ID:         fmt.Sprintf("%s_%d", s.Code, n),
				SubjectIdx: s.Index,
				Faculty:    -1,
				Room:       -1,
				Slot:       -1,
			})
		}
	}
	return sessions
}
