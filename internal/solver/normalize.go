package solver

// normalize converts the four external input collections into the internal,
// integer-indexed, cross-referenced record set described in §4.1.
func normalize(subjects []SubjectInput, faculties []FacultyInput, rooms []RoomInput, batches []BatchInput) (*normalized, error) {
	if len(subjects) == 0 || len(faculties) == 0 || len(rooms) == 0 || len(batches) == 0 {
		return nil, errMissingData()
	}

	subjByCode := make(map[string]int, len(subjects))
	normSubjects := make([]subject, len(subjects))
	for i, s := range subjects {
		if _, dup := subjByCode[s.Code]; dup {
			return nil, errDuplicateSubjectCode(s.Code)
		}
		subjByCode[s.Code] = i

		weekly := s.WeeklySessions
		if weekly < 1 {
			weekly = 1
		}
		normSubjects[i] = subject{
			Index:           i,
			ID:              s.ID,
			Code:            s.Code,
			Name:            s.Name,
			Department:      s.Department,
			WeeklySessions:  weekly,
			DurationMinutes: s.DurationMinutes,
		}
	}

	normFaculties := make([]faculty, len(faculties))
	for i, f := range faculties {
		teachable := make(map[string]struct{}, len(f.SubjectsCanTeach))
		for _, code := range f.SubjectsCanTeach {
			teachable[code] = struct{}{}
		}

		available := make(map[int]struct{})
		if f.AvailableSlots == nil {
			// absent -> full range [0, TotalSlots)
			for slot := 0; slot < TotalSlots; slot++ {
				available[slot] = struct{}{}
			}
		} else {
			// explicit (possibly empty) list -> only these slots, out-of-range discarded
			for _, slot := range *f.AvailableSlots {
				if slot >= 0 && slot < TotalSlots {
					available[slot] = struct{}{}
				}
			}
		}

		normFaculties[i] = faculty{
			Index:          i,
			ID:             f.ID,
			Name:           f.Name,
			Teachable:      teachable,
			AvailableSlots: available,
			// MaxWeeklyLoad is resolved below once total session count is known.
			MaxWeeklyLoad: -1,
		}
		if f.MaxWeeklyLoad != nil {
			normFaculties[i].MaxWeeklyLoad = *f.MaxWeeklyLoad
		}
	}

	totalSessions := 0
	for _, s := range normSubjects {
		totalSessions += s.WeeklySessions
	}
	for i := range normFaculties {
		if normFaculties[i].MaxWeeklyLoad < 0 {
			normFaculties[i].MaxWeeklyLoad = totalSessions
		}
	}

	normRooms := make([]room, len(rooms))
	for i, r := range rooms {
		normRooms[i] = room{Index: i, ID: r.ID, Name: r.Name, Capacity: r.Capacity, RoomType: r.RoomType}
	}

	normBatches := make([]batch, len(batches))
	for i, b := range batches {
		active := make(map[string]struct{}, len(b.SubjectIDs))
		for _, code := range b.SubjectIDs {
			// UnknownSubjectInBatch: drop codes that don't resolve to a known
			// subject rather than fail strictly.
			if _, ok := subjByCode[code]; ok {
				active[code] = struct{}{}
			}
		}
		normBatches[i] = batch{Index: i, Name: b.Name, StudentCount: b.StudentCount, Subjects: active}
	}

	// required room size per subject: max student_count among batches that
	// include the subject's code, 0 if none do.
	for i := range normSubjects {
		required := 0
		for _, b := range normBatches {
			if _, ok := b.Subjects[normSubjects[i].Code]; ok && b.StudentCount > required {
				required = b.StudentCount
			}
		}
		normSubjects[i].RequiredSize = required
	}

	return &normalized{
		Subjects:  normSubjects,
		Faculties: normFaculties,
		Rooms:     normRooms,
		Batches:   normBatches,
		subjByIdx: subjByCode,
	}, nil
}
