package solver

import "sort"

// facSlotPair is an admissible (faculty, slot) assignment for a session,
// i.e. a row of the C1 table constraint.
type facSlotPair struct {
	Faculty int
	Slot    int
}

// model holds the decision-variable domains and precomputed constraint
// tables for every session, derived once from the normalized input.
type model struct {
	sessions []Session
	subjects []subject
	faculty  []faculty
	rooms    []room
	batches  []batch

	// C1: admissible (faculty, slot) pairs per session.
	facSlotDomain [][]facSlotPair
	// C2: admissible room indices per session.
	roomDomain [][]int
	// batchesOf[i] lists the batch indices whose subject set includes
	// sessions[i]'s subject - used to post C5.
	batchesOf [][]int
}

// buildModel declares the domains for every session and posts C1/C2,
// failing fast (as specified) if either domain is empty for some session.
func buildModel(n *normalized) (*model, error) {
	sessions := expandSessions(n.Subjects)

	m := &model{
		sessions:      sessions,
		subjects:      n.Subjects,
		faculty:       n.Faculties,
		rooms:         n.Rooms,
		batches:       n.Batches,
		facSlotDomain: make([][]facSlotPair, len(sessions)),
		roomDomain:    make([][]int, len(sessions)),
		batchesOf:     make([][]int, len(sessions)),
	}

	for i, ses := range sessions {
		subj := n.Subjects[ses.SubjectIdx]

		// C1 — faculty eligibility + availability, tabled jointly.
		var pairs []facSlotPair
		for _, f := range n.Faculties {
			if _, can := f.Teachable[subj.Code]; !can {
				continue
			}
			for slot := range f.AvailableSlots {
				pairs = append(pairs, facSlotPair{Faculty: f.Index, Slot: slot})
			}
		}
		if len(pairs) == 0 {
			return nil, errNoEligibleFacultySlot(subj.Code)
		}
		sort.Slice(pairs, func(a, b int) bool {
			if pairs[a].Faculty != pairs[b].Faculty {
				return pairs[a].Faculty < pairs[b].Faculty
			}
			return pairs[a].Slot < pairs[b].Slot
		})
		m.facSlotDomain[i] = pairs

		// C2 — room capacity.
		if subj.RequiredSize == 0 {
			rooms := make([]int, len(n.Rooms))
			for r := range n.Rooms {
				rooms[r] = r
			}
			m.roomDomain[i] = rooms
		} else {
			var rooms []int
			for _, r := range n.Rooms {
				if r.Capacity >= subj.RequiredSize {
					rooms = append(rooms, r.Index)
				}
			}
			if len(rooms) == 0 {
				return nil, errNoRoomCapacity(subj.Code, subj.RequiredSize)
			}
			m.roomDomain[i] = rooms
		}

		// Batch membership for C5.
		var batchIdxs []int
		for _, b := range n.Batches {
			if _, ok := b.Subjects[subj.Code]; ok {
				batchIdxs = append(batchIdxs, b.Index)
			}
		}
		m.batchesOf[i] = batchIdxs
	}

	return m, nil
}
