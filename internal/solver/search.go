package solver

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// searchOutcome is the tri-state result of a single search attempt.
type searchOutcome int

const (
	outcomeFeasible searchOutcome = iota
	outcomeInfeasible
	outcomeTimedOut
)

// search runs the CP-style backtracking search described in §4.4: a
// configurable wall-clock bound and a pool of parallel workers exploring
// independent variable/value orderings. The model's constraint domains
// (C1, C2) are already baked into facSlotDomain/roomDomain; search enforces
// C3-C6 by forward checking during assignment.
//
// The first worker to report a feasible assignment wins; its siblings are
// cancelled. If every worker exhausts its search space with no solution,
// the outcome is Infeasible. Otherwise (at least one worker is cut off by
// the deadline) the outcome is TimedOut, even when another worker did
// exhaust its space.
func search(m *model, opts Options) ([]Session, searchOutcome) {
	opts = opts.normalize()

	if quickInfeasible(m) {
		return nil, outcomeInfeasible
	}

	order := variableOrder(m)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(opts.SolveTimeoutSeconds*float64(time.Second)))
	defer cancel()

	type result struct {
		sessions  []Session
		exhausted bool
	}

	results := make(chan result, opts.SearchWorkers)
	var wg sync.WaitGroup
	for w := 0; w < opts.SearchWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			var rng *rand.Rand
			if workerID == 0 {
				rng = nil // deterministic baseline worker
			} else {
				rng = rand.New(rand.NewSource(int64(workerID) * 2654435761))
			}
			b := newBacktracker(m, order, rng, ctx)
			sessions, exhausted := b.run()
			select {
			case results <- result{sessions: sessions, exhausted: exhausted}:
			case <-ctx.Done():
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	exhaustedCount := 0
	for r := range results {
		if r.sessions != nil {
			cancel() // stop remaining workers; we have a feasible schedule
			return r.sessions, outcomeFeasible
		}
		if r.exhausted {
			exhaustedCount++
		}
	}

	if exhaustedCount == opts.SearchWorkers {
		return nil, outcomeInfeasible
	}
	return nil, outcomeTimedOut
}

// quickInfeasible detects a guaranteed-infeasible model via a pigeonhole
// check on C5 before spending any search time: a batch cannot place more
// sessions than there are slots in the week, since its sessions must all
// land on distinct slots. This never changes the feasible set - it only
// short-circuits the search to a conclusion it would otherwise have reached
// after exhausting a combinatorially large, highly symmetric search tree.
func quickInfeasible(m *model) bool {
	counts := make(map[int]int, len(m.batches))
	for _, batchIdxs := range m.batchesOf {
		for _, bi := range batchIdxs {
			counts[bi]++
		}
	}
	for _, count := range counts {
		if count > TotalSlots {
			return true
		}
	}
	return false
}

// variableOrder sorts sessions most-constrained-first (smallest combined
// faculty/slot x room domain), a search hint that never changes the
// feasible set.
func variableOrder(m *model) []int {
	order := make([]int, len(m.sessions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da := len(m.facSlotDomain[order[a]]) * len(m.roomDomain[order[a]])
		db := len(m.facSlotDomain[order[b]]) * len(m.roomDomain[order[b]])
		return da < db
	})
	return order
}

// backtracker carries one worker's mutable search state.
type backtracker struct {
	m     *model
	order []int
	rng   *rand.Rand
	ctx   context.Context

	assigned     []Session
	facSlotUsed  map[int]map[int]bool
	roomSlotUsed map[int]map[int]bool
	batchSlot    map[int]map[int]bool
	facLoad      map[int]int

	nodes     int
	timedOut  bool
}

func newBacktracker(m *model, order []int, rng *rand.Rand, ctx context.Context) *backtracker {
	return &backtracker{
		m:            m,
		order:        order,
		rng:          rng,
		ctx:          ctx,
		assigned:     make([]Session, len(m.sessions)),
		facSlotUsed:  make(map[int]map[int]bool),
		roomSlotUsed: make(map[int]map[int]bool),
		batchSlot:    make(map[int]map[int]bool),
		facLoad:      make(map[int]int),
	}
}

// run attempts to find a complete feasible assignment. It returns
// (sessions, false) on success, (nil, true) if the whole search space was
// exhausted without success (a certain Infeasible), or (nil, false) if it was
// cancelled mid-search (an Unknown/TimedOut outcome for this worker).
func (b *backtracker) run() ([]Session, bool) {
	ok := b.backtrack(0)
	if b.timedOut {
		return nil, false
	}
	if ok {
		out := make([]Session, len(b.m.sessions))
		copy(out, b.assigned)
		return out, false
	}
	return nil, true
}

func (b *backtracker) backtrack(pos int) bool {
	if pos == len(b.order) {
		return true
	}

	b.nodes++
	if b.nodes%2048 == 0 {
		select {
		case <-b.ctx.Done():
			b.timedOut = true
			return false
		default:
		}
	}

	i := b.order[pos]
	ses := b.m.sessions[i]

	pairs := b.m.facSlotDomain[i]
	pairOrder := make([]int, len(pairs))
	for idx := range pairOrder {
		pairOrder[idx] = idx
	}
	if b.rng != nil {
		b.rng.Shuffle(len(pairOrder), func(x, y int) { pairOrder[x], pairOrder[y] = pairOrder[y], pairOrder[x] })
	}

	rooms := b.m.roomDomain[i]
	roomOrder := make([]int, len(rooms))
	for idx := range roomOrder {
		roomOrder[idx] = idx
	}
	if b.rng != nil {
		b.rng.Shuffle(len(roomOrder), func(x, y int) { roomOrder[x], roomOrder[y] = roomOrder[y], roomOrder[x] })
	}

	for _, pIdx := range pairOrder {
		pair := pairs[pIdx]
		if b.timedOut {
			return false
		}
		if !b.canAssignFaculty(i, pair.Faculty, pair.Slot) {
			continue
		}
		for _, rIdx := range roomOrder {
			r := rooms[rIdx]
			if !b.canAssignRoom(r, pair.Slot) {
				continue
			}

			b.commit(i, pair.Faculty, r, pair.Slot)
			ses.Faculty, ses.Room, ses.Slot = pair.Faculty, r, pair.Slot
			b.assigned[i] = ses

			if b.backtrack(pos + 1) {
				return true
			}
			if b.timedOut {
				return false
			}
			b.uncommit(i, pair.Faculty, r, pair.Slot)
		}
	}
	return false
}

// canAssignFaculty checks C3 (no faculty double-booking), C5 (batch
// non-overlap) and C6 (weekly load bound) for a candidate (faculty, slot).
func (b *backtracker) canAssignFaculty(sessionIdx, f, slot int) bool {
	if b.facSlotUsed[f] != nil && b.facSlotUsed[f][slot] {
		return false
	}
	if b.facLoad[f]+1 > b.m.faculty[f].MaxWeeklyLoad {
		return false
	}
	for _, bi := range b.m.batchesOf[sessionIdx] {
		if b.batchSlot[bi] != nil && b.batchSlot[bi][slot] {
			return false
		}
	}
	return true
}

// canAssignRoom checks C4 (no room double-booking).
func (b *backtracker) canAssignRoom(r, slot int) bool {
	return b.roomSlotUsed[r] == nil || !b.roomSlotUsed[r][slot]
}

func (b *backtracker) commit(sessionIdx, f, r, slot int) {
	if b.facSlotUsed[f] == nil {
		b.facSlotUsed[f] = make(map[int]bool)
	}
	b.facSlotUsed[f][slot] = true
	if b.roomSlotUsed[r] == nil {
		b.roomSlotUsed[r] = make(map[int]bool)
	}
	b.roomSlotUsed[r][slot] = true
	for _, bi := range b.m.batchesOf[sessionIdx] {
		if b.batchSlot[bi] == nil {
			b.batchSlot[bi] = make(map[int]bool)
		}
		b.batchSlot[bi][slot] = true
	}
	b.facLoad[f]++
}

func (b *backtracker) uncommit(sessionIdx, f, r, slot int) {
	delete(b.facSlotUsed[f], slot)
	delete(b.roomSlotUsed[r], slot)
	for _, bi := range b.m.batchesOf[sessionIdx] {
		delete(b.batchSlot[bi], slot)
	}
	b.facLoad[f]--
}
