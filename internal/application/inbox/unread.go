package inbox

// unreadCounter holds per-conversation unread counts. Reconciliation replaces
// the whole map; live events adjust single entries until the next reconciliation.
type unreadCounter struct {
	counts map[string]int64
}

func newUnreadCounter() *unreadCounter {
	return &unreadCounter{counts: make(map[string]int64)}
}

// reset installs authoritative counts. The open conversation is always zero.
func (u *unreadCounter) reset(counts map[string]int64, openKey string) {
	u.counts = make(map[string]int64, len(counts))
	for k, n := range counts {
		if k == openKey || n <= 0 {
			continue
		}
		u.counts[k] = n
	}
}

func (u *unreadCounter) clear(key string) {
	delete(u.counts, key)
}

func (u *unreadCounter) increment(key string) int64 {
	u.counts[key]++
	return u.counts[key]
}

func (u *unreadCounter) get(key string) int64 {
	return u.counts[key]
}

func (u *unreadCounter) total() int64 {
	var sum int64
	for _, n := range u.counts {
		sum += n
	}
	return sum
}

// maxAppliedIDs bounds the memory of live messages already applied.
const maxAppliedIDs = 512

// recentIDs remembers the last n message IDs in insertion order.
type recentIDs struct {
	seen  map[string]struct{}
	order []string
	limit int
}

func newRecentIDs(limit int) *recentIDs {
	return &recentIDs{seen: make(map[string]struct{}, limit), limit: limit}
}

// add reports whether id was new. Empty IDs are always new.
func (r *recentIDs) add(id string) bool {
	if id == "" {
		return true
	}
	if _, ok := r.seen[id]; ok {
		return false
	}
	r.seen[id] = struct{}{}
	r.order = append(r.order, id)
	if len(r.order) > r.limit {
		delete(r.seen, r.order[0])
		r.order = r.order[1:]
	}
	return true
}
