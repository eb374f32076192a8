package feed

import "sync"

const DefaultWindowLimit = 20

// Window is the bounded, signature-unique transfer list shown to the user,
// ordered newest-first by discovery.
type Window struct {
	mu        sync.RWMutex
	limit     int
	items     []TokenTransfer
	newestSig string
}

func NewWindow(limit int) *Window {
	if limit <= 0 {
		limit = DefaultWindowLimit
	}
	return &Window{limit: limit}
}

// Merge puts batch ahead of the current list and reports whether the list
// changed. A batch whose first signature equals the last recorded newest
// signature is ignored. On duplicates the first occurrence wins, so fresh
// copies replace older ones.
func (w *Window) Merge(batch []TokenTransfer) bool {
	if len(batch) == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if batch[0].Signature == w.newestSig {
		return false
	}

	merged := make([]TokenTransfer, 0, w.limit)
	seen := make(map[string]struct{}, len(batch)+len(w.items))
	for _, list := range [][]TokenTransfer{batch, w.items} {
		for _, t := range list {
			if len(merged) == w.limit {
				break
			}
			if _, dup := seen[t.Signature]; dup {
				continue
			}
			seen[t.Signature] = struct{}{}
			merged = append(merged, t)
		}
	}

	w.items = merged
	w.newestSig = batch[0].Signature
	return true
}

// Snapshot returns a copy of the current list.
func (w *Window) Snapshot() []TokenTransfer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]TokenTransfer, len(w.items))
	copy(out, w.items)
	return out
}

// Newest returns the newest signature recorded by the last effective merge.
func (w *Window) Newest() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.newestSig
}

func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}
