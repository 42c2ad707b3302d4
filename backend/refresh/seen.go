/*
 * backend/refresh/seen.go
 *
 * New-incident detection. IDs already shown to the user are tracked through
 * a SeenStore so detection survives restarts; unseen IDs are persisted the
 * moment they are detected.
 */

package refresh

import "github.com/argusdeck/app/backend/model"

// SeenStore records incident IDs the user has already been notified about.
// Implementations persist MarkSeen before returning.
type SeenStore interface {
	IsSeen(id int64) bool
	MarkSeen(ids []int64) error
}

// Detector filters incident lists down to the not-yet-seen entries.
type Detector struct {
	store SeenStore
}

// NewDetector builds a detector over the given store.
func NewDetector(store SeenStore) *Detector {
	return &Detector{store: store}
}

// DetectNew returns the incidents whose IDs have not been seen, preserving
// input order, and marks them seen. Calling it twice with the same list
// returns nothing the second time. The new incidents are returned even if
// persisting the marks fails; the error reports the persistence problem.
func (d *Detector) DetectNew(list []model.Incident) ([]model.Incident, error) {
	var fresh []model.Incident
	var ids []int64
	for _, inc := range list {
		if d.store.IsSeen(inc.ID) {
			continue
		}
		fresh = append(fresh, inc)
		ids = append(ids, inc.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	err := d.store.MarkSeen(ids)
	return fresh, err
}
