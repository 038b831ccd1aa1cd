package inmemdb

import (
	"sort"

	"github.com/trezcool/educonnect/core/feewaiver"
)

// QueryFeeWaivers lists the requests on the teacher's classes, newest first.
func (db *DB) QueryFeeWaivers(teacherID string) []feewaiver.Request {
	db.mu.RLock()
	defer db.mu.RUnlock()

	reqs := make([]feewaiver.Request, 0)
	for _, r := range db.feeWaivers {
		if c, ok := db.classes[r.ClassID]; ok && c.TeacherID == teacherID {
			reqs = append(reqs, *r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.After(reqs[j].CreatedAt) })
	return reqs
}

func (db *DB) CreateFeeWaiver(r feewaiver.Request) feewaiver.Request {
	db.mu.Lock()
	defer db.mu.Unlock()

	r.ID = newID()
	if r.Status == "" {
		r.Status = feewaiver.StatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = NowFunc().UTC()
	}
	db.feeWaivers[r.ID] = &r
	return r
}

// DecideFeeWaiver records the teacher's decision on a request of one of their classes.
func (db *DB) DecideFeeWaiver(teacherID, id string, d feewaiver.Decision) (feewaiver.Request, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.feeWaivers[id]
	if !ok {
		return feewaiver.Request{}, ErrNotFound
	}
	if c, ok := db.classes[r.ClassID]; !ok || c.TeacherID != teacherID {
		return feewaiver.Request{}, ErrNotFound
	}
	r.Status = d.Status
	r.TeacherComments = d.TeacherComments
	r.DiscountPercentage = 0
	if d.Status == feewaiver.StatusApproved {
		r.DiscountPercentage = d.DiscountPercentage
	}
	return *r, nil
}
