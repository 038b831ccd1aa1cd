package inmemdb

import (
	"sort"

	"github.com/trezcool/educonnect/core/extension"
)

// QueryExtensions lists the requests on materials of the teacher's classes, oldest first.
func (db *DB) QueryExtensions(teacherID string) []extension.Request {
	db.mu.RLock()
	defer db.mu.RUnlock()

	reqs := make([]extension.Request, 0)
	for _, r := range db.extensions {
		if db.ownsMaterial(teacherID, r.MaterialID) {
			reqs = append(reqs, *r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].RequestedAt.Before(reqs[j].RequestedAt) })
	return reqs
}

// CreateExtension files a request on an existing material. Subject and lesson are copied from it.
func (db *DB) CreateExtension(r extension.Request) (extension.Request, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	m, ok := db.materials[r.MaterialID]
	if !ok {
		return extension.Request{}, ErrNotFound
	}
	r.RequestID = newID()
	r.LessonName = m.LessonName
	if c, ok := db.classes[m.ClassID]; ok {
		r.ClassSubject = c.Subject
	}
	if r.Status == "" {
		r.Status = extension.StatusPending
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = NowFunc().UTC()
	}
	db.extensions[r.RequestID] = &r
	return r, nil
}

func (db *DB) DecideExtension(teacherID string, d extension.Decision) (extension.Request, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.extensions[d.RequestID]
	if !ok || r.MaterialID != d.MaterialID || !db.ownsMaterial(teacherID, r.MaterialID) {
		return extension.Request{}, ErrNotFound
	}
	r.Status = d.Status
	return *r, nil
}

// ownsMaterial must be called with db.mu held.
func (db *DB) ownsMaterial(teacherID, materialID string) bool {
	m, ok := db.materials[materialID]
	if !ok {
		return false
	}
	c, ok := db.classes[m.ClassID]
	return ok && c.TeacherID == teacherID
}
