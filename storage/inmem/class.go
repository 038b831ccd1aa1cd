package inmemdb

import (
	"sort"

	"github.com/trezcool/educonnect/core/class"
)

// QueryClasses lists the classes of a teacher by subject.
func (db *DB) QueryClasses(teacherID string) []class.Class {
	db.mu.RLock()
	defer db.mu.RUnlock()

	classes := make([]class.Class, 0)
	for _, c := range db.classes {
		if c.TeacherID == teacherID {
			classes = append(classes, *c)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Subject < classes[j].Subject })
	return classes
}

// GetClass returns the class if it belongs to the teacher.
func (db *DB) GetClass(teacherID, id string) (class.Class, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	c, ok := db.classes[id]
	if !ok || c.TeacherID != teacherID {
		return class.Class{}, ErrNotFound
	}
	return *c, nil
}

func (db *DB) CreateClass(c class.Class) class.Class {
	db.mu.Lock()
	defer db.mu.Unlock()

	c.ID = newID()
	c.IsActive = true
	db.classes[c.ID] = &c
	return c
}

// UpdateClass saves the editable fields. An empty cover photo keeps the current one.
func (db *DB) UpdateClass(c class.Class) (class.Class, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	orig, ok := db.classes[c.ID]
	if !ok || orig.TeacherID != c.TeacherID {
		return class.Class{}, ErrNotFound
	}
	orig.Subject = c.Subject
	orig.MonthlyFee = c.MonthlyFee
	orig.Description = c.Description
	if c.CoverPhoto != "" {
		orig.CoverPhoto = c.CoverPhoto
	}
	return *orig, nil
}

// DeleteClass removes the class and its materials.
func (db *DB) DeleteClass(teacherID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.classes[id]
	if !ok || c.TeacherID != teacherID {
		return ErrNotFound
	}
	delete(db.classes, id)
	for mid, m := range db.materials {
		if m.ClassID == id {
			delete(db.materials, mid)
		}
	}
	return nil
}
