package inmemdb

import (
	"github.com/trezcool/educonnect/core/material"
)

// CreateMaterial adds a material to a class of the teacher.
func (db *DB) CreateMaterial(teacherID string, m material.Material) (material.Material, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.classes[m.ClassID]
	if !ok || c.TeacherID != teacherID {
		return material.Material{}, ErrNotFound
	}
	m.ID = newID()
	db.materials[m.ID] = &m
	return m, nil
}

func (db *DB) QueryMaterials(classID string) []material.Material {
	db.mu.RLock()
	defer db.mu.RUnlock()

	mats := make([]material.Material, 0)
	for _, m := range db.materials {
		if m.ClassID == classID {
			mats = append(mats, *m)
		}
	}
	return mats
}
