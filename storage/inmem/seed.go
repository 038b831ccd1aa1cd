package inmemdb

import (
	"time"

	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
)

// Seed fills the DB with demo data for one teacher.
func (db *DB) Seed(teacherID string) error {
	now := NowFunc().UTC()

	math := db.CreateClass(class.Class{
		TeacherID:     teacherID,
		Subject:       "Mathematics",
		MonthlyFee:    50,
		Description:   "Algebra and geometry for secondary school students.",
		StudentsCount: 12,
	})
	physics := db.CreateClass(class.Class{
		TeacherID:     teacherID,
		Subject:       "Physics",
		MonthlyFee:    65.5,
		StudentsCount: 7,
	})

	algebra, err := db.CreateMaterial(teacherID, material.Material{
		ClassID:    math.ID,
		Title:      "Linear equations",
		LessonName: "Lesson 1",
		Type:       material.TypeLink,
		Content:    "https://example.com/linear-equations",
		UploadDate: now.AddDate(0, 0, -7).Format("2006-01-02"),
	})
	if err != nil {
		return err
	}
	optics, err := db.CreateMaterial(teacherID, material.Material{
		ClassID:    physics.ID,
		Title:      "Optics",
		LessonName: "Lesson 3",
		Type:       material.TypeLink,
		Content:    "https://example.com/optics",
		UploadDate: now.AddDate(0, 0, -3).Format("2006-01-02"),
	})
	if err != nil {
		return err
	}

	db.CreateFeeWaiver(feewaiver.Request{
		Student:   &feewaiver.Student{ID: newID(), Name: "Grace Mbuyi", Email: "grace@example.com"},
		ClassID:   math.ID,
		Reason:    "My parents lost their jobs this year and cannot cover the full monthly fee.",
		CreatedAt: now.Add(-48 * time.Hour),
	})
	db.CreateFeeWaiver(feewaiver.Request{
		Student:      &feewaiver.Student{ID: newID(), Name: "Joel Kabila", Email: "joel@example.com"},
		ClassID:      physics.ID,
		Reason:       "Scholarship pending",
		DocumentPath: "/uploads/scholarship-letter.pdf",
		CreatedAt:    now.Add(-24 * time.Hour),
	})

	for _, r := range []extension.Request{
		{MaterialID: algebra.ID, StudentName: "Grace Mbuyi", StudentEmail: "grace@example.com", Reason: "I was sick", RequestedAt: now.Add(-36 * time.Hour)},
		{MaterialID: optics.ID, StudentName: "Joel Kabila", StudentEmail: "joel@example.com", Reason: "Power cut at home", RequestedAt: now.Add(-12 * time.Hour), Status: extension.StatusApproved},
	} {
		if _, err = db.CreateExtension(r); err != nil {
			return err
		}
	}
	return nil
}
