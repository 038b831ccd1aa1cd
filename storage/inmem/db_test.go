package inmemdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/extension"
	"github.com/trezcool/educonnect/core/feewaiver"
	"github.com/trezcool/educonnect/core/material"
)

func TestSeed(t *testing.T) {
	db := Open()
	require.NoError(t, db.Seed("t1"))

	classes := db.QueryClasses("t1")
	require.Len(t, classes, 2)
	assert.Equal(t, "Mathematics", classes[0].Subject)
	assert.Equal(t, "Physics", classes[1].Subject)
	assert.Empty(t, db.QueryClasses("t2"))

	waivers := db.QueryFeeWaivers("t1")
	require.Len(t, waivers, 2)
	assert.Equal(t, "Joel Kabila", waivers[0].StudentName(), "newest first")

	exts := db.QueryExtensions("t1")
	require.Len(t, exts, 2)
	assert.Equal(t, "Mathematics", exts[0].ClassSubject)
	assert.Equal(t, extension.StatusPending, exts[0].Status)
}

func TestClasses(t *testing.T) {
	db := Open()
	c := db.CreateClass(class.Class{TeacherID: "t1", Subject: "Math", MonthlyFee: 50, CoverPhoto: "/uploads/a.png"})
	assert.NotEmpty(t, c.ID)
	assert.True(t, c.IsActive)

	t.Run("update", func(t *testing.T) {
		got, err := db.UpdateClass(class.Class{ID: c.ID, TeacherID: "t1", Subject: "Algebra", MonthlyFee: 60})
		require.NoError(t, err)
		assert.Equal(t, "Algebra", got.Subject)
		assert.Equal(t, "/uploads/a.png", got.CoverPhoto, "kept when not replaced")

		_, err = db.UpdateClass(class.Class{ID: c.ID, TeacherID: "t2", Subject: "Stolen"})
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := db.CreateMaterial("t1", material.Material{ClassID: c.ID, Title: "Intro", Type: material.TypeLink})
		require.NoError(t, err)

		assert.Equal(t, ErrNotFound, db.DeleteClass("t2", c.ID))
		require.NoError(t, db.DeleteClass("t1", c.ID))
		assert.Empty(t, db.QueryMaterials(c.ID))
		_, err = db.GetClass("t1", c.ID)
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestCreateMaterial(t *testing.T) {
	db := Open()
	c := db.CreateClass(class.Class{TeacherID: "t1", Subject: "Math"})

	m, err := db.CreateMaterial("t1", material.Material{ClassID: c.ID, Title: "Intro", Type: material.TypePDF})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, []material.Material{m}, db.QueryMaterials(c.ID))

	_, err = db.CreateMaterial("t2", material.Material{ClassID: c.ID})
	assert.Equal(t, ErrNotFound, err)
	_, err = db.CreateMaterial("t1", material.Material{ClassID: "nope"})
	assert.Equal(t, ErrNotFound, err)
}

func TestDecideFeeWaiver(t *testing.T) {
	db := Open()
	c := db.CreateClass(class.Class{TeacherID: "t1", Subject: "Math"})
	r := db.CreateFeeWaiver(feewaiver.Request{ClassID: c.ID, Reason: "hardship"})
	assert.Equal(t, feewaiver.StatusPending, r.Status)

	tests := []struct {
		name         string
		teacherID    string
		id           string
		decision     feewaiver.Decision
		wantDiscount float64
		wantErr      error
	}{
		{name: "approve", teacherID: "t1", id: r.ID, decision: feewaiver.Decision{Status: feewaiver.StatusApproved, DiscountPercentage: 40}, wantDiscount: 40},
		{name: "reject drops discount", teacherID: "t1", id: r.ID, decision: feewaiver.Decision{Status: feewaiver.StatusRejected, DiscountPercentage: 40}},
		{name: "other teacher", teacherID: "t2", id: r.ID, decision: feewaiver.Decision{Status: feewaiver.StatusApproved}, wantErr: ErrNotFound},
		{name: "unknown", teacherID: "t1", id: "nope", decision: feewaiver.Decision{Status: feewaiver.StatusApproved}, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.DecideFeeWaiver(tt.teacherID, tt.id, tt.decision)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.decision.Status, got.Status)
			assert.Equal(t, tt.wantDiscount, got.DiscountPercentage)
		})
	}
}

func TestDecideExtension(t *testing.T) {
	db := Open()
	c := db.CreateClass(class.Class{TeacherID: "t1", Subject: "Math"})
	m, err := db.CreateMaterial("t1", material.Material{ClassID: c.ID, LessonName: "Lesson 1"})
	require.NoError(t, err)
	r, err := db.CreateExtension(extension.Request{MaterialID: m.ID, StudentName: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "Math", r.ClassSubject)
	assert.Equal(t, "Lesson 1", r.LessonName)

	_, err = db.CreateExtension(extension.Request{MaterialID: "nope"})
	assert.Equal(t, ErrNotFound, err)

	_, err = db.DecideExtension("t1", extension.Decision{MaterialID: "other", RequestID: r.RequestID, Status: extension.StatusApproved})
	assert.Equal(t, ErrNotFound, err)
	_, err = db.DecideExtension("t2", extension.Decision{MaterialID: m.ID, RequestID: r.RequestID, Status: extension.StatusApproved})
	assert.Equal(t, ErrNotFound, err)

	got, err := db.DecideExtension("t1", extension.Decision{MaterialID: m.ID, RequestID: r.RequestID, Status: extension.StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, extension.StatusRejected, got.Status)
}

func TestFiles(t *testing.T) {
	db := Open()
	p := db.SaveFile(File{Name: "Cover.PNG", MediaType: "image/png", Content: []byte("png")})
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, p)

	f, err := db.GetFile(p)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MediaType)

	_, err = db.GetFile("/uploads/nope.png")
	assert.Equal(t, ErrNotFound, err)
}
