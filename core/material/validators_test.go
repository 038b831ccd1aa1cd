package material

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/tests"
)

func TestNewMaterial_Validate(t *testing.T) {
	v := testutil.NewValidator(InitValidators)

	pdf := core.NewAttachment("notes.pdf", "application/pdf", []byte("%PDF-1.4"))
	mp4 := core.NewAttachment("lesson.mp4", "video/mp4", []byte("mp4"))
	valid := func(mutate func(*NewMaterial)) NewMaterial {
		nm := NewMaterial{
			ClassID:    "c1",
			Title:      "Fractions",
			LessonName: "Lesson 3",
			Type:       TypePDF,
			File:       pdf,
			UploadDate: "2026-03-01",
		}
		mutate(&nm)
		return nm
	}

	tests := []struct {
		name  string
		draft NewMaterial
		want  core.ValidationResult
	}{
		{
			name:  "valid pdf",
			draft: valid(func(nm *NewMaterial) {}),
			want:  core.ValidationResult{},
		},
		{
			name:  "valid video",
			draft: valid(func(nm *NewMaterial) { nm.Type, nm.File = TypeVideo, mp4 }),
			want:  core.ValidationResult{},
		},
		{
			name:  "valid link",
			draft: valid(func(nm *NewMaterial) { nm.Type, nm.File, nm.Content = TypeLink, nil, "https://example.com/fractions" }),
			want:  core.ValidationResult{},
		},
		{
			name:  "empty draft",
			draft: NewMaterial{},
			want: core.ValidationResult{
				"classId":    "Please select a class",
				"title":      "Title is required",
				"lessonName": "Lesson name is required",
				"type":       "Material type is required",
				"uploadDate": "Upload date is required",
			},
		},
		{
			name:  "unknown type",
			draft: valid(func(nm *NewMaterial) { nm.Type = "audio" }),
			want:  core.ValidationResult{"type": "Material type must be pdf, video or link"},
		},
		{
			name:  "long title",
			draft: valid(func(nm *NewMaterial) { nm.Title = strings.Repeat("t", 101) }),
			want:  core.ValidationResult{"title": "Title must be less than 100 characters"},
		},
		{
			name:  "bad date",
			draft: valid(func(nm *NewMaterial) { nm.UploadDate = "01/03/2026" }),
			want:  core.ValidationResult{"uploadDate": "Upload date must be a valid date"},
		},
		{
			name:  "link without url",
			draft: valid(func(nm *NewMaterial) { nm.Type, nm.File = TypeLink, nil }),
			want:  core.ValidationResult{"content": "Content URL is required"},
		},
		{
			name:  "link with invalid url",
			draft: valid(func(nm *NewMaterial) { nm.Type, nm.Content = TypeLink, "not a url" }),
			want:  core.ValidationResult{"content": "Content URL must be a valid URL"},
		},
		{
			name:  "pdf without file",
			draft: valid(func(nm *NewMaterial) { nm.File = nil }),
			want:  core.ValidationResult{"file": "File is required"},
		},
		{
			name:  "pdf with a video",
			draft: valid(func(nm *NewMaterial) { nm.File = mp4 }),
			want:  core.ValidationResult{"file": "File must be a PDF for pdf materials or an MP4 for videos"},
		},
		{
			name: "pdf too large",
			draft: valid(func(nm *NewMaterial) {
				nm.File = &core.Attachment{Filename: "big.pdf", MediaType: "application/pdf", Size: 20*core.MiB + 1}
			}),
			want: core.ValidationResult{"file": "File is too large"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.draft))
		})
	}
}

func TestNewMaterial_Payload(t *testing.T) {
	pdf := core.NewAttachment("notes.pdf", "application/pdf", []byte("%PDF-1.4"))

	t.Run("file", func(t *testing.T) {
		nm := NewMaterial{ClassID: "c1", Title: "Fractions", LessonName: "L3", Type: TypePDF, File: pdf, Content: "ignored", UploadDate: "2026-03-01"}
		p := nm.Payload()
		assert.True(t, p.IsMultipart())
		assert.Equal(t, map[string]interface{}{"title": "Fractions", "lessonName": "L3", "type": "pdf", "uploadDate": "2026-03-01"}, testutil.PayloadMap(&p))
		assert.Equal(t, core.Endpoint{Method: "POST", Path: "/api/teacher/classes/c1/materials"}, UploadForm(nm).Endpoint)
	})

	t.Run("link", func(t *testing.T) {
		nm := NewMaterial{ClassID: "c1", Title: "Fractions", LessonName: "L3", Type: TypeLink, File: pdf, Content: "https://example.com", UploadDate: "2026-03-01"}
		p := nm.Payload()
		assert.False(t, p.IsMultipart())
		assert.Equal(t, "https://example.com", testutil.PayloadMap(&p)["content"])
	})
}
