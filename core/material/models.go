package material

import (
	"github.com/trezcool/educonnect/core"
)

// Material types
const (
	TypePDF   = "pdf"
	TypeVideo = "video"
	TypeLink  = "link"
)

var UploadEndpoint = core.Endpoint{Method: "POST", Path: "/api/teacher/classes/:id/materials"}

// Material is a learning resource attached to a lesson of a class.
type Material struct {
	ID         string `json:"_id"`
	ClassID    string `json:"classId"`
	Title      string `json:"title"`
	LessonName string `json:"lessonName"`
	Type       string `json:"type"`
	Content    string `json:"content"` // URL for links, file path otherwise
	UploadDate string `json:"uploadDate"`
}

// NewMaterial is the draft of the upload material form.
// Links carry a URL in Content; PDFs and videos carry a File.
type NewMaterial struct {
	ClassID    string           `json:"classId" validate:"required,notblank"`
	Title      string           `json:"title" validate:"required,notblank,max=100"`
	LessonName string           `json:"lessonName" validate:"required,notblank,max=100"`
	Type       string           `json:"type" validate:"required,oneof=pdf video link"`
	Content    string           `json:"content" validate:"-"`
	File       *core.Attachment `json:"file" validate:"-"`
	UploadDate string           `json:"uploadDate" validate:"required,isodate"`
}

var _ core.Draft = NewMaterial{}

var newMaterialMessages = map[string]string{
	"classId.required":    "Please select a class",
	"classId.notblank":    "Please select a class",
	"title.required":      "Title is required",
	"title.notblank":      "Title is required",
	"title.max":           "Title must be less than 100 characters",
	"lessonName.required": "Lesson name is required",
	"lessonName.notblank": "Lesson name is required",
	"lessonName.max":      "Lesson name must be less than 100 characters",
	"type.required":       "Material type is required",
	"type.oneof":          "Material type must be pdf, video or link",
	"content.required":    "Content URL is required",
	"content.url":         "Content URL must be a valid URL",
	"file.required":       "File is required",
	"file.mediatype":      "File must be a PDF for pdf materials or an MP4 for videos",
	"file.maxsize":        "File is too large",
	"uploadDate.required": "Upload date is required",
	"uploadDate.isodate":  "Upload date must be a valid date",
}

func (nm NewMaterial) Messages() map[string]string { return newMaterialMessages }

func (nm NewMaterial) Endpoint() core.Endpoint {
	return UploadEndpoint.Expand(map[string]string{"id": nm.ClassID})
}

func (nm NewMaterial) Payload() core.Payload {
	var p core.Payload
	p.Add("title", nm.Title).
		Add("lessonName", nm.LessonName).
		Add("type", nm.Type).
		Add("uploadDate", nm.UploadDate)
	if nm.Type == TypeLink {
		p.Add("content", nm.Content)
	} else {
		p.Attach("file", nm.File)
	}
	return p
}
