package feewaiver

import (
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/trezcool/educonnect/core"
)

// Request statuses
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Document kinds
const (
	DocumentPDF   = "pdf"
	DocumentImage = "image"
)

const (
	unknownStudentText = "Unknown Student"
	shortReasonLen     = 60
)

var (
	QueryEndpoint  = core.Endpoint{Method: "GET", Path: "/api/auth/teacher/fee-waiver-requests"}
	DecideEndpoint = core.Endpoint{Method: "PUT", Path: "/api/auth/teacher/fee-waiver/:id/status"}
)

type Student struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Request is a student's request to have the fees of a class waived or discounted.
type Request struct {
	ID                 string    `json:"_id"`
	Student            *Student  `json:"studentId"`
	ClassID            string    `json:"classId,omitempty"`
	Reason             string    `json:"reason"`
	DocumentPath       string    `json:"documentPath,omitempty"`
	Status             string    `json:"status"`
	TeacherComments    string    `json:"teacherComments,omitempty"`
	DiscountPercentage float64   `json:"discountPercentage"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (r Request) StudentName() string {
	if r.Student == nil || r.Student.Name == "" {
		return unknownStudentText
	}
	return r.Student.Name
}

// ShortReason truncates the reason to 60 characters.
func (r Request) ShortReason() string {
	if utf8.RuneCountInString(r.Reason) <= shortReasonLen {
		return r.Reason
	}
	return string([]rune(r.Reason)[:shortReasonLen]) + "..."
}

// DocumentKind tells how a supporting document can be previewed: pdf, image or "" when it cannot.
func DocumentKind(documentPath string) string {
	if documentPath == "" {
		return ""
	}
	switch strings.ToLower(strings.TrimPrefix(path.Ext(documentPath), ".")) {
	case "jpg", "jpeg", "png":
		return DocumentImage
	case "pdf":
		return DocumentPDF
	}
	return ""
}

// DocumentURL resolves a document path served by the backend.
func DocumentURL(baseURL, documentPath string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(documentPath, "/")
}

// Decision is the draft of the review dialog.
type Decision struct {
	Status             string  `json:"status" validate:"required,oneof=Approved Rejected"`
	TeacherComments    string  `json:"teacherComments" validate:"max=500"`
	DiscountPercentage float64 `json:"discountPercentage" validate:"min=0,max=100"`
}

var _ core.Draft = Decision{}

var decisionMessages = map[string]string{
	"status.required":        "Please select a status",
	"status.oneof":           "Status must be Approved or Rejected",
	"teacherComments.max":    "Comments must be less than 500 characters",
	"discountPercentage.min": "Discount must be between 0 and 100",
	"discountPercentage.max": "Discount must be between 0 and 100",
}

func (d Decision) Messages() map[string]string { return decisionMessages }

// Payload only carries a discount for approved requests.
func (d Decision) Payload() core.Payload {
	discount := d.DiscountPercentage
	if d.Status != StatusApproved {
		discount = 0
	}
	var p core.Payload
	p.Add("status", d.Status).
		Add("teacherComments", d.TeacherComments).
		Add("discountPercentage", discount)
	return p
}

// DecideResult is the backend answer to a decision.
type DecideResult struct {
	FeeWaiver Request `json:"feeWaiver"`
}
