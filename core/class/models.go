package class

import (
	"strconv"

	"github.com/trezcool/educonnect/core"
)

// ViewAllPath is the screen listing the teacher's classes.
const ViewAllPath = "/teacher/classes/view-all"

const noDescriptionText = "No description available"

var (
	QueryEndpoint  = core.Endpoint{Method: "GET", Path: "/api/teacher/classes"}
	CreateEndpoint = core.Endpoint{Method: "POST", Path: "/api/classes/create"}
	UpdateEndpoint = core.Endpoint{Method: "PUT", Path: "/api/classes/:id"}
	DeleteEndpoint = core.Endpoint{Method: "DELETE", Path: "/api/classes/:id"}
)

// Class is a subject a teacher offers for a monthly fee.
type Class struct {
	ID            string  `json:"_id"`
	TeacherID     string  `json:"teacherId,omitempty"`
	Subject       string  `json:"subject"`
	MonthlyFee    float64 `json:"monthlyFee"`
	Description   string  `json:"description,omitempty"`
	CoverPhoto    string  `json:"coverPhoto,omitempty"` // path relative to the API base URL
	IsActive      bool    `json:"isActive"`
	StudentsCount int     `json:"studentsCount"`
}

// DisplayDescription returns the description, or a placeholder when there is none.
func (c Class) DisplayDescription() string {
	if c.Description == "" {
		return noDescriptionText
	}
	return c.Description
}

// EditPath is the screen editing the class.
func (c Class) EditPath() string {
	return "/teacher/classes/" + c.ID + "/update"
}

// NewClass is the draft of the create and update class forms.
// MonthlyFee is kept as typed so that non numeric input can be reported.
type NewClass struct {
	Subject     string           `json:"subject" validate:"required,notblank,min=2,max=50"`
	MonthlyFee  string           `json:"monthlyFee" validate:"required,decimal,positive,maxnum=10000"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	CoverPhoto  *core.Attachment `json:"coverPhoto" validate:"-"`
}

var _ core.Draft = NewClass{}

var newClassMessages = map[string]string{
	"subject.required":     "Subject is required",
	"subject.notblank":     "Subject is required",
	"subject.min":          "Subject must be at least 2 characters long",
	"subject.max":          "Subject must be less than 50 characters",
	"monthlyFee.required":  "Monthly fee is required",
	"monthlyFee.decimal":   "Monthly fee must be a positive number",
	"monthlyFee.positive":  "Monthly fee must be a positive number",
	"monthlyFee.maxnum":    "Monthly fee cannot exceed $10,000",
	"description.max":      "Description must be less than 500 characters",
	"coverPhoto.mediatype": "Cover photo must be a JPEG or PNG file",
	"coverPhoto.maxsize":   "Cover photo must be less than 5MB",
}

func (nc NewClass) Messages() map[string]string { return newClassMessages }

// Fee returns the monthly fee as a number. Only meaningful on a valid draft.
func (nc NewClass) Fee() float64 {
	fee, _ := strconv.ParseFloat(core.CleanString(nc.MonthlyFee), 64)
	return fee
}

func (nc NewClass) Payload() core.Payload {
	var p core.Payload
	p.Add("subject", nc.Subject).
		Add("monthlyFee", nc.Fee()).
		Add("description", nc.Description).
		Attach("coverPhoto", nc.CoverPhoto)
	return p
}
