package extension

import (
	"sort"
	"time"

	"github.com/trezcool/educonnect/core"
)

// Request statuses
const (
	StatusAll      = "all" // filter only
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	QueryEndpoint  = core.Endpoint{Method: "GET", Path: "/api/classes/extension/requests"}
	HandleEndpoint = core.Endpoint{Method: "POST", Path: "/api/classes/extension/handle"}

	statusOrder = map[string]int{StatusPending: 1, StatusApproved: 2, StatusRejected: 3}
)

// Request is a student's request for more time on a material's deadline.
type Request struct {
	MaterialID   string    `json:"materialId"`
	RequestID    string    `json:"requestId"`
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	ClassSubject string    `json:"classSubject"`
	LessonName   string    `json:"lessonName"`
	Reason       string    `json:"reason"`
	RequestedAt  time.Time `json:"requestedAt"`
	Status       string    `json:"status"`
}

// Filter keeps the requests with the given status; "all" and "" keep everything.
func Filter(reqs []Request, status string) []Request {
	res := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if status == "" || status == StatusAll || r.Status == status {
			res = append(res, r)
		}
	}
	return res
}

// Sort orders requests by status: pending, approved then rejected (reversed when desc).
// Requests of the same status keep their order.
func Sort(reqs []Request, desc bool) []Request {
	res := append([]Request(nil), reqs...)
	sort.SliceStable(res, func(i, j int) bool {
		if desc {
			return statusOrder[res[i].Status] > statusOrder[res[j].Status]
		}
		return statusOrder[res[i].Status] < statusOrder[res[j].Status]
	})
	return res
}

// Decision is the draft sent when the teacher approves or rejects a request.
type Decision struct {
	MaterialID string `json:"materialId" validate:"required"`
	RequestID  string `json:"requestId" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
}

var _ core.Draft = Decision{}

var decisionMessages = map[string]string{
	"materialId.required": "Material is required",
	"requestId.required":  "Request is required",
	"status.required":     "Please select a status",
	"status.oneof":        "Status must be approved or rejected",
}

func (d Decision) Messages() map[string]string { return decisionMessages }

func (d Decision) Payload() core.Payload {
	var p core.Payload
	p.Add("materialId", d.MaterialID).
		Add("requestId", d.RequestID).
		Add("status", d.Status)
	return p
}
