package class

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/notify"
	"github.com/trezcool/educonnect/core/submit"
)

// QueryFailureText is shown when the classes cannot be listed.
const QueryFailureText = "Error fetching classes"

// Notifications of the class screens stay visible 4s.
var Durations = notify.Durations{Success: 4 * time.Second, Error: 4 * time.Second}

type Service struct {
	client core.APIClient
}

func NewService(client core.APIClient) *Service {
	return &Service{client: client}
}

// Query lists the classes of the logged-in teacher.
func (svc *Service) Query(ctx context.Context, cred core.Credential) ([]Class, error) {
	var classes []Class
	if err := svc.client.Do(ctx, cred, QueryEndpoint, nil, &classes); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []Class{}
	}
	return classes, nil
}

// CreateForm submits a new class, then goes back to the class list.
func CreateForm(nc NewClass) submit.Form {
	return submit.Form{
		Draft:          nc,
		Endpoint:       CreateEndpoint,
		Result:         new(Class),
		SuccessMessage: "Class created successfully! Redirecting...",
		FailureMessage: "Error creating class",
		RedirectTo:     ViewAllPath,
	}
}

// UpdateForm submits the edited class, then goes back to the class list.
func UpdateForm(id string, nc NewClass) submit.Form {
	return submit.Form{
		Draft:          nc,
		Endpoint:       UpdateEndpoint.Expand(map[string]string{"id": id}),
		Result:         new(Class),
		SuccessMessage: "Class updated successfully! Redirecting...",
		FailureMessage: "Error updating class",
		RedirectTo:     ViewAllPath,
	}
}

// DeleteForm deletes the class. It has no draft to validate.
func DeleteForm(id string) submit.Form {
	return submit.Form{
		Endpoint:       DeleteEndpoint.Expand(map[string]string{"id": id}),
		SuccessMessage: "Class deleted successfully!",
		FailureMessage: "Error deleting class",
	}
}
