package extension

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/notify"
	"github.com/trezcool/educonnect/core/submit"
)

// QueryFailureText is shown when the requests cannot be listed.
const QueryFailureText = "Error fetching extension requests"

// Notifications of this screen stay visible 3s on success and 5s on error.
var Durations = notify.Durations{Success: 3 * time.Second, Error: 5 * time.Second}

var actionText = map[string]string{
	StatusApproved: "approving",
	StatusRejected: "rejecting",
}

type Service struct {
	client core.APIClient
}

func NewService(client core.APIClient) *Service {
	return &Service{client: client}
}

// Query lists the extension requests on the logged-in teacher's materials.
func (svc *Service) Query(ctx context.Context, cred core.Credential) ([]Request, error) {
	var reqs []Request
	if err := svc.client.Do(ctx, cred, QueryEndpoint, nil, &reqs); err != nil {
		return nil, errors.Wrap(err, "querying extension requests")
	}
	if reqs == nil {
		reqs = []Request{}
	}
	return reqs, nil
}

// DecideForm approves or rejects a request. The list should be queried again on success.
func DecideForm(d Decision) submit.Form {
	action, ok := actionText[d.Status]
	if !ok {
		action = "handling"
	}
	return submit.Form{
		Draft:          d,
		Endpoint:       HandleEndpoint,
		SuccessMessage: "Request " + d.Status + " successfully",
		FailureMessage: "Error " + action + " request",
	}
}
