package feewaiver

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/submit"
)

// QueryFailureText is shown when the requests cannot be listed.
const QueryFailureText = "Error loading fee waiver requests"

type Service struct {
	client core.APIClient
}

func NewService(client core.APIClient) *Service {
	return &Service{client: client}
}

// Query lists the fee waiver requests addressed to the logged-in teacher.
func (svc *Service) Query(ctx context.Context, cred core.Credential) ([]Request, error) {
	var reqs []Request
	if err := svc.client.Do(ctx, cred, QueryEndpoint, nil, &reqs); err != nil {
		return nil, errors.Wrap(err, "querying fee waiver requests")
	}
	if reqs == nil {
		reqs = []Request{}
	}
	return reqs, nil
}

// DecideForm approves or rejects the request.
func DecideForm(id string, d Decision) submit.Form {
	return submit.Form{
		Draft:          d,
		Endpoint:       DecideEndpoint.Expand(map[string]string{"id": id}),
		Result:         new(DecideResult),
		SuccessMessage: "Fee waiver request updated",
		FailureMessage: "Error updating fee waiver request",
	}
}

// Replace returns reqs with the request of the same ID swapped for updated.
func Replace(reqs []Request, updated Request) []Request {
	res := make([]Request, len(reqs))
	for i, r := range reqs {
		if r.ID == updated.ID {
			r = updated
		}
		res[i] = r
	}
	return res
}
