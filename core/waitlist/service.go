package waitlist

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/submit"
)

const launchDateLayout = "January 2, 2006"

// Mailer confirms waitlist subscriptions by email. It is the core.APIClient of the waitlist form.
type Mailer struct {
	mailSvc    core.EmailService
	launchDate time.Time
}

var _ core.APIClient = (*Mailer)(nil)

func NewMailer(mailSvc core.EmailService, launchDate time.Time) *Mailer {
	return &Mailer{mailSvc: mailSvc, launchDate: launchDate}
}

type confirmationData struct {
	Email      string
	LaunchDate string
}

// Do sends the confirmation to the subscribed address. Only SubscribeEndpoint is served.
func (m *Mailer) Do(ctx context.Context, _ core.Credential, ep core.Endpoint, body *core.Payload, _ interface{}) error {
	if ep != SubscribeEndpoint {
		return errors.Errorf("waitlist: unsupported endpoint %s", ep)
	}
	if body == nil {
		return errors.New("waitlist: missing body")
	}
	email, _ := body.Get("email")
	addr, ok := email.(string)
	if !ok || addr == "" {
		return errors.New("waitlist: missing email")
	}
	if err := ctx.Err(); err != nil {
		return &core.NetworkError{Err: err}
	}

	m.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Address: addr}},
		Subject:      "You are on the waitlist",
		TemplateName: "waitlist",
		TemplateData: confirmationData{Email: addr, LaunchDate: m.launchDate.Format(launchDateLayout)},
	})
	return nil
}

// SubscribeForm adds the email to the waitlist. No login is needed.
func SubscribeForm(s Subscription) submit.Form {
	return submit.Form{
		Draft:          s,
		Endpoint:       SubscribeEndpoint,
		SuccessMessage: "Thank you! We'll notify you when we launch.",
		FailureMessage: "Something went wrong, please try again.",
		Public:         true,
	}
}
