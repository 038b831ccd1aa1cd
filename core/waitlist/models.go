package waitlist

import (
	"time"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/notify"
)

// SubscribeEndpoint is served by the mail service, not by the REST backend.
var SubscribeEndpoint = core.Endpoint{Method: "MAIL", Path: "waitlist"}

// Notifications of this screen stay visible 3s.
var Durations = notify.Durations{Success: 3 * time.Second, Error: 3 * time.Second}

// Subscription is the draft of the institute waitlist form.
type Subscription struct {
	Email string `json:"email" validate:"required,email"`
}

var _ core.Draft = Subscription{}

var subscriptionMessages = map[string]string{
	"email.required": "Please enter your email address",
	"email.email":    "Please enter a valid email address",
}

func (s Subscription) Messages() map[string]string { return subscriptionMessages }

func (s Subscription) Payload() core.Payload {
	var p core.Payload
	p.Add("email", core.CleanString(s.Email, true /* lower */))
	return p
}
