package waitlist

import (
	"context"
	"fmt"
	"time"
)

var NowFunc = time.Now // mockable

// Remaining is the time left before launch, split for display.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Until returns the time left from now to launch; zero once launch has passed.
func Until(launch, now time.Time) Remaining {
	d := launch.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	secs := int(d / time.Second)
	return Remaining{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

func (r Remaining) IsZero() bool { return r == Remaining{} }

func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
}

// Countdown calls tick right away, then every second, until launch is reached or ctx is done.
// The last tick is the zero Remaining when launch is reached.
func Countdown(ctx context.Context, launch time.Time, tick func(Remaining)) error {
	rem := Until(launch, NowFunc())
	tick(rem)
	if rem.IsZero() {
		return nil
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rem = Until(launch, NowFunc())
			tick(rem)
			if rem.IsZero() {
				return nil
			}
		}
	}
}
