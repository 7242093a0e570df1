package escalation

import (
	"context"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/pkg/log"
)

const (
	CrisisMessage = "I’m really sorry you’re feeling so overwhelmed. I’m here with you. Are you thinking of harming yourself?"
	Helpline      = "\n\nIf you are in crisis, please call the National Helpline for Mental Health: 9152987821 or 9152987820 (KIRAN), or visit https://www.mohfw.gov.in/pdf/helpline.pdf for more resources."
	ReferralOffer = "I’m hearing that it’s been getting harder recently. Would you like me to connect you with a campus counselor or a trained peer supporter? You can also keep chatting with me — whichever feels better."
)

const defaultNotifyTimeout = 10 * time.Second

type ConsentDetector interface {
	DetectConsent(text string) bool
}

// Controller makes the per-turn escalation decision. It carries no state between turns.
type Controller struct {
	consent       ConsentDetector
	notifier      core.Notifier
	notifyTimeout time.Duration
	now           func() time.Time
}

func NewController(consent ConsentDetector, notifier core.Notifier) *Controller {
	return &Controller{
		consent:       consent,
		notifier:      notifier,
		notifyTimeout: defaultNotifyTimeout,
		now:           time.Now,
	}
}

// Decide evaluates one turn. The notification is dispatched in the background and
// never awaited; Notified reports that it was dispatched, not that it was delivered.
func (c *Controller) Decide(ctx context.Context, sessionID string, risk core.RiskLevel, text string) core.EscalationRecord {
	rec := core.EscalationRecord{
		Risk:      risk,
		Triggered: risk == core.RiskHigh,
		Timestamp: c.now(),
	}
	if !rec.Triggered {
		return rec
	}

	rec.ConsentGiven = c.consent.DetectConsent(text)
	if rec.ConsentGiven && c.notifier != nil {
		c.dispatch(ctx, core.Alert{
			SessionID: sessionID,
			Risk:      risk,
			Consent:   true,
			RaisedAt:  rec.Timestamp.UTC(),
		})
		rec.Notified = true
	}
	return rec
}

func (c *Controller) dispatch(ctx context.Context, alert core.Alert) {
	logger := log.FromCtx(ctx)
	bg := context.WithoutCancel(ctx)
	go func() {
		nctx, cancel := context.WithTimeout(bg, c.notifyTimeout)
		defer cancel()
		if err := c.notifier.Notify(nctx, alert); err != nil {
			logger.Error().Err(err).Str("session", alert.SessionID).Msg("crisis notification failed")
		}
	}()
}

// Reply returns the canned reply for escalated risk levels. ok is false when
// the turn should go to the completion relay instead.
func Reply(risk core.RiskLevel) (text string, ok bool) {
	switch risk {
	case core.RiskHigh:
		return CrisisMessage + Helpline, true
	case core.RiskModerate:
		return ReferralOffer, true
	}
	return "", false
}
