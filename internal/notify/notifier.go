package notify

import (
	"context"
	"fmt"

	"github.com/osteele/liquid"
	"go.uber.org/zap"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/logger"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/validate"
)

const applicationConfirmationTmpl = `<h2>Thank you, {{ firstName }}!</h2>
<p>Your {{ loanType }} loan application has been received and is awaiting review.</p>
<p><strong>Application ID:</strong> {{ applicationId }}<br>
<strong>Requested amount:</strong> {{ amount }}</p>
<p>A loan specialist will contact you within 24 hours. Keep your application ID
handy to check your status at any time.</p>`

const applicationAdminTmpl = `<h3>New loan application</h3>
<p><strong>{{ applicationId }}</strong>: {{ name }} applied for a
{{ loanType }} loan of {{ amount }}.</p>
<p>Submitted {{ submittedAt }}.</p>`

const contactConfirmationTmpl = `<h2>Thank you for your message, {{ name }}!</h2>
<p>We have received your inquiry about <strong>{{ subject }}</strong> and will
get back to you within 24 hours.</p>
<p><strong>Reference:</strong> {{ messageId }}</p>`

const contactAdminTmpl = `<h3>New contact message</h3>
<p><strong>{{ messageId }}</strong> from {{ name }} ({{ subject }}):</p>
<blockquote>{{ message }}</blockquote>`

// Notifier renders Liquid templates and hands them to a Sender. A nil
// Notifier is valid and does nothing, so callers never have to branch on
// whether email is configured.
type Notifier struct {
	sender     Sender
	from       string
	adminEmail string
	log        *zap.Logger

	applicationConfirmation *liquid.Template
	applicationAdmin        *liquid.Template
	contactConfirmation     *liquid.Template
	contactAdmin            *liquid.Template
}

// New creates a notifier sending from the given address. adminEmail may be
// empty to disable staff alerts.
func New(sender Sender, from, adminEmail string, log *zap.Logger) (*Notifier, error) {
	if log == nil {
		log = zap.NewNop()
	}
	engine := liquid.NewEngine()

	n := &Notifier{sender: sender, from: from, adminEmail: adminEmail, log: log}
	var err error
	if n.applicationConfirmation, err = engine.ParseString(applicationConfirmationTmpl); err != nil {
		return nil, fmt.Errorf("parse application confirmation template: %w", err)
	}
	if n.applicationAdmin, err = engine.ParseString(applicationAdminTmpl); err != nil {
		return nil, fmt.Errorf("parse application alert template: %w", err)
	}
	if n.contactConfirmation, err = engine.ParseString(contactConfirmationTmpl); err != nil {
		return nil, fmt.Errorf("parse contact confirmation template: %w", err)
	}
	if n.contactAdmin, err = engine.ParseString(contactAdminTmpl); err != nil {
		return nil, fmt.Errorf("parse contact alert template: %w", err)
	}
	return n, nil
}

// ApplicationReceived emails the applicant a confirmation and, when an admin
// address is configured, alerts staff. Failures are logged only.
func (n *Notifier) ApplicationReceived(ctx context.Context, app *domain.LoanApplication) {
	if n == nil {
		return
	}

	bindings := map[string]interface{}{
		"firstName":     app.FirstName,
		"name":          app.FullName(),
		"applicationId": app.ApplicationID,
		"loanType":      string(app.LoanType),
		"amount":        validate.FormatUSD(app.LoanAmount),
		"submittedAt":   app.SubmittedAt.Format("Jan 2, 2006 15:04 MST"),
	}

	n.send(ctx, n.applicationConfirmation, bindings, app.Email,
		"Your loan application "+app.ApplicationID+" has been received")
	if n.adminEmail != "" {
		n.send(ctx, n.applicationAdmin, bindings, n.adminEmail,
			"New loan application "+app.ApplicationID)
	}
}

// ContactReceived emails the sender an acknowledgment and optionally alerts
// staff. Failures are logged only.
func (n *Notifier) ContactReceived(ctx context.Context, msg *domain.ContactMessage) {
	if n == nil {
		return
	}

	bindings := map[string]interface{}{
		"name":      msg.Name,
		"messageId": msg.MessageID,
		"subject":   string(msg.Subject),
		"message":   msg.Message,
	}

	n.send(ctx, n.contactConfirmation, bindings, msg.Email,
		"We received your message ("+msg.MessageID+")")
	if n.adminEmail != "" {
		n.send(ctx, n.contactAdmin, bindings, n.adminEmail,
			"New contact message "+msg.MessageID)
	}
}

// Close releases the underlying sender.
func (n *Notifier) Close() error {
	if n == nil || n.sender == nil {
		return nil
	}
	return n.sender.Close()
}

func (n *Notifier) send(ctx context.Context, tmpl *liquid.Template, bindings map[string]interface{}, to, subject string) {
	html, renderErr := tmpl.RenderString(bindings)
	if renderErr != nil {
		n.log.Error("render notification template", zap.Error(renderErr))
		return
	}
	err := n.sender.Send(ctx, Email{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		n.log.Error("send notification",
			logger.Email("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return
	}
	n.log.Info("notification sent", logger.Email("to", to), zap.String("subject", subject))
}
