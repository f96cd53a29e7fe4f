package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
)

type captureSender struct {
	mu     sync.Mutex
	sent   []Email
	err    error
	closed bool
}

func (c *captureSender) Send(_ context.Context, e Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, e)
	return nil
}

func (c *captureSender) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func sampleApp() *domain.LoanApplication {
	return &domain.LoanApplication{
		ApplicationID: "APP12345678ABCDEF",
		FirstName:     "John",
		LastName:      "Doe",
		Email:         "john@example.com",
		LoanType:      domain.LoanPersonal,
		LoanAmount:    20000,
		SubmittedAt:   time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestApplicationReceivedSendsConfirmationAndAlert(t *testing.T) {
	sender := &captureSender{}
	n, err := New(sender, "no-reply@usabank.com", "admin@usabank.com", nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	n.ApplicationReceived(context.Background(), sampleApp())

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}

	conf := sender.sent[0]
	if conf.To[0] != "john@example.com" {
		t.Errorf("confirmation to = %v", conf.To)
	}
	if !strings.Contains(conf.Subject, "APP12345678ABCDEF") {
		t.Errorf("confirmation subject = %q", conf.Subject)
	}
	for _, want := range []string{"John", "personal", "$20,000", "APP12345678ABCDEF"} {
		if !strings.Contains(conf.HTML, want) {
			t.Errorf("confirmation body missing %q", want)
		}
	}

	alert := sender.sent[1]
	if alert.To[0] != "admin@usabank.com" {
		t.Errorf("alert to = %v", alert.To)
	}
	if !strings.Contains(alert.HTML, "John Doe") {
		t.Errorf("alert body missing applicant name: %q", alert.HTML)
	}
}

func TestApplicationReceivedWithoutAdminEmail(t *testing.T) {
	sender := &captureSender{}
	n, err := New(sender, "no-reply@usabank.com", "", nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	n.ApplicationReceived(context.Background(), sampleApp())
	if len(sender.sent) != 1 {
		t.Errorf("sent %d emails, want applicant confirmation only", len(sender.sent))
	}
}

func TestContactReceived(t *testing.T) {
	sender := &captureSender{}
	n, err := New(sender, "no-reply@usabank.com", "admin@usabank.com", nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	n.ContactReceived(context.Background(), &domain.ContactMessage{
		MessageID: "MSG1234567890ABCD",
		Name:      "Jane Smith",
		Email:     "jane@example.com",
		Subject:   domain.SubjectMortgage,
		Message:   "I would like to ask about mortgage rates.",
	})

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].HTML, "Jane Smith") {
		t.Errorf("confirmation body = %q", sender.sent[0].HTML)
	}
	if !strings.Contains(sender.sent[1].HTML, "mortgage rates") {
		t.Errorf("alert body = %q", sender.sent[1].HTML)
	}
}

func TestSendFailureDoesNotPanic(t *testing.T) {
	sender := &captureSender{err: errors.New("ses unavailable")}
	n, err := New(sender, "no-reply@usabank.com", "admin@usabank.com", nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	n.ApplicationReceived(context.Background(), sampleApp())
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.ApplicationReceived(context.Background(), sampleApp())
	n.ContactReceived(context.Background(), &domain.ContactMessage{})
	if err := n.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}

func TestCloseReleasesSender(t *testing.T) {
	sender := &captureSender{}
	n, err := New(sender, "no-reply@usabank.com", "", nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !sender.closed {
		t.Error("sender not closed")
	}
}
