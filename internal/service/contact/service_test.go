package contact_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/contact"
)

type memRepo struct {
	mu   sync.Mutex
	msgs map[string]*domain.ContactMessage // keyed by message_id
}

func newMemRepo() *memRepo {
	return &memRepo{msgs: make(map[string]*domain.ContactMessage)}
}

func (m *memRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.msgs[msg.MessageID]; dup {
		return contact.ErrDuplicateID
	}
	cp := *msg
	m.msgs[cp.MessageID] = &cp
	return nil
}

func (m *memRepo) GetByMessageID(_ context.Context, id string) (*domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.msgs[id]
	if !ok {
		return nil, contact.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *memRepo) ExistsByEmailMessageSince(_ context.Context, email, message string, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.msgs {
		if msg.Email == email && msg.Message == message && !msg.SubmittedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) List(_ context.Context, f contact.ListFilter) ([]domain.ContactMessage, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ContactMessage
	for _, msg := range m.msgs {
		if f.Status != "" && msg.Status != f.Status {
			continue
		}
		if f.Subject != "" && msg.Subject != f.Subject {
			continue
		}
		out = append(out, *msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	total := len(out)
	start := f.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + f.PageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id string, status domain.MessageStatus, adminNotes *string, repliedAt *time.Time, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, ok := m.msgs[id]
	if !ok {
		return contact.ErrNotFound
	}
	msg.Status = status
	if adminNotes != nil {
		msg.AdminNotes = *adminNotes
	}
	if repliedAt != nil {
		msg.RepliedAt = repliedAt
	}
	msg.UpdatedAt = updatedAt
	return nil
}

func (m *memRepo) Counts(_ context.Context, recentSince time.Time) (*contact.Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &contact.Counts{BySubject: map[string]int{}}
	for _, msg := range m.msgs {
		c.Total++
		if msg.Status == domain.MessageNew {
			c.New++
		}
		if !msg.SubmittedAt.Before(recentSince) {
			c.Recent++
		}
		c.BySubject[string(msg.Subject)]++
	}
	return c, nil
}

func validInput(email, body string) contact.SubmitInput {
	return contact.SubmitInput{
		Name:          "Jane Smith",
		Email:         email,
		Phone:         "2125559876",
		Subject:       "mortgage",
		Message:       body,
		ContactMethod: "email",
		IPAddress:     "198.51.100.7",
	}
}

func newService(repo contact.Repository) *contact.Service {
	return contact.NewService(repo, nil, nil)
}

func TestSubmitStoresMessageWithNewStatus(t *testing.T) {
	svc := newService(newMemRepo())

	res, err := svc.Submit(context.Background(), validInput("jane@example.com", "I would like to ask about mortgage rates."))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Message.Status != domain.MessageNew {
		t.Errorf("status = %s, want new", res.Message.Status)
	}
	if !strings.HasPrefix(res.Message.MessageID, "MSG") {
		t.Errorf("message id %q lacks MSG prefix", res.Message.MessageID)
	}
	if res.ExpectedResponse != "within 24 hours" {
		t.Errorf("expectedResponse = %q", res.ExpectedResponse)
	}
	if res.Message.RepliedAt != nil {
		t.Error("new message should have no repliedAt")
	}
}

func TestSubmitSameBodyWithinHourConflicts(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()
	body := "Please call me back about my auto loan application."

	if _, err := svc.Submit(ctx, validInput("dup@example.com", body)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(ctx, validInput("dup@example.com", body))
	if e := apperr.From(err); e.Kind != apperr.KindConflict {
		t.Errorf("error kind = %v, want conflict", e.Kind)
	}
}

func TestSubmitDifferentBodySameHourAllowed(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()

	if _, err := svc.Submit(ctx, validInput("two@example.com", "First question about business loans please.")); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(ctx, validInput("two@example.com", "Second, unrelated question about student loans.")); err != nil {
		t.Errorf("different body should not hit the window: %v", err)
	}
}

func TestSubmitValidationFailures(t *testing.T) {
	svc := newService(newMemRepo())

	in := validInput("bad@example.com", "short")
	in.Subject = "billing"
	_, err := svc.Submit(context.Background(), in)
	if err == nil {
		t.Fatal("invalid payload should fail")
	}
	e := apperr.From(err)
	if e.Kind != apperr.KindValidation {
		t.Fatalf("error kind = %v, want validation", e.Kind)
	}
	var fields []string
	for _, f := range e.Fields {
		fields = append(fields, f.Field)
	}
	for _, want := range []string{"subject", "message"} {
		found := false
		for _, f := range fields {
			if f == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s error in %v", want, fields)
		}
	}
}

func TestSubmitDefaultsContactMethod(t *testing.T) {
	svc := newService(newMemRepo())
	in := validInput("def@example.com", "No contact method was picked on the form.")
	in.ContactMethod = ""

	res, err := svc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Message.ContactMethod != domain.ContactByEmail {
		t.Errorf("contactMethod = %s, want email default", res.Message.ContactMethod)
	}
}

func TestSubmitPhoneOptional(t *testing.T) {
	svc := newService(newMemRepo())
	in := validInput("nophone@example.com", "Contacting without a phone number on file.")
	in.Phone = ""

	if _, err := svc.Submit(context.Background(), in); err != nil {
		t.Errorf("empty phone should be accepted: %v", err)
	}
}

func TestUpdateStatusStampsRepliedAtOnce(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	res, err := svc.Submit(ctx, validInput("reply@example.com", "Looking forward to hearing from your team."))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	id := res.Message.MessageID

	if err := svc.UpdateStatus(ctx, id, domain.MessageReplied, nil); err != nil {
		t.Fatalf("first reply: %v", err)
	}
	first, _ := repo.GetByMessageID(ctx, id)
	if first.RepliedAt == nil {
		t.Fatal("repliedAt not stamped on first transition to replied")
	}

	// Leave replied, come back: the stamp must not move.
	if err := svc.UpdateStatus(ctx, id, domain.MessageArchived, nil); err != nil {
		t.Fatalf("archive: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := svc.UpdateStatus(ctx, id, domain.MessageReplied, nil); err != nil {
		t.Fatalf("second reply: %v", err)
	}
	second, _ := repo.GetByMessageID(ctx, id)
	if !second.RepliedAt.Equal(*first.RepliedAt) {
		t.Errorf("repliedAt moved from %v to %v", first.RepliedAt, second.RepliedAt)
	}
}

func TestUpdateStatusSetsAdminNotes(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	res, err := svc.Submit(ctx, validInput("notes@example.com", "Some details the admin wants to annotate."))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	notes := "Escalated to the mortgage desk"
	if err := svc.UpdateStatus(ctx, res.Message.MessageID, domain.MessageRead, &notes); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetByMessageID(ctx, res.Message.MessageID)
	if got.AdminNotes != notes {
		t.Errorf("adminNotes = %q, want %q", got.AdminNotes, notes)
	}
	if got.RepliedAt != nil {
		t.Error("read transition must not stamp repliedAt")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newService(newMemRepo())
	err := svc.UpdateStatus(context.Background(), "MSG0000000000ZZZZ", domain.MessageRead, nil)
	if !errors.Is(err, contact.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newService(newMemRepo())
	err := svc.UpdateStatus(context.Background(), "MSG0000000000AAAA", domain.MessageStatus("spam"), nil)
	if e := apperr.From(err); e.Kind != apperr.KindValidation {
		t.Errorf("error kind = %v, want validation", e.Kind)
	}
}

func TestListFiltersBySubjectAndStripsIP(t *testing.T) {
	svc := newService(newMemRepo())
	ctx := context.Background()

	if _, err := svc.Submit(ctx, validInput("m1@example.com", "Mortgage question number one for the desk.")); err != nil {
		t.Fatalf("submit: %v", err)
	}
	in := validInput("m2@example.com", "A general question about branch opening hours.")
	in.Subject = "general"
	if _, err := svc.Submit(ctx, in); err != nil {
		t.Fatalf("submit: %v", err)
	}

	msgs, pg, err := svc.List(ctx, contact.ListFilter{Subject: domain.SubjectGeneral, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pg.Total != 1 || len(msgs) != 1 {
		t.Fatalf("filtered list: total=%d len=%d, want 1/1", pg.Total, len(msgs))
	}
	if msgs[0].Subject != domain.SubjectGeneral {
		t.Errorf("subject = %s", msgs[0].Subject)
	}
	if msgs[0].IPAddress != "" {
		t.Error("listing leaked ip address")
	}
}

func TestStatistics(t *testing.T) {
	repo := newMemRepo()
	svc := newService(repo)
	ctx := context.Background()

	bodies := map[string]string{
		"s1@example.com": "Mortgage rates question from the first sender.",
		"s2@example.com": "Mortgage terms question from the second sender.",
	}
	var last string
	for email, body := range bodies {
		res, err := svc.Submit(ctx, validInput(email, body))
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		last = res.Message.MessageID
	}
	if err := svc.UpdateStatus(ctx, last, domain.MessageRead, nil); err != nil {
		t.Fatalf("update: %v", err)
	}

	stats, err := svc.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.Total != 2 || stats.New != 1 || stats.Recent != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BySubject["mortgage"] != 2 {
		t.Errorf("bySubject = %v", stats.BySubject)
	}
}
