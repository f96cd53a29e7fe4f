package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/apperr"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/domain"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/pkg/httputil"
	"github.com/shakilahmed-dev/usa-bank-loan-website/internal/service/contact"
)

// SubmitContact accepts a contact-form message.
//
//	POST /api/contact
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in contact.SubmitInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	in.IPAddress = r.RemoteAddr

	res, err := h.contacts.Submit(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		h.notifier.ContactReceived(ctx, res.Message)
	}()

	httputil.Created(w, "Thank you for your message! We will get back to you within 24 hours.", map[string]interface{}{
		"messageId":        res.Message.MessageID,
		"submittedAt":      res.Message.SubmittedAt,
		"expectedResponse": res.ExpectedResponse,
	})
}

// ListContactMessages returns a filtered, paginated message listing.
//
//	GET /api/contact/messages?page&limit&status&subject
func (h *Handlers) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	msgs, pg, err := h.contacts.List(r.Context(), contact.ListFilter{
		Status:   domain.MessageStatus(q.Get("status")),
		Subject:  domain.MessageSubject(q.Get("subject")),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{
		"messages":   msgs,
		"pagination": pg,
	})
}

type updateMessageStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// UpdateMessageStatus transitions a message's triage status.
//
//	PATCH /api/contact/messages/{messageId}/status
func (h *Handlers) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	var req updateMessageStatusRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "messageId")
	err := h.contacts.UpdateStatus(r.Context(), id, domain.MessageStatus(req.Status), req.AdminNotes)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			h.writeError(w, apperr.NotFound("Message not found"))
			return
		}
		h.writeError(w, err)
		return
	}
	httputil.Success(w, "Message status updated successfully", map[string]interface{}{
		"messageId": id,
		"status":    req.Status,
	})
}

// GetContactStatistics returns message aggregates for the admin dashboard.
//
//	GET /api/contact/statistics
func (h *Handlers) GetContactStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.contacts.Statistics(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.OK(w, stats)
}

// GetContactInfo serves the static branch contact directory.
//
//	GET /api/contact/info
func (h *Handlers) GetContactInfo(w http.ResponseWriter, _ *http.Request) {
	httputil.OK(w, contactInfo)
}

var contactInfo = map[string]interface{}{
	"phone": "+1-800-123-4567",
	"email": "loans@usabank.com",
	"address": map[string]string{
		"street":  "123 Financial District",
		"city":    "New York",
		"state":   "NY",
		"zipCode": "10001",
		"country": "USA",
	},
	"businessHours": map[string]interface{}{
		"weekdays": map[string]string{"days": "Monday - Friday", "hours": "8:00 AM - 8:00 PM EST"},
		"saturday": map[string]string{"days": "Saturday", "hours": "9:00 AM - 5:00 PM EST"},
		"sunday":   map[string]string{"days": "Sunday", "hours": "Closed"},
	},
	"departments": []map[string]string{
		{"name": "Loan Applications", "phone": "+1-800-123-4567", "email": "applications@usabank.com"},
		{"name": "Customer Support", "phone": "+1-800-123-4568", "email": "support@usabank.com"},
		{"name": "Existing Loans", "phone": "+1-800-123-4569", "email": "loanservice@usabank.com"},
	},
}
