package domain

import "time"

// MessageStatus enumerates the lifecycle states of a contact message.
type MessageStatus string

const (
	MessageNew      MessageStatus = "new"
	MessageRead     MessageStatus = "read"
	MessageReplied  MessageStatus = "replied"
	MessageArchived MessageStatus = "archived"
)

// MessageStatuses lists every valid message status.
var MessageStatuses = []MessageStatus{
	MessageNew, MessageRead, MessageReplied, MessageArchived,
}

// IsValid reports whether s is one of the enumerated message statuses.
func (s MessageStatus) IsValid() bool {
	for _, v := range MessageStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// MessageSubject enumerates what a contact message can be about.
type MessageSubject string

const (
	SubjectMortgage MessageSubject = "mortgage"
	SubjectAuto     MessageSubject = "auto"
	SubjectBusiness MessageSubject = "business"
	SubjectPersonal MessageSubject = "personal"
	SubjectStudent  MessageSubject = "student"
	SubjectGeneral  MessageSubject = "general"
	SubjectOther    MessageSubject = "other"
)

// MessageSubjects lists every valid message subject.
var MessageSubjects = []MessageSubject{
	SubjectMortgage, SubjectAuto, SubjectBusiness, SubjectPersonal,
	SubjectStudent, SubjectGeneral, SubjectOther,
}

// IsValid reports whether s is one of the enumerated subjects.
func (s MessageSubject) IsValid() bool {
	for _, v := range MessageSubjects {
		if s == v {
			return true
		}
	}
	return false
}

// ContactMessage is a persisted contact-form submission.
//
// MessageID is the store-assigned business identifier (MSG##########XXXX);
// ID is the internal row key. RepliedAt is set exactly once, the first time
// the status transitions to replied.
type ContactMessage struct {
	ID        string `json:"id" db:"id"`
	MessageID string `json:"messageId" db:"message_id"`

	Name          string         `json:"name" db:"name"`
	Email         string         `json:"email" db:"email"`
	Phone         string         `json:"phone,omitempty" db:"phone"`
	Subject       MessageSubject `json:"subject" db:"subject"`
	Message       string         `json:"message" db:"message"`
	ContactMethod ContactMethod  `json:"contactMethod" db:"contact_method"`

	Status      MessageStatus `json:"status" db:"status"`
	IPAddress   string        `json:"ipAddress,omitempty" db:"ip_address"`
	AdminNotes  string        `json:"adminNotes,omitempty" db:"admin_notes"`
	SubmittedAt time.Time     `json:"submittedAt" db:"submitted_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
	RepliedAt   *time.Time    `json:"repliedAt,omitempty" db:"replied_at"`
}

// Sanitized returns a copy with the sender's origin address cleared.
func (m *ContactMessage) Sanitized() ContactMessage {
	cp := *m
	cp.IPAddress = ""
	return cp
}
