// Package contact implements the contact-message business logic: intake
// with spam/duplicate suppression, admin listing, status transitions, and
// statistics. The package owns its Repository contract; it never imports
// the HTTP layer.
package contact
