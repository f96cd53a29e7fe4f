// Package application implements the loan-application intake workflow.
//
// The service layer owns all business logic for submitting applications,
// looking up status, admin listing, status transitions, and statistics. It
// depends on the Repository interface defined in this package and should
// never import from api/.
//
// Repository implementations live in repository/postgres/.
package application
