package models

import "time"

// Complaint is the canonical record for one guest-complaint row.
// The four required fields are always present and trimmed; a row that
// cannot produce them never becomes a Complaint. Optional fields are nil
// when the source cell was empty.
//
// The json tags define the external field mapping used by the upload and
// generate-report endpoints. Upload responses and re-submitted report
// payloads must round-trip through these names losslessly.
type Complaint struct {
	DateTime    time.Time `json:"dateTime"`
	GuestName   string    `json:"guestName"`
	Room        string    `json:"room"`
	ProblemArea string    `json:"problemArea"`

	ConfirmationNo   *string    `json:"confirmationNo"`
	MembershipTier   *string    `json:"membershipTier"`
	ComplaintDetails *string    `json:"complaintDetails"`
	ActionTaken      *string    `json:"actionTaken"`
	FDStaff          *string    `json:"fdStaff"`
	FollowUpRequired *string    `json:"followUpRequired"`
	FollowUpDate     *time.Time `json:"followUpDate"`
	FollowUpStaff    *string    `json:"followUpStaff"`
	FollowUpComments *string    `json:"followUpComments"`
}

// Status is the derived lifecycle state of a complaint. It is never
// stored; it is recomputed against a reference date on every evaluation.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusActive    Status = "Active"
	StatusOverdue   Status = "Overdue"
)
