package report

import (
	"fmt"
	"time"

	"guest-recovery-portal/internal/models"
)

// Header label variants accepted for each field, in priority order. The
// first group of each list matches the template export; the rest cover the
// hand-edited sheets seen in production, including wrapped column titles.
var (
	dateKeys      = []string{"Date", "date", "DateTime", "dateTime"}
	timeKeys      = []string{"Time", "time"}
	guestNameKeys = []string{
		"Guest Name",
		"guestName",
		"Guest Name (First Name Last Name)",
		"Guest Name\n(First Name Last Name)",
	}
	roomKeys             = []string{"Room", "room"}
	problemAreaKeys      = []string{"Problem Area", "problemArea", "Problem area"}
	confirmationNoKeys   = []string{"Confirmation no", "confirmationNo"}
	membershipTierKeys   = []string{"Membership Tier", "membershipTier"}
	complaintDetailsKeys = []string{"Complaint Details", "complaintDetails"}
	actionTakenKeys      = []string{"Action Taken", "actionTaken"}
	fdStaffKeys          = []string{"FD Staff", "fdStaff", "FD Staff "}
	followUpRequiredKeys = []string{"Follow-Up-Required", "followUpRequired", "Follow-Up Required"}
	followUpDateKeys     = []string{"Follow-Up Date", "followUpDate", "Follow Up Date"}
	followUpStaffKeys    = []string{"Follow up Staff", "followUpStaff", "Follow-up Staff"}
	followUpCommentsKeys = []string{"Follow Up Comments", "followUpComments"}
)

// BuildRecord converts one raw row into a canonical record. A row without
// a usable timestamp, or missing guest name, room, or problem area, yields
// nil. That is the expected fate of blank trailing rows and is not an
// error.
func BuildRecord(row RawRow) *models.Complaint {
	dateValue, hasDate := findValue(row, dateKeys)
	if !hasDate {
		return nil
	}

	var occurredAt time.Time
	var ok bool
	if timeValue, hasTime := findValue(row, timeKeys); hasTime {
		occurredAt, ok = combineDateTime(dateValue, timeValue)
	} else {
		occurredAt, ok = parseDate(dateValue)
	}
	if !ok {
		return nil
	}

	guestName, ok := requiredText(row, guestNameKeys)
	if !ok {
		return nil
	}
	room, ok := requiredText(row, roomKeys)
	if !ok {
		return nil
	}
	problemArea, ok := requiredText(row, problemAreaKeys)
	if !ok {
		return nil
	}

	c := &models.Complaint{
		DateTime:         occurredAt,
		GuestName:        guestName,
		Room:             room,
		ProblemArea:      problemArea,
		ConfirmationNo:   optionalText(row, confirmationNoKeys),
		MembershipTier:   optionalText(row, membershipTierKeys),
		ComplaintDetails: optionalText(row, complaintDetailsKeys),
		ActionTaken:      optionalText(row, actionTakenKeys),
		FDStaff:          optionalText(row, fdStaffKeys),
		FollowUpRequired: optionalText(row, followUpRequiredKeys),
		FollowUpStaff:    optionalText(row, followUpStaffKeys),
		FollowUpComments: optionalText(row, followUpCommentsKeys),
	}

	if v, found := findValue(row, followUpDateKeys); found {
		if d, parsed := parseDate(v); parsed {
			c.FollowUpDate = &d
		}
	}

	return c
}

// BuildBatch assembles canonical records from raw rows. A fault inside one
// row becomes an indexed error message and the batch keeps going; a batch
// that produces zero records gets a batch-level error appended on top of
// any row errors. The caller decides whether an empty result is fatal.
func BuildBatch(rows []IndexedRow) ([]models.Complaint, []string) {
	var complaints []models.Complaint
	var errs []string

	for _, r := range rows {
		rec, err := buildRow(r.Row)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", r.Index, err))
			continue
		}
		if rec != nil {
			complaints = append(complaints, *rec)
		}
	}

	if len(complaints) == 0 {
		errs = append(errs, "No valid complaints found in Excel file")
	}

	return complaints, errs
}

// buildRow isolates BuildRecord so a panic on one malformed row is
// reported against that row instead of aborting the batch.
func buildRow(row RawRow) (rec *models.Complaint, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return BuildRecord(row), nil
}
