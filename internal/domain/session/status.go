package session

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusInProgress          Status = "in_progress"
	StatusCompleted           Status = "completed"
	StatusCancelledByMentor   Status = "cancelled_by_mentor"
	StatusCancelledByMentee   Status = "cancelled_by_mentee"
	StatusNoShowMentor        Status = "no_show_mentor"
	StatusNoShowMentee        Status = "no_show_mentee"
	StatusRejectedByMentor    Status = "rejected_by_mentor"
)

// Terminal states accept no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted,
		StatusCancelledByMentor,
		StatusCancelledByMentee,
		StatusNoShowMentor,
		StatusNoShowMentee,
		StatusRejectedByMentor:
		return true
	}
	return false
}

// Blocking states occupy the mentor's calendar: slots overlapping a
// session in one of these states are not bookable.
func (s Status) Blocking() bool {
	switch s {
	case StatusPendingConfirmation, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPendingConfirmation
}

// BlockingStatuses is the SQL-friendly list used by repositories.
func BlockingStatuses() []string {
	return []string{
		string(StatusPendingConfirmation),
		string(StatusConfirmed),
		string(StatusInProgress),
	}
}

// ===============================
// Parties & Events
// ===============================

type Party string

const (
	PartyMentor Party = "mentor"
	PartyMentee Party = "mentee"
)

type Event string

const (
	EventCreate   Event = "create"
	EventConfirm  Event = "confirm"
	EventReject   Event = "reject"
	EventCancel   Event = "cancel"
	EventStart    Event = "start"
	EventComplete Event = "complete"
	EventNoShow   Event = "no_show"
)
