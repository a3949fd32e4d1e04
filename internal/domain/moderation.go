package domain

type ModerationState string

const (
	ModerationPending  ModerationState = "pending"
	ModerationApproved ModerationState = "approved"
)

// State reports the moderation state of a stored testimonial. There is no
// "deleted" state: deletion removes the row, so a record you can still read
// is either pending or approved. Approval is one-way; the only exit from
// approved is deletion.
func (t *Testimonial) State() ModerationState {
	if t.IsApproved {
		return ModerationApproved
	}
	return ModerationPending
}
