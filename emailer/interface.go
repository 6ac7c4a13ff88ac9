package emailer

// Emailer sends a single html message to one recipient
type Emailer interface {
	Send(toName string, to string, subject string, content string) error
}
