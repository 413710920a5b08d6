package notifier

// Channel is an out-of-band delivery mechanism for an alert (email, push,
// ...). Delivery is best-effort: a failing channel is logged by the
// dispatcher and never fails the caller.
type Channel interface {
	Send(recipient, subject, body string) error
}
