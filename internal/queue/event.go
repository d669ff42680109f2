// Package queue defines message payloads exchanged over the message broker.
package queue

// ConfirmationQueueName is the durable queue carrying confirmation-code
// dispatch requests from the registration service to the mail consumer.
const ConfirmationQueueName = "auth.confirmation"

// ConfirmationIssuedEvent is published whenever a confirmation code is
// issued or reissued. The consumer delivers the code to the address; the
// code itself never touches the primary database in plain form.
type ConfirmationIssuedEvent struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	IssuedAt string `json:"issued_at"`
}
