package services

// Shop event names published to the message broker.
const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes shop events to the message broker. Services
// tolerate a nil publisher so the broker stays optional in tests and
// broker-less deployments.
type EventPublisher interface {
	Publish(event string, data map[string]interface{}) error
}
