package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate while handling a command.
// Events are collected by the unit of work and published after commit.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}
