package dto

import "time"

type AuditEvent struct {
	Action   string    `json:"action"` // e.g. transaction.created
	Entity   string    `json:"entity"`
	EntityID uint      `json:"entity_id"`
	ActorID  uint      `json:"actor_id"`
	At       time.Time `json:"at"`
}
