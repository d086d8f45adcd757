package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/interfaces"
)

const (
	EntityAccount     = "investment_account"
	EntityTransaction = "transaction"
	EntityCapability  = "user_investment_account"
	EntityUser        = "user"
)

const publishTimeout = 5 * time.Second

// publishEvent is best effort: a missing or failing broker never fails the
// request that triggered the event.
func publishEvent(producer interfaces.ProducerHandler, action, entity string, entityID, actorID uint) {
	if producer == nil {
		return
	}

	payload, err := json.Marshal(dto.AuditEvent{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		ActorID:  actorID,
		At:       time.Now().UTC(),
	})
	if err != nil {
		log.Printf("marshal %s event error: %v", action, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := producer.PublishMessage(ctx, []byte(action), payload); err != nil {
		log.Printf("publish %s event error: %v", action, err)
	}
}
