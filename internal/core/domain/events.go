package domain

import "time"

type PropertyChangeType string

const (
	PropertyCreated PropertyChangeType = "created"
	PropertyUpdated PropertyChangeType = "updated"
	PropertyDeleted PropertyChangeType = "deleted"
)

// PropertyChangedEvent - событие об изменении записи, сделанном через клиент.
// Для удаления Property == nil.
type PropertyChangedEvent struct {
	Type       PropertyChangeType `json:"type"`
	PropertyID int64              `json:"property_id"`
	Property   *PropertyPayload   `json:"property,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type PropertyPayload struct {
	ID          int64   `json:"id"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Description string  `json:"description"`
}

func NewPropertyChangedEvent(changeType PropertyChangeType, id int64, p *Property, at time.Time) PropertyChangedEvent {
	event := PropertyChangedEvent{
		Type:       changeType,
		PropertyID: id,
		OccurredAt: at.UTC(),
	}
	if p != nil {
		event.Property = &PropertyPayload{
			ID:          p.ID,
			Address:     p.Address,
			Price:       p.Price,
			Size:        p.Size,
			Description: p.Description,
		}
	}
	return event
}
