package booking

import (
	"time"
)

const (
	EventCreated       = "created"
	EventRiderAccepted = "rider_accepted"
	EventRiderRejected = "rider_rejected"
	EventCancelled     = "cancelled"
	EventStatusUpdated = "status_updated"
)

// BookingStatusEvent is an append-only history row written with every
// workflow transition.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint     `gorm:"not null;index" json:"bookingId"`
	Booking   *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	EventType      string        `gorm:"type:varchar(30);not null" json:"eventType"`
	Status         Status        `gorm:"type:varchar(20);not null" json:"status"`
	ShipmentStatus *Status       `gorm:"type:varchar(20)" json:"shipmentStatus,omitempty"`
	RiderResponse  RiderResponse `gorm:"type:varchar(20);not null" json:"riderResponse"`
	RiderID        *uint         `json:"riderId,omitempty"`
	Location       *string       `gorm:"type:text" json:"location,omitempty"`
	CreatedBy      uint          `gorm:"not null" json:"createdBy"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"createdAt"`
}

func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
