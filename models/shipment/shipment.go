package shipment

import (
	"time"

	"fastfast-logistics/models/booking"
	"fastfast-logistics/models/user"
)

// Shipment is the trackable delivery record created with a booking.
type Shipment struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingNumber string `gorm:"type:varchar(32);not null;unique" json:"trackingNumber"`

	BookingID uint             `gorm:"not null;unique" json:"bookingId"`
	Booking   *booking.Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"booking,omitempty"`

	UserID uint       `gorm:"not null;index" json:"userId"`
	User   *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Status            booking.Status `gorm:"type:varchar(20);not null;index" json:"status"`
	CurrentLocation   *string        `gorm:"type:text" json:"currentLocation,omitempty"`
	EstimatedDelivery *time.Time     `gorm:"type:date" json:"estimatedDelivery,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Shipment) TableName() string {
	return "shipments"
}
