package booking_event

import (
	"fmt"

	bookingModel "fastfast-logistics/models/booking"
	shipmentModel "fastfast-logistics/models/shipment"

	"gorm.io/gorm"
)

// Record snapshots the booking's state into booking_status_events. It must
// run on the same tx as the change it describes.
func Record(tx *gorm.DB, b *bookingModel.Booking, sh *shipmentModel.Shipment, eventType string, actorID uint) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID:     b.ID,
		EventType:     eventType,
		Status:        b.Status,
		RiderResponse: b.RiderResponse,
		RiderID:       b.RiderID,
		CreatedBy:     actorID,
	}
	if sh != nil {
		status := sh.Status
		ev.ShipmentStatus = &status
		ev.Location = sh.CurrentLocation
	}

	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("record %s event for booking %d: %w", eventType, b.ID, err)
	}
	return nil
}

// History returns a booking's events oldest first.
func History(db *gorm.DB, bookingID uint) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := db.Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("load history for booking %d: %w", bookingID, err)
	}
	return events, nil
}
