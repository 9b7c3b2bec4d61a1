package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fastfast-logistics/apperror"
	"fastfast-logistics/logger"
	bookingModel "fastfast-logistics/models/booking"
	riderModel "fastfast-logistics/models/rider"
	shipmentModel "fastfast-logistics/models/shipment"
	"fastfast-logistics/services/booking_event"
	"fastfast-logistics/services/coupon"
	"fastfast-logistics/services/event_bus"
	"fastfast-logistics/services/pricing"
	"fastfast-logistics/services/tracking"
	"fastfast-logistics/types"
	bookingTypes "fastfast-logistics/types/booking"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxTrackingAttempts = 5

// Result pairs a booking with its shipment.
type Result struct {
	Booking  bookingModel.Booking    `json:"booking"`
	Shipment *shipmentModel.Shipment `json:"shipment,omitempty"`
	Pricing  *pricing.Breakdown      `json:"pricing,omitempty"`
}

// Service runs the booking/shipment lifecycle. Every write happens in one
// transaction; events are published only after commit.
type Service struct {
	DB                *gorm.DB
	Coupons           *coupon.Service
	Events            event_bus.Publisher
	NewTrackingNumber tracking.Generator
	Now               func() time.Time
}

func NewService(db *gorm.DB, coupons *coupon.Service, events event_bus.Publisher) *Service {
	if events == nil {
		events = event_bus.LogPublisher{}
	}
	return &Service{
		DB:                db,
		Coupons:           coupons,
		Events:            events,
		NewTrackingNumber: tracking.Generate,
		Now:               time.Now,
	}
}

func requireSession(actor types.Actor) error {
	if actor.UserID == 0 {
		return apperror.Authentication("authentication required")
	}
	return nil
}

// Create validates the form, prices it server-side, optionally redeems a
// coupon and inserts the booking with its shipment.
func (s *Service) Create(ctx context.Context, actor types.Actor, req bookingTypes.CreateRequest) (*Result, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}

	form, err := req.Validate(s.Now())
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	quote, err := pricing.PriceBooking(form.PickupAddress, form.DeliveryAddress, form.PackageSize, form.IsUrgent)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	result := &Result{Pricing: &quote}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		price := quote.Total
		discount := decimal.Zero
		var couponCode *string

		if form.CouponCode != "" {
			if s.Coupons == nil {
				return apperror.Validation("coupons are not available")
			}
			d, err := s.Coupons.Redeem(tx, form.CouponCode, price)
			if err != nil {
				return err
			}
			discount = d
			price = price.Sub(d)
			code := form.CouponCode
			couponCode = &code
		}

		b := bookingModel.Booking{
			UserID:              actor.UserID,
			PickupAddress:       form.PickupAddress,
			DeliveryAddress:     form.DeliveryAddress,
			PickupDate:          form.PickupDate,
			DeliveryDate:        form.DeliveryDate,
			PickupTime:          form.PickupTime,
			DeliveryTime:        form.DeliveryTime,
			PackageSize:         form.PackageSize,
			PackageDescription:  form.PackageDescription,
			IsUrgent:            form.IsUrgent,
			PaymentMethod:       form.PaymentMethod,
			Route:               form.PickupAddress + " → " + form.DeliveryAddress,
			Price:               price,
			DiscountAmount:      discount,
			CouponCode:          couponCode,
			PickupPhoneNumber:   form.PickupPhoneNumber,
			DeliveryPhoneNumber: form.DeliveryPhoneNumber,
			Status:              bookingModel.StatusProcessing,
			RiderResponse:       bookingModel.RiderResponsePending,
		}
		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		sh, err := s.createShipment(tx, &b)
		if err != nil {
			return err
		}

		if err := booking_event.Record(tx, &b, sh, bookingModel.EventCreated, actor.UserID); err != nil {
			return err
		}

		result.Booking = b
		result.Shipment = sh
		return nil
	})
	if err != nil {
		return nil, apperror.Wrap("failed to create booking", err)
	}

	logger.Success(fmt.Sprintf("Booking %d created with tracking number %s", result.Booking.ID, result.Shipment.TrackingNumber))
	s.publish(ctx, event_bus.TypeBookingCreated, &result.Booking, result.Shipment, actor.UserID)
	return result, nil
}

// createShipment inserts the shipment inside a savepoint so a tracking
// number collision can be retried without aborting tx.
func (s *Service) createShipment(tx *gorm.DB, b *bookingModel.Booking) (*shipmentModel.Shipment, error) {
	estimated := b.DeliveryDate

	for attempt := 1; attempt <= maxTrackingAttempts; attempt++ {
		sh := shipmentModel.Shipment{
			TrackingNumber:    s.NewTrackingNumber(),
			BookingID:         b.ID,
			UserID:            b.UserID,
			Status:            bookingModel.StatusProcessing,
			EstimatedDelivery: &estimated,
		}

		err := tx.Transaction(func(sp *gorm.DB) error {
			return sp.Create(&sh).Error
		})
		if err == nil {
			return &sh, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create shipment: %w", err)
		}
		logger.Warning(fmt.Sprintf("Tracking number %s already taken (attempt %d/%d)", sh.TrackingNumber, attempt, maxTrackingAttempts))
	}

	return nil, fmt.Errorf("create shipment: no unique tracking number after %d attempts", maxTrackingAttempts)
}

// RespondAsRider lets a rider accept or reject an open booking. Acceptance is
// a conditional write on rider_id IS NULL; the losing rider gets an
// InvalidState error.
func (s *Service) RespondAsRider(ctx context.Context, actor types.Actor, bookingID uint, action string) (*bookingModel.Booking, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	if !actor.IsRider() {
		return nil, apperror.Authorization("only riders can accept or reject bookings")
	}

	action = strings.ToLower(strings.TrimSpace(action))
	if action != bookingTypes.ActionAccept && action != bookingTypes.ActionReject {
		return nil, apperror.Validation(`action must be "accept" or "reject"`)
	}

	var b bookingModel.Booking
	eventType := bookingModel.EventRiderAccepted
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r riderModel.Rider
		if err := tx.Where("user_id = ?", actor.UserID).First(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("rider profile not found")
			}
			return err
		}

		if err := tx.First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("booking not found")
			}
			return err
		}
		if b.RiderID != nil || b.Status != bookingModel.StatusProcessing {
			return apperror.InvalidState("booking is no longer open for riders")
		}

		open := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND rider_id IS NULL AND status = ?", b.ID, bookingModel.StatusProcessing)

		var res *gorm.DB
		if action == bookingTypes.ActionAccept {
			res = open.Updates(map[string]interface{}{
				"rider_id":       r.ID,
				"rider_response": bookingModel.RiderResponseAccepted,
			})
		} else {
			eventType = bookingModel.EventRiderRejected
			res = open.Update("rider_response", bookingModel.RiderResponseRejected)
		}
		if res.Error != nil {
			return fmt.Errorf("%s booking: %w", action, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.InvalidState("booking was taken by another rider")
		}

		if err := tx.First(&b, b.ID).Error; err != nil {
			return err
		}
		return booking_event.Record(tx, &b, nil, eventType, actor.UserID)
	})
	if err != nil {
		return nil, apperror.Wrap("failed to respond to booking", err)
	}

	if eventType == bookingModel.EventRiderAccepted {
		s.publish(ctx, event_bus.TypeBookingRiderAccepted, &b, nil, actor.UserID)
	} else {
		s.publish(ctx, event_bus.TypeBookingRiderRejected, &b, nil, actor.UserID)
	}
	return &b, nil
}

// Cancel lets the owner cancel a PROCESSING or SHIPPED booking. The linked
// shipment is cancelled in the same transaction.
func (s *Service) Cancel(ctx context.Context, actor types.Actor, bookingID uint) (*Result, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	if bookingID == 0 {
		return nil, apperror.Validation("bookingId is required")
	}

	result := &Result{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b := &result.Booking
		if err := tx.First(b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("booking not found")
			}
			return err
		}
		if b.UserID != actor.UserID {
			return apperror.Authorization("only the owner can cancel this booking")
		}
		if !b.Status.IsCancellable() {
			return apperror.InvalidState("cannot cancel in current state")
		}

		res := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status IN ?", b.ID, bookingModel.CancellableStatuses()).
			Update("status", bookingModel.StatusCancelled)
		if res.Error != nil {
			return fmt.Errorf("cancel booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.InvalidState("cannot cancel in current state")
		}

		var sh shipmentModel.Shipment
		err := tx.Where("booking_id = ?", b.ID).First(&sh).Error
		switch {
		case err == nil:
			if err := tx.Model(&sh).Update("status", bookingModel.StatusCancelled).Error; err != nil {
				return fmt.Errorf("cancel shipment: %w", err)
			}
			sh.Status = bookingModel.StatusCancelled
			result.Shipment = &sh
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.First(b, b.ID).Error; err != nil {
			return err
		}
		return booking_event.Record(tx, b, result.Shipment, bookingModel.EventCancelled, actor.UserID)
	})
	if err != nil {
		return nil, apperror.Wrap("failed to cancel booking", err)
	}

	logger.Info(fmt.Sprintf("Booking %d cancelled by user %d", result.Booking.ID, actor.UserID))
	s.publish(ctx, event_bus.TypeBookingCancelled, &result.Booking, result.Shipment, actor.UserID)
	return result, nil
}

// AdminUpdateStatus moves a shipment and its booking together, keyed by
// tracking number.
func (s *Service) AdminUpdateStatus(ctx context.Context, actor types.Actor, req bookingTypes.StatusUpdateRequest) (*Result, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, apperror.Authorization("only admins can update shipment status")
	}

	update, err := req.Validate()
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	result := &Result{}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sh shipmentModel.Shipment
		if err := tx.Where("tracking_number = ?", update.TrackingNumber).First(&sh).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("shipment not found")
			}
			return err
		}
		b := &result.Booking
		if err := tx.First(b, sh.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("booking not found")
			}
			return err
		}

		if !sh.Status.CanTransitionTo(update.ShipmentStatus) {
			return apperror.InvalidState(fmt.Sprintf("shipment cannot move from %s to %s", sh.Status, update.ShipmentStatus))
		}
		if !b.Status.CanTransitionTo(update.BookingStatus) {
			return apperror.InvalidState(fmt.Sprintf("booking cannot move from %s to %s", b.Status, update.BookingStatus))
		}

		shipmentUpdates := map[string]interface{}{"status": update.ShipmentStatus}
		if update.CurrentLocation != nil {
			shipmentUpdates["current_location"] = *update.CurrentLocation
		}
		if update.EstimatedDelivery != nil {
			shipmentUpdates["estimated_delivery"] = *update.EstimatedDelivery
		}

		res := tx.Model(&shipmentModel.Shipment{}).
			Where("id = ? AND status = ?", sh.ID, sh.Status).
			Updates(shipmentUpdates)
		if res.Error != nil {
			return fmt.Errorf("update shipment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.InvalidState("shipment was modified concurrently, retry")
		}

		res = tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status = ?", b.ID, b.Status).
			Update("status", update.BookingStatus)
		if res.Error != nil {
			return fmt.Errorf("update booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.InvalidState("booking was modified concurrently, retry")
		}

		if err := tx.First(&sh, sh.ID).Error; err != nil {
			return err
		}
		if err := tx.First(b, b.ID).Error; err != nil {
			return err
		}
		result.Shipment = &sh
		return booking_event.Record(tx, b, &sh, bookingModel.EventStatusUpdated, actor.UserID)
	})
	if err != nil {
		return nil, apperror.Wrap("failed to update status", err)
	}

	logger.Info(fmt.Sprintf("Shipment %s moved to %s by admin %d", result.Shipment.TrackingNumber, result.Shipment.Status, actor.UserID))
	s.publish(ctx, event_bus.TypeShipmentStatus, &result.Booking, result.Shipment, actor.UserID)
	return result, nil
}

func (s *Service) publish(ctx context.Context, eventType string, b *bookingModel.Booking, sh *shipmentModel.Shipment, actorID uint) {
	event := event_bus.Event{
		Type:       eventType,
		BookingID:  b.ID,
		Status:     b.Status,
		RiderID:    b.RiderID,
		ActorID:    actorID,
		OccurredAt: s.Now(),
	}
	if sh != nil {
		event.TrackingNumber = sh.TrackingNumber
		event.ShipmentStatus = sh.Status
	}

	// events outlive the request context
	if err := s.Events.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.Error("Failed to publish "+eventType+" event", err)
	}
}
