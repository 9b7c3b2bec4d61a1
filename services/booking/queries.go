package booking

import (
	"context"
	"errors"
	"time"

	"fastfast-logistics/apperror"
	bookingModel "fastfast-logistics/models/booking"
	riderModel "fastfast-logistics/models/rider"
	shipmentModel "fastfast-logistics/models/shipment"
	"fastfast-logistics/services/booking_event"
	"fastfast-logistics/services/tracking"
	"fastfast-logistics/types"
	bookingTypes "fastfast-logistics/types/booking"

	"gorm.io/gorm"
)

// riderFor returns the caller's rider profile, or nil when the caller has none.
func (s *Service) riderFor(db *gorm.DB, actor types.Actor) (*riderModel.Rider, error) {
	var r riderModel.Rider
	err := db.Where("user_id = ?", actor.UserID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// canView reports whether actor may see b: its owner, the assigned rider or
// an admin.
func (s *Service) canView(db *gorm.DB, actor types.Actor, b *bookingModel.Booking) (bool, error) {
	if actor.IsAdmin() || b.UserID == actor.UserID {
		return true, nil
	}
	if !actor.IsRider() || b.RiderID == nil {
		return false, nil
	}
	r, err := s.riderFor(db, actor)
	if err != nil || r == nil {
		return false, err
	}
	return *b.RiderID == r.ID, nil
}

// Get returns a booking with its shipment.
func (s *Service) Get(ctx context.Context, actor types.Actor, bookingID uint) (*Result, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	result := &Result{}
	if err := db.Preload("Rider").First(&result.Booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("booking not found")
		}
		return nil, apperror.Internal("failed to load booking", err)
	}

	ok, err := s.canView(db, actor, &result.Booking)
	if err != nil {
		return nil, apperror.Internal("failed to load booking", err)
	}
	if !ok {
		return nil, apperror.Authorization("you cannot view this booking")
	}

	var sh shipmentModel.Shipment
	err = db.Where("booking_id = ?", bookingID).First(&sh).Error
	switch {
	case err == nil:
		result.Shipment = &sh
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperror.Internal("failed to load shipment", err)
	}
	return result, nil
}

// History returns the status events of a booking the actor may view.
func (s *Service) History(ctx context.Context, actor types.Actor, bookingID uint) ([]bookingModel.BookingStatusEvent, error) {
	if _, err := s.Get(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	events, err := booking_event.History(s.DB.WithContext(ctx), bookingID)
	if err != nil {
		return nil, apperror.Internal("failed to load booking history", err)
	}
	return events, nil
}

// ListForUser returns the caller's own bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, actor types.Actor) ([]bookingModel.Booking, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}

	var bookings []bookingModel.Booking
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", actor.UserID).
		Order("created_at DESC, id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperror.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

// ListAvailable returns PROCESSING bookings no rider has claimed yet.
func (s *Service) ListAvailable(ctx context.Context, actor types.Actor) ([]bookingModel.Booking, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	if !actor.IsRider() && !actor.IsAdmin() {
		return nil, apperror.Authorization("only riders can browse open bookings")
	}

	var bookings []bookingModel.Booking
	err := s.DB.WithContext(ctx).
		Where("rider_id IS NULL AND status = ?", bookingModel.StatusProcessing).
		Order("pickup_date ASC, id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, apperror.Internal("failed to list open bookings", err)
	}
	return bookings, nil
}

// ListAssigned returns the bookings the calling rider accepted.
func (s *Service) ListAssigned(ctx context.Context, actor types.Actor) ([]bookingModel.Booking, error) {
	if err := requireSession(actor); err != nil {
		return nil, err
	}
	if !actor.IsRider() {
		return nil, apperror.Authorization("only riders have assigned bookings")
	}

	db := s.DB.WithContext(ctx)
	r, err := s.riderFor(db, actor)
	if err != nil {
		return nil, apperror.Internal("failed to load rider profile", err)
	}
	if r == nil {
		return nil, apperror.NotFound("rider profile not found")
	}

	var bookings []bookingModel.Booking
	if err := db.Where("rider_id = ?", r.ID).Order("pickup_date ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, apperror.Internal("failed to list assigned bookings", err)
	}
	return bookings, nil
}

// ListAll is the admin listing with optional status and pickup-date filters.
func (s *Service) ListAll(ctx context.Context, actor types.Actor, filter bookingTypes.Filter) ([]bookingModel.Booking, int64, error) {
	if err := requireSession(actor); err != nil {
		return nil, 0, err
	}
	if !actor.IsAdmin() {
		return nil, 0, apperror.Authorization("only admins can list all bookings")
	}

	query := s.DB.WithContext(ctx).Model(&bookingModel.Booking{})
	if filter.Status != "" {
		status := bookingModel.Status(filter.Status)
		if !status.IsValid() {
			return nil, 0, apperror.Validation("status is not a valid status")
		}
		query = query.Where("status = ?", status)
	}
	if !filter.From.IsZero() {
		query = query.Where("pickup_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("pickup_date <= ?", filter.To)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count bookings", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	var bookings []bookingModel.Booking
	err := query.Preload("User").Preload("Rider").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(filter.Offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, apperror.Internal("failed to list bookings", err)
	}
	return bookings, total, nil
}

// TrackingView is the public projection of a shipment. Phone numbers and
// prices are left out.
type TrackingView struct {
	TrackingNumber    string              `json:"trackingNumber"`
	Status            bookingModel.Status `json:"status"`
	CurrentLocation   *string             `json:"currentLocation,omitempty"`
	EstimatedDelivery *time.Time          `json:"estimatedDelivery,omitempty"`
	Route             string              `json:"route"`
	PickupDate        time.Time           `json:"pickupDate"`
	DeliveryDate      time.Time           `json:"deliveryDate"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	Timeline          []TimelineEntry     `json:"timeline"`
}

type TimelineEntry struct {
	Status   bookingModel.Status `json:"status"`
	Location *string             `json:"location,omitempty"`
	At       time.Time           `json:"at"`
}

// Track looks a shipment up by tracking number. No session is needed.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*TrackingView, error) {
	trackingNumber = tracking.Normalize(trackingNumber)
	if trackingNumber == "" {
		return nil, apperror.Validation("trackingNumber is required")
	}
	if !tracking.IsWellFormed(trackingNumber) {
		return nil, apperror.NotFound("shipment not found")
	}

	db := s.DB.WithContext(ctx)
	var sh shipmentModel.Shipment
	if err := db.Preload("Booking").Where("tracking_number = ?", trackingNumber).First(&sh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("shipment not found")
		}
		return nil, apperror.Internal("failed to look up shipment", err)
	}

	view := &TrackingView{
		TrackingNumber:    sh.TrackingNumber,
		Status:            sh.Status,
		CurrentLocation:   sh.CurrentLocation,
		EstimatedDelivery: sh.EstimatedDelivery,
		UpdatedAt:         sh.UpdatedAt,
		Timeline:          []TimelineEntry{},
	}
	if sh.Booking != nil {
		view.Route = sh.Booking.Route
		view.PickupDate = sh.Booking.PickupDate
		view.DeliveryDate = sh.Booking.DeliveryDate
	}

	events, err := booking_event.History(db, sh.BookingID)
	if err != nil {
		return nil, apperror.Internal("failed to load shipment timeline", err)
	}
	for _, ev := range events {
		if ev.ShipmentStatus == nil {
			continue
		}
		view.Timeline = append(view.Timeline, TimelineEntry{Status: *ev.ShipmentStatus, Location: ev.Location, At: ev.CreatedAt})
	}
	return view, nil
}
