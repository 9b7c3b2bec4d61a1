package booking

import (
	"fmt"
	"strings"
	"time"

	bookingModel "fastfast-logistics/models/booking"
	"fastfast-logistics/utils"

	"github.com/jinzhu/now"
)

// CreateRequest is the booking form. Any client-side price is ignored.
type CreateRequest struct {
	PickupAddress       string  `json:"pickupAddress"`
	DeliveryAddress     string  `json:"deliveryAddress"`
	PickupDate          string  `json:"pickupDate"`
	DeliveryDate        string  `json:"deliveryDate"`
	PickupTime          string  `json:"pickupTime"`
	DeliveryTime        string  `json:"deliveryTime"`
	PackageSize         string  `json:"packageSize"`
	PackageDescription  *string `json:"packageDescription"`
	IsUrgent            bool    `json:"isUrgent"`
	PaymentMethod       string  `json:"paymentMethod"`
	PickupPhoneNumber   string  `json:"pickupPhoneNumber"`
	DeliveryPhoneNumber string  `json:"deliveryPhoneNumber"`
	CouponCode          *string `json:"couponCode"`
}

// Form is a CreateRequest after validation.
type Form struct {
	PickupAddress       string
	DeliveryAddress     string
	PickupDate          time.Time
	DeliveryDate        time.Time
	PickupTime          string
	DeliveryTime        string
	PackageSize         bookingModel.PackageSize
	PackageDescription  *string
	IsUrgent            bool
	PaymentMethod       bookingModel.PaymentMethod
	PickupPhoneNumber   string
	DeliveryPhoneNumber string
	CouponCode          string
}

// Validate checks every field and returns the parsed form. today anchors the
// "pickup date not in the past" rule.
func (r CreateRequest) Validate(today time.Time) (Form, error) {
	var f Form

	f.PickupAddress = strings.TrimSpace(r.PickupAddress)
	if f.PickupAddress == "" {
		return f, fmt.Errorf("pickupAddress is required")
	}
	f.DeliveryAddress = strings.TrimSpace(r.DeliveryAddress)
	if f.DeliveryAddress == "" {
		return f, fmt.Errorf("deliveryAddress is required")
	}

	if r.PickupDate == "" {
		return f, fmt.Errorf("pickupDate is required")
	}
	pickup, err := utils.ParseDate(r.PickupDate)
	if err != nil {
		return f, fmt.Errorf("pickupDate must be a YYYY-MM-DD date")
	}
	if pickup.Before(now.With(today).BeginningOfDay()) {
		return f, fmt.Errorf("pickupDate cannot be in the past")
	}
	f.PickupDate = pickup

	if r.DeliveryDate == "" {
		return f, fmt.Errorf("deliveryDate is required")
	}
	delivery, err := utils.ParseDate(r.DeliveryDate)
	if err != nil {
		return f, fmt.Errorf("deliveryDate must be a YYYY-MM-DD date")
	}
	if delivery.Before(pickup) {
		return f, fmt.Errorf("deliveryDate cannot be before pickupDate")
	}
	f.DeliveryDate = delivery

	if f.PickupTime, err = utils.ParseClock(r.PickupTime); err != nil {
		return f, fmt.Errorf("pickupTime must be HH:MM")
	}
	if f.DeliveryTime, err = utils.ParseClock(r.DeliveryTime); err != nil {
		return f, fmt.Errorf("deliveryTime must be HH:MM")
	}

	f.PackageSize = bookingModel.PackageSize(strings.ToUpper(strings.TrimSpace(r.PackageSize)))
	if !f.PackageSize.IsValid() {
		return f, fmt.Errorf("packageSize must be one of SMALL, MEDIUM, LARGE, EXTRA_LARGE")
	}
	f.PaymentMethod = bookingModel.PaymentMethod(strings.ToUpper(strings.TrimSpace(r.PaymentMethod)))
	if !f.PaymentMethod.IsValid() {
		return f, fmt.Errorf("paymentMethod must be one of CREDIT_CARD, DEBIT_CARD, CASH, BANK_TRANSFER")
	}

	if !utils.ValidatePhoneNumber(r.PickupPhoneNumber) {
		return f, fmt.Errorf("pickupPhoneNumber is not a valid phone number")
	}
	if !utils.ValidatePhoneNumber(r.DeliveryPhoneNumber) {
		return f, fmt.Errorf("deliveryPhoneNumber is not a valid phone number")
	}
	f.PickupPhoneNumber = strings.TrimSpace(r.PickupPhoneNumber)
	f.DeliveryPhoneNumber = strings.TrimSpace(r.DeliveryPhoneNumber)

	if r.PackageDescription != nil {
		if desc := strings.TrimSpace(*r.PackageDescription); desc != "" {
			f.PackageDescription = &desc
		}
	}
	f.IsUrgent = r.IsUrgent
	if r.CouponCode != nil {
		f.CouponCode = strings.ToUpper(strings.TrimSpace(*r.CouponCode))
	}

	return f, nil
}

const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

type RiderActionRequest struct {
	Action string `json:"action"`
}

type CancelRequest struct {
	BookingID uint `json:"bookingId"`
}

// StatusUpdateRequest is the admin status change keyed by tracking number.
type StatusUpdateRequest struct {
	TrackingNumber    string  `json:"trackingNumber"`
	ShipmentStatus    string  `json:"shipmentStatus"`
	BookingStatus     string  `json:"bookingStatus"`
	CurrentLocation   *string `json:"currentLocation"`
	EstimatedDelivery *string `json:"estimatedDelivery"`
}

// StatusUpdate is a validated StatusUpdateRequest.
type StatusUpdate struct {
	TrackingNumber    string
	ShipmentStatus    bookingModel.Status
	BookingStatus     bookingModel.Status
	CurrentLocation   *string
	EstimatedDelivery *time.Time
}

func (r StatusUpdateRequest) Validate() (StatusUpdate, error) {
	var u StatusUpdate

	u.TrackingNumber = strings.ToUpper(strings.TrimSpace(r.TrackingNumber))
	if u.TrackingNumber == "" {
		return u, fmt.Errorf("trackingNumber is required")
	}
	u.ShipmentStatus = bookingModel.Status(strings.ToUpper(strings.TrimSpace(r.ShipmentStatus)))
	if !u.ShipmentStatus.IsValid() {
		return u, fmt.Errorf("shipmentStatus %q is not a valid status", r.ShipmentStatus)
	}
	u.BookingStatus = bookingModel.Status(strings.ToUpper(strings.TrimSpace(r.BookingStatus)))
	if !u.BookingStatus.IsValid() {
		return u, fmt.Errorf("bookingStatus %q is not a valid status", r.BookingStatus)
	}

	if r.CurrentLocation != nil {
		loc := strings.TrimSpace(*r.CurrentLocation)
		u.CurrentLocation = &loc
	}
	if r.EstimatedDelivery != nil && strings.TrimSpace(*r.EstimatedDelivery) != "" {
		d, err := utils.ParseDate(*r.EstimatedDelivery)
		if err != nil {
			return u, fmt.Errorf("estimatedDelivery must be a YYYY-MM-DD date")
		}
		u.EstimatedDelivery = &d
	}

	return u, nil
}

type TrackingRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

// Filter narrows admin booking listings.
type Filter struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}
