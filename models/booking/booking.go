package booking

import (
	"time"

	"fastfast-logistics/models/rider"
	"fastfast-logistics/models/user"

	"github.com/shopspring/decimal"
)

// Booking is a request to pick up a package and deliver it.
// A booking with no rider keeps RiderResponse PENDING unless a rider
// explicitly rejected it.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint       `gorm:"not null;index" json:"userId"`
	User   *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`

	RiderID *uint        `gorm:"index" json:"riderId"`
	Rider   *rider.Rider `gorm:"foreignKey:RiderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"rider,omitempty"`

	PickupAddress      string        `gorm:"type:text;not null" json:"pickupAddress"`
	DeliveryAddress    string        `gorm:"type:text;not null" json:"deliveryAddress"`
	PickupDate         time.Time     `gorm:"type:date;not null" json:"pickupDate"`
	DeliveryDate       time.Time     `gorm:"type:date;not null" json:"deliveryDate"`
	PickupTime         string        `gorm:"type:varchar(5);not null" json:"pickupTime"`
	DeliveryTime       string        `gorm:"type:varchar(5);not null" json:"deliveryTime"`
	PackageSize        PackageSize   `gorm:"type:varchar(20);not null" json:"packageSize"`
	PackageDescription *string       `gorm:"type:text" json:"packageDescription,omitempty"`
	IsUrgent           bool          `gorm:"not null;default:false" json:"isUrgent"`
	PaymentMethod      PaymentMethod `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	Route              string        `gorm:"type:text" json:"route"`

	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discountAmount"`
	CouponCode     *string         `gorm:"type:varchar(50)" json:"couponCode,omitempty"`

	PickupPhoneNumber   string `gorm:"type:varchar(20);not null" json:"pickupPhoneNumber"`
	DeliveryPhoneNumber string `gorm:"type:varchar(20);not null" json:"deliveryPhoneNumber"`

	Status        Status        `gorm:"type:varchar(20);not null;index" json:"status"`
	RiderResponse RiderResponse `gorm:"type:varchar(20);not null;default:PENDING" json:"riderResponse"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}
