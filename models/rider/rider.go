package rider

import (
	"time"

	"fastfast-logistics/models/user"
)

// Rider is the courier profile of a user with role RIDER.
type Rider struct {
	ID     uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint       `gorm:"not null;unique" json:"userId"`
	User   *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`

	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Email   string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone   *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address *string `gorm:"type:text" json:"address,omitempty"`

	GuarantorName    *string `gorm:"type:varchar(255)" json:"guarantorName,omitempty"`
	GuarantorPhone   *string `gorm:"type:varchar(20)" json:"guarantorPhone,omitempty"`
	GuarantorAddress *string `gorm:"type:text" json:"guarantorAddress,omitempty"`

	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Rider) TableName() string {
	return "riders"
}
