package user

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleRider Role = "RIDER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleRider:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// User is an account that can sign in. Email is stored lower-cased.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(64);not null;unique" json:"uuid"`
	Name         *string `gorm:"type:varchar(255)" json:"name,omitempty"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role    `gorm:"type:varchar(10);not null;default:USER" json:"role"`
	Phone        *string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
