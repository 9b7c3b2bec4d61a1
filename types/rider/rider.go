package rider

import (
	"fmt"
	"strings"

	"fastfast-logistics/utils"
)

// ProfileRequest creates or replaces the caller's rider profile.
type ProfileRequest struct {
	Name             string  `json:"name"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	GuarantorName    *string `json:"guarantorName"`
	GuarantorPhone   *string `json:"guarantorPhone"`
	GuarantorAddress *string `json:"guarantorAddress"`
	IsAvailable      *bool   `json:"isAvailable"`
}

func (r *ProfileRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Phone != nil && !utils.ValidatePhoneNumber(*r.Phone) {
		return fmt.Errorf("phone is not a valid phone number")
	}
	if r.GuarantorPhone != nil && !utils.ValidatePhoneNumber(*r.GuarantorPhone) {
		return fmt.Errorf("guarantorPhone is not a valid phone number")
	}
	return nil
}
