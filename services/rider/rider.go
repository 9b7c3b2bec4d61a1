package rider

import (
	"context"
	"errors"

	"fastfast-logistics/apperror"
	"fastfast-logistics/logger"
	riderModel "fastfast-logistics/models/rider"
	"fastfast-logistics/types"
	riderTypes "fastfast-logistics/types/rider"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// SaveProfile creates or updates the calling rider's profile. created is
// true on the first save.
func (s *Service) SaveProfile(ctx context.Context, actor types.Actor, req riderTypes.ProfileRequest) (*riderModel.Rider, bool, error) {
	if !actor.IsRider() {
		return nil, false, apperror.Authorization("only riders have a rider profile")
	}
	if err := req.Validate(); err != nil {
		return nil, false, apperror.Validation(err.Error())
	}

	var r riderModel.Rider
	created := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", actor.UserID).First(&r).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			r = riderModel.Rider{UserID: actor.UserID, Email: actor.Email, IsAvailable: true}
		case err != nil:
			return err
		}

		r.Name = req.Name
		r.Phone = req.Phone
		r.Address = req.Address
		r.GuarantorName = req.GuarantorName
		r.GuarantorPhone = req.GuarantorPhone
		r.GuarantorAddress = req.GuarantorAddress
		if req.IsAvailable != nil {
			r.IsAvailable = *req.IsAvailable
		}

		if created {
			return tx.Create(&r).Error
		}
		return tx.Save(&r).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, apperror.Conflict("a rider profile already uses this email")
		}
		return nil, false, apperror.Wrap("failed to save rider profile", err)
	}

	if created {
		logger.Success("Rider profile created for " + actor.Email)
	}
	return &r, created, nil
}

func (s *Service) Profile(ctx context.Context, actor types.Actor) (*riderModel.Rider, error) {
	if !actor.IsRider() {
		return nil, apperror.Authorization("only riders have a rider profile")
	}
	var r riderModel.Rider
	err := s.DB.WithContext(ctx).Where("user_id = ?", actor.UserID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("rider profile not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load rider profile", err)
	}
	return &r, nil
}

// List is the admin rider listing.
func (s *Service) List(ctx context.Context, actor types.Actor, availableOnly bool) ([]riderModel.Rider, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Authorization("only admins can list riders")
	}
	query := s.DB.WithContext(ctx).Preload("User")
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	var riders []riderModel.Rider
	if err := query.Order("id ASC").Find(&riders).Error; err != nil {
		return nil, apperror.Internal("failed to list riders", err)
	}
	return riders, nil
}
