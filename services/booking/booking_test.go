package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"fastfast-logistics/apperror"
	"fastfast-logistics/database"
	bookingModel "fastfast-logistics/models/booking"
	couponModel "fastfast-logistics/models/coupon"
	riderModel "fastfast-logistics/models/rider"
	shipmentModel "fastfast-logistics/models/shipment"
	userModel "fastfast-logistics/models/user"
	"fastfast-logistics/services/coupon"
	"fastfast-logistics/services/event_bus"
	"fastfast-logistics/services/tracking"
	"fastfast-logistics/types"
	bookingTypes "fastfast-logistics/types/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	svc    *Service
	events *event_bus.Recorder
	now    time.Time

	owner      types.Actor
	stranger   types.Actor
	admin      types.Actor
	riderActor types.Actor
	rider      riderModel.Rider
	rival      types.Actor
	rivalRider riderModel.Rider
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := database.OpenSQLiteMemory("booking_" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	f := &fixture{
		db:     db,
		events: &event_bus.Recorder{},
		now:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
	}

	f.owner = createUser(t, db, "owner@example.com", userModel.RoleUser)
	f.stranger = createUser(t, db, "stranger@example.com", userModel.RoleUser)
	f.admin = createUser(t, db, "admin@example.com", userModel.RoleAdmin)
	f.riderActor = createUser(t, db, "rider@example.com", userModel.RoleRider)
	f.rival = createUser(t, db, "rival@example.com", userModel.RoleRider)
	f.rider = createRider(t, db, f.riderActor)
	f.rivalRider = createRider(t, db, f.rival)

	coupons := coupon.NewService(db)
	coupons.Now = func() time.Time { return f.now }
	f.svc = NewService(db, coupons, f.events)
	f.svc.Now = func() time.Time { return f.now }
	return f
}

func createUser(t *testing.T, db *gorm.DB, email string, role userModel.Role) types.Actor {
	t.Helper()
	u := userModel.User{Uuid: uuid.NewString(), Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return types.Actor{UserID: u.ID, UUID: u.Uuid, Email: u.Email, Role: u.Role}
}

func createRider(t *testing.T, db *gorm.DB, actor types.Actor) riderModel.Rider {
	t.Helper()
	r := riderModel.Rider{UserID: actor.UserID, Name: "Rider " + actor.Email, Email: actor.Email, IsAvailable: true}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func validRequest() bookingTypes.CreateRequest {
	return bookingTypes.CreateRequest{
		PickupAddress:       "Sapele Road",
		DeliveryAddress:     "Okirigwe",
		PickupDate:          "2026-03-11",
		DeliveryDate:        "2026-03-12",
		PickupTime:          "09:30",
		DeliveryTime:        "14:00",
		PackageSize:         "SMALL",
		PaymentMethod:       "CASH",
		PickupPhoneNumber:   "08031234567",
		DeliveryPhoneNumber: "+2347031234567",
	}
}

func (f *fixture) create(t *testing.T) *Result {
	t.Helper()
	res, err := f.svc.Create(context.Background(), f.owner, validRequest())
	require.NoError(t, err)
	return res
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) reload(t *testing.T, bookingID uint) (bookingModel.Booking, shipmentModel.Shipment) {
	t.Helper()
	var b bookingModel.Booking
	require.NoError(t, f.db.First(&b, bookingID).Error)
	var sh shipmentModel.Shipment
	require.NoError(t, f.db.Where("booking_id = ?", bookingID).First(&sh).Error)
	return b, sh
}

func TestCreateProducesOneBookingAndOneShipment(t *testing.T) {
	f := setup(t)

	res := f.create(t)

	assert.Equal(t, int64(1), f.count(t, &bookingModel.Booking{}))
	assert.Equal(t, int64(1), f.count(t, &shipmentModel.Shipment{}))

	b, sh := f.reload(t, res.Booking.ID)
	assert.Equal(t, bookingModel.StatusProcessing, b.Status)
	assert.Equal(t, bookingModel.RiderResponsePending, b.RiderResponse)
	assert.Nil(t, b.RiderID)
	assert.Equal(t, f.owner.UserID, b.UserID)
	assert.Equal(t, "Sapele Road → Okirigwe", b.Route)

	assert.Equal(t, bookingModel.StatusProcessing, sh.Status)
	assert.Equal(t, b.ID, sh.BookingID)
	assert.True(t, strings.HasPrefix(sh.TrackingNumber, tracking.Prefix), sh.TrackingNumber)
	require.NotNil(t, sh.EstimatedDelivery)
	assert.Equal(t, b.DeliveryDate.Format("2006-01-02"), sh.EstimatedDelivery.Format("2006-01-02"))

	assert.Equal(t, []string{event_bus.TypeBookingCreated}, f.events.Types())

	history, err := f.svc.History(context.Background(), f.owner, b.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, bookingModel.EventCreated, history[0].EventType)
}

func TestCreateLargeUrgentExplicitRoute(t *testing.T) {
	f := setup(t)

	req := validRequest()
	req.PickupAddress = "amukpe roundabout"
	req.DeliveryAddress = "urakpa"
	req.PackageSize = "LARGE"
	req.IsUrgent = true

	res, err := f.svc.Create(context.Background(), f.owner, req)
	require.NoError(t, err)

	// 3500 route override + 1000 large + 1000 urgent
	assert.True(t, decimal.NewFromInt(5500).Equal(res.Booking.Price), "price %s", res.Booking.Price)
	assert.Equal(t, bookingModel.StatusProcessing, res.Booking.Status)
	assert.Equal(t, bookingModel.StatusProcessing, res.Shipment.Status)
	assert.True(t, strings.HasPrefix(res.Shipment.TrackingNumber, "FLS-SAP"))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *bookingTypes.CreateRequest)
	}{
		{"missing pickup address", func(r *bookingTypes.CreateRequest) { r.PickupAddress = "  " }},
		{"missing delivery address", func(r *bookingTypes.CreateRequest) { r.DeliveryAddress = "" }},
		{"malformed pickup date", func(r *bookingTypes.CreateRequest) { r.PickupDate = "11/03/2026" }},
		{"pickup in the past", func(r *bookingTypes.CreateRequest) { r.PickupDate = "2026-03-09" }},
		{"delivery before pickup", func(r *bookingTypes.CreateRequest) { r.DeliveryDate = "2026-03-10" }},
		{"malformed time", func(r *bookingTypes.CreateRequest) { r.PickupTime = "9am" }},
		{"unknown package size", func(r *bookingTypes.CreateRequest) { r.PackageSize = "HUGE" }},
		{"unknown payment method", func(r *bookingTypes.CreateRequest) { r.PaymentMethod = "CRYPTO" }},
		{"bad pickup phone", func(r *bookingTypes.CreateRequest) { r.PickupPhoneNumber = "12345" }},
		{"bad delivery phone", func(r *bookingTypes.CreateRequest) { r.DeliveryPhoneNumber = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			req := validRequest()
			tt.mutate(&req)

			_, err := f.svc.Create(context.Background(), f.owner, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, int64(0), f.count(t, &bookingModel.Booking{}))
			assert.Equal(t, int64(0), f.count(t, &shipmentModel.Shipment{}))
		})
	}
}

func TestCreateAcceptsTodayAsPickupDate(t *testing.T) {
	f := setup(t)
	req := validRequest()
	req.PickupDate = "2026-03-10"
	req.DeliveryDate = "2026-03-10"

	_, err := f.svc.Create(context.Background(), f.owner, req)
	assert.NoError(t, err)
}

func TestCreateRequiresSession(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), types.Actor{}, validRequest())
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestCreateRetriesTrackingNumberCollision(t *testing.T) {
	f := setup(t)

	f.svc.NewTrackingNumber = func() string { return "FLS-SAPAAAAAAAA" }
	f.create(t)

	sequence := []string{"FLS-SAPAAAAAAAA", "FLS-SAPAAAAAAAA", "FLS-SAPBBBBBBBB"}
	calls := 0
	f.svc.NewTrackingNumber = func() string {
		tn := sequence[calls]
		calls++
		return tn
	}

	res, err := f.svc.Create(context.Background(), f.owner, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "FLS-SAPBBBBBBBB", res.Shipment.TrackingNumber)
	assert.Equal(t, 3, calls)
	assert.Equal(t, int64(2), f.count(t, &bookingModel.Booking{}))
}

func TestCreateRollsBackWhenTrackingNumbersRunOut(t *testing.T) {
	f := setup(t)

	f.svc.NewTrackingNumber = func() string { return "FLS-SAPAAAAAAAA" }
	f.create(t)

	_, err := f.svc.Create(context.Background(), f.owner, validRequest())
	require.Error(t, err)
	assert.Equal(t, 500, apperror.StatusCode(err))

	assert.Equal(t, int64(1), f.count(t, &bookingModel.Booking{}))
	assert.Equal(t, int64(1), f.count(t, &shipmentModel.Shipment{}))
}

func TestCreateRedeemsCoupon(t *testing.T) {
	f := setup(t)
	c := couponModel.Coupon{
		Code:          "SAVE10",
		DiscountType:  couponModel.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		ExpiryDate:    f.now.AddDate(0, 1, 0),
		UsageLimit:    1,
		IsActive:      true,
	}
	require.NoError(t, f.db.Create(&c).Error)

	req := validRequest()
	code := " save10 "
	req.CouponCode = &code

	res, err := f.svc.Create(context.Background(), f.owner, req)
	require.NoError(t, err)

	// Sapele matches the lower tier: 1500, minus 10%
	assert.True(t, decimal.NewFromInt(1350).Equal(res.Booking.Price), "price %s", res.Booking.Price)
	assert.True(t, decimal.NewFromInt(150).Equal(res.Booking.DiscountAmount))
	require.NotNil(t, res.Booking.CouponCode)
	assert.Equal(t, "SAVE10", *res.Booking.CouponCode)

	require.NoError(t, f.db.First(&c, c.ID).Error)
	assert.Equal(t, 1, c.UsedCount)

	_, err = f.svc.Create(context.Background(), f.owner, req)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, int64(1), f.count(t, &bookingModel.Booking{}))

	require.NoError(t, f.db.First(&c, c.ID).Error)
	assert.Equal(t, 1, c.UsedCount)
}

func TestCreateRejectsUnknownCoupon(t *testing.T) {
	f := setup(t)
	req := validRequest()
	code := "NOPE"
	req.CouponCode = &code

	_, err := f.svc.Create(context.Background(), f.owner, req)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, int64(0), f.count(t, &bookingModel.Booking{}))
}

func TestRiderAccept(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	b, err := f.svc.RespondAsRider(context.Background(), f.riderActor, res.Booking.ID, "Accept")
	require.NoError(t, err)
	require.NotNil(t, b.RiderID)
	assert.Equal(t, f.rider.ID, *b.RiderID)
	assert.Equal(t, bookingModel.RiderResponseAccepted, b.RiderResponse)

	stored, _ := f.reload(t, res.Booking.ID)
	assert.Equal(t, f.rider.ID, *stored.RiderID)
	assert.Equal(t, bookingModel.RiderResponseAccepted, stored.RiderResponse)
	assert.Contains(t, f.events.Types(), event_bus.TypeBookingRiderAccepted)

	_, err = f.svc.RespondAsRider(context.Background(), f.rival, res.Booking.ID, "accept")
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
}

func TestRiderReject(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	b, err := f.svc.RespondAsRider(context.Background(), f.riderActor, res.Booking.ID, "reject")
	require.NoError(t, err)
	assert.Nil(t, b.RiderID)
	assert.Equal(t, bookingModel.RiderResponseRejected, b.RiderResponse)

	// still open for another rider
	b, err = f.svc.RespondAsRider(context.Background(), f.rival, res.Booking.ID, "accept")
	require.NoError(t, err)
	assert.Equal(t, f.rivalRider.ID, *b.RiderID)
}

func TestRiderRespondErrors(t *testing.T) {
	f := setup(t)
	res := f.create(t)
	noProfile := createUser(t, f.db, "new-rider@example.com", userModel.RoleRider)

	tests := []struct {
		name   string
		actor  types.Actor
		id     uint
		action string
		kind   error
	}{
		{"not a rider", f.owner, res.Booking.ID, "accept", apperror.ErrAuthorization},
		{"no session", types.Actor{}, res.Booking.ID, "accept", apperror.ErrAuthentication},
		{"invalid action", f.riderActor, res.Booking.ID, "maybe", apperror.ErrValidation},
		{"no rider profile", noProfile, res.Booking.ID, "accept", apperror.ErrNotFound},
		{"missing booking", f.riderActor, 9999, "accept", apperror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RespondAsRider(context.Background(), tt.actor, tt.id, tt.action)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	stored, _ := f.reload(t, res.Booking.ID)
	assert.Nil(t, stored.RiderID)
	assert.Equal(t, bookingModel.RiderResponsePending, stored.RiderResponse)
}

func TestConcurrentAcceptHasOneWinner(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, actor := range []types.Actor{f.riderActor, f.rival} {
		wg.Add(1)
		go func(i int, actor types.Actor) {
			defer wg.Done()
			_, errs[i] = f.svc.RespondAsRider(context.Background(), actor, res.Booking.ID, "accept")
		}(i, actor)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	}
	assert.Equal(t, 1, succeeded)

	stored, _ := f.reload(t, res.Booking.ID)
	require.NotNil(t, stored.RiderID)
	assert.Contains(t, []uint{f.rider.ID, f.rivalRider.ID}, *stored.RiderID)
}

func TestCancelTwice(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	cancelled, err := f.svc.Cancel(context.Background(), f.owner, res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusCancelled, cancelled.Booking.Status)
	require.NotNil(t, cancelled.Shipment)
	assert.Equal(t, bookingModel.StatusCancelled, cancelled.Shipment.Status)

	_, err = f.svc.Cancel(context.Background(), f.owner, res.Booking.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)
	assert.Equal(t, "cannot cancel in current state", err.Error())
}

func TestCancelShippedBookingCascades(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	_, err := f.svc.AdminUpdateStatus(context.Background(), f.admin, bookingTypes.StatusUpdateRequest{
		TrackingNumber: res.Shipment.TrackingNumber,
		ShipmentStatus: "SHIPPED",
		BookingStatus:  "SHIPPED",
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), f.owner, res.Booking.ID)
	require.NoError(t, err)

	b, sh := f.reload(t, res.Booking.ID)
	assert.Equal(t, bookingModel.StatusCancelled, b.Status)
	assert.Equal(t, bookingModel.StatusCancelled, sh.Status)
	assert.Contains(t, f.events.Types(), event_bus.TypeBookingCancelled)
}

func TestCancelErrors(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	_, err := f.svc.Cancel(context.Background(), f.stranger, res.Booking.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	_, err = f.svc.Cancel(context.Background(), f.owner, 4242)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Cancel(context.Background(), types.Actor{}, res.Booking.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthentication)

	for _, step := range []string{"SHIPPED", "IN_TRANSIT", "DELIVERED"} {
		_, err := f.svc.AdminUpdateStatus(context.Background(), f.admin, bookingTypes.StatusUpdateRequest{
			TrackingNumber: res.Shipment.TrackingNumber,
			ShipmentStatus: step,
			BookingStatus:  step,
		})
		require.NoError(t, err, step)
	}

	_, err = f.svc.Cancel(context.Background(), f.owner, res.Booking.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	b, sh := f.reload(t, res.Booking.ID)
	assert.Equal(t, bookingModel.StatusDelivered, b.Status)
	assert.Equal(t, bookingModel.StatusDelivered, sh.Status)
}

func TestAdminUpdateStatus(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	location := "Warri depot"
	eta := "2026-03-15"
	updated, err := f.svc.AdminUpdateStatus(context.Background(), f.admin, bookingTypes.StatusUpdateRequest{
		TrackingNumber:    strings.ToLower(res.Shipment.TrackingNumber),
		ShipmentStatus:    "shipped",
		BookingStatus:     "SHIPPED",
		CurrentLocation:   &location,
		EstimatedDelivery: &eta,
	})
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusShipped, updated.Shipment.Status)
	assert.Equal(t, bookingModel.StatusShipped, updated.Booking.Status)

	b, sh := f.reload(t, res.Booking.ID)
	assert.Equal(t, bookingModel.StatusShipped, b.Status)
	assert.Equal(t, bookingModel.StatusShipped, sh.Status)
	require.NotNil(t, sh.CurrentLocation)
	assert.Equal(t, "Warri depot", *sh.CurrentLocation)
	assert.Equal(t, "2026-03-15", sh.EstimatedDelivery.Format("2006-01-02"))

	view, err := f.svc.Track(context.Background(), res.Shipment.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusShipped, view.Status)
	require.Len(t, view.Timeline, 2)
	assert.Equal(t, bookingModel.StatusProcessing, view.Timeline[0].Status)
	assert.Equal(t, bookingModel.StatusShipped, view.Timeline[1].Status)
}

func TestAdminUpdateStatusUnknownTrackingNumberChangesNothing(t *testing.T) {
	f := setup(t)
	res := f.create(t)
	eventsBefore := f.count(t, &bookingModel.BookingStatusEvent{})

	_, err := f.svc.AdminUpdateStatus(context.Background(), f.admin, bookingTypes.StatusUpdateRequest{
		TrackingNumber: "FLS-SAPZZZZZZZZ",
		ShipmentStatus: "SHIPPED",
		BookingStatus:  "SHIPPED",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, 404, apperror.StatusCode(err))

	b, sh := f.reload(t, res.Booking.ID)
	assert.Equal(t, bookingModel.StatusProcessing, b.Status)
	assert.Equal(t, bookingModel.StatusProcessing, sh.Status)
	assert.Equal(t, eventsBefore, f.count(t, &bookingModel.BookingStatusEvent{}))
}

func TestAdminUpdateStatusErrors(t *testing.T) {
	f := setup(t)
	res := f.create(t)
	tn := res.Shipment.TrackingNumber

	tests := []struct {
		name  string
		actor types.Actor
		req   bookingTypes.StatusUpdateRequest
		kind  error
	}{
		{"not admin", f.owner, bookingTypes.StatusUpdateRequest{TrackingNumber: tn, ShipmentStatus: "SHIPPED", BookingStatus: "SHIPPED"}, apperror.ErrAuthorization},
		{"unknown status", f.admin, bookingTypes.StatusUpdateRequest{TrackingNumber: tn, ShipmentStatus: "LOST", BookingStatus: "SHIPPED"}, apperror.ErrValidation},
		{"missing tracking number", f.admin, bookingTypes.StatusUpdateRequest{ShipmentStatus: "SHIPPED", BookingStatus: "SHIPPED"}, apperror.ErrValidation},
		{"illegal transition", f.admin, bookingTypes.StatusUpdateRequest{TrackingNumber: tn, ShipmentStatus: "DELIVERED", BookingStatus: "DELIVERED"}, apperror.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AdminUpdateStatus(context.Background(), tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestTrackUnknown(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Track(context.Background(), "FLS-SAP00000000")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Track(context.Background(), " ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestTrackRejectsMalformedNumbersWithoutLookup(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	// a number that is a prefix of a real one is still not a match
	_, err := f.svc.Track(context.Background(), res.Shipment.TrackingNumber[:len(res.Shipment.TrackingNumber)-1])
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Track(context.Background(), "FLS-SAP%' OR '1'='1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	view, err := f.svc.Track(context.Background(), " "+strings.ToLower(res.Shipment.TrackingNumber)+" ")
	require.NoError(t, err)
	assert.Equal(t, res.Shipment.TrackingNumber, view.TrackingNumber)
}

func TestListings(t *testing.T) {
	f := setup(t)
	first := f.create(t)
	f.create(t)

	open, err := f.svc.ListAvailable(context.Background(), f.riderActor)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	_, err = f.svc.RespondAsRider(context.Background(), f.riderActor, first.Booking.ID, "accept")
	require.NoError(t, err)

	open, err = f.svc.ListAvailable(context.Background(), f.riderActor)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	mine, err := f.svc.ListAssigned(context.Background(), f.riderActor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.Booking.ID, mine[0].ID)

	own, err := f.svc.ListForUser(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	none, err := f.svc.ListForUser(context.Background(), f.stranger)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.ListAvailable(context.Background(), f.owner)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	all, total, err := f.svc.ListAll(context.Background(), f.admin, bookingTypes.Filter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 1)

	_, _, err = f.svc.ListAll(context.Background(), f.owner, bookingTypes.Filter{})
	assert.ErrorIs(t, err, apperror.ErrAuthorization)
}

func TestGetVisibility(t *testing.T) {
	f := setup(t)
	res := f.create(t)

	got, err := f.svc.Get(context.Background(), f.owner, res.Booking.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Shipment)
	assert.Equal(t, res.Shipment.TrackingNumber, got.Shipment.TrackingNumber)

	_, err = f.svc.Get(context.Background(), f.admin, res.Booking.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(context.Background(), f.stranger, res.Booking.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	_, err = f.svc.Get(context.Background(), f.riderActor, res.Booking.ID)
	assert.ErrorIs(t, err, apperror.ErrAuthorization)

	_, err = f.svc.RespondAsRider(context.Background(), f.riderActor, res.Booking.ID, "accept")
	require.NoError(t, err)
	_, err = f.svc.Get(context.Background(), f.riderActor, res.Booking.ID)
	assert.NoError(t, err)
}
