package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"coating/config"
	"coating/infras/otel/mocks"
	codeMocks "coating/internal/domains/booking/code/mocks"
	bookingMocks "coating/internal/domains/booking/mocks"
	"coating/internal/domains/booking/model"
	"coating/internal/domains/booking/model/dto"
	"coating/internal/domains/booking/service"
	profileMocks "coating/internal/domains/profile/service/mocks"
	"coating/internal/domains/submission"
	submissionMocks "coating/internal/domains/submission/mocks"
	"coating/shared/constant"
	"coating/shared/event"
	eventMocks "coating/shared/event/mocks"
	"coating/shared/failure"
	"coating/shared/identity"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	profiles  *profileMocks.MockProfile
	codes     *codeMocks.MockGenerator
	tracker   *submissionMocks.MockTracker
	publisher *eventMocks.MockPublisher
	svc       service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.Booking.CodeMaxAttempts = 3

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		profiles:  profileMocks.NewMockProfile(ctrl),
		codes:     codeMocks.NewMockGenerator(ctrl),
		tracker:   submissionMocks.NewMockTracker(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.profiles, cfg, f.codes, f.tracker, f.publisher, mocks.NewOtel())

	return f
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Name:    "Nguyen Van A",
		Phone:   "0987654321",
		Service: "Gia công sơn tĩnh điện",
	}
}

func codeCollision() error {
	return &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.CodeConstraint}
}

func expectPublish(t *testing.T, f fixture, eventType string) <-chan event.Event {
	t.Helper()

	published := make(chan event.Event, 1)

	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, evt event.Event) error {
			assert.Equal(t, eventType, evt.Type)
			published <- evt

			return nil
		})

	return published
}

func waitPublished(t *testing.T, published <-chan event.Event) event.Event {
	t.Helper()

	select {
	case evt := <-published:
		return evt
	case <-time.After(time.Second):
		t.Fatal("event was not published")

		return event.Event{}
	}
}

func TestBookingService_Submit(t *testing.T) {
	t.Run("stores a pending booking and publishes it", func(t *testing.T) {
		f := newFixture(t)

		f.tracker.EXPECT().Begin(gomock.Any(), submission.FormBooking, "form-1").Return(nil)
		f.codes.EXPECT().Generate().Return("BKA1B2C3", nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, "BKA1B2C3", booking.Code)
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, "Nguyen Van A", booking.CustomerName)
				assert.Equal(t, "0987654321", booking.CustomerPhone)
				assert.Equal(t, "Gia công sơn tĩnh điện", booking.ServiceType)
				assert.Equal(t, 1, booking.Quantity)
				assert.Nil(t, booking.UserID)

				return nil
			})
		f.tracker.EXPECT().Finish(gomock.Any(), submission.FormBooking, "form-1", "BKA1B2C3", nil)
		published := expectPublish(t, f, event.BookingCreated)

		res, err := f.svc.Submit(context.Background(), "form-1", validRequest())

		require.NoError(t, err)
		assert.Equal(t, "BKA1B2C3", res.Code)

		evt := waitPublished(t, published)
		assert.Equal(t, "BKA1B2C3", evt.Key)
		assert.Equal(t, constant.ContextGuest, evt.Actor)
	})

	t.Run("authenticated submitter owns the booking", func(t *testing.T) {
		f := newFixture(t)
		ctx := identity.WithContext(context.Background(), identity.Identity{UserID: "u-1", Role: constant.RoleUser})

		f.tracker.EXPECT().Begin(gomock.Any(), submission.FormBooking, constant.Empty).Return(nil)
		f.codes.EXPECT().Generate().Return("BKZZZZZ9", nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				require.NotNil(t, booking.UserID)
				assert.Equal(t, "u-1", *booking.UserID)
				assert.Equal(t, "u-1", booking.CreatedBy)

				return nil
			})
		f.tracker.EXPECT().Finish(gomock.Any(), submission.FormBooking, constant.Empty, "BKZZZZZ9", nil)
		published := expectPublish(t, f, event.BookingCreated)

		_, err := f.svc.Submit(ctx, constant.Empty, validRequest())

		require.NoError(t, err)
		waitPublished(t, published)
	})

	t.Run("retries with a new code on collision", func(t *testing.T) {
		f := newFixture(t)

		f.tracker.EXPECT().Begin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		gomock.InOrder(
			f.codes.EXPECT().Generate().Return("BKAAAAAA", nil),
			f.codes.EXPECT().Generate().Return("BKBBBBBB", nil),
		)
		gomock.InOrder(
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(fmt.Errorf("failed to insert data (booking): %w", codeCollision())),
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		)
		f.tracker.EXPECT().Finish(gomock.Any(), gomock.Any(), gomock.Any(), "BKBBBBBB", nil)
		published := expectPublish(t, f, event.BookingCreated)

		res, err := f.svc.Submit(context.Background(), "form-1", validRequest())

		require.NoError(t, err)
		assert.Equal(t, "BKBBBBBB", res.Code)
		waitPublished(t, published)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		f := newFixture(t)

		f.tracker.EXPECT().Begin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.codes.EXPECT().Generate().Return("BKAAAAAA", nil).Times(3)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(codeCollision()).Times(3)
		f.tracker.EXPECT().Finish(gomock.Any(), gomock.Any(), gomock.Any(), constant.Empty, gomock.Not(nil))

		_, err := f.svc.Submit(context.Background(), "form-1", validRequest())

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, constant.MessageStoreFailure, failure.GetMessage(err))
	})

	t.Run("other store errors are not retried", func(t *testing.T) {
		f := newFixture(t)

		f.tracker.EXPECT().Begin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.codes.EXPECT().Generate().Return("BKAAAAAA", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
		f.tracker.EXPECT().Finish(gomock.Any(), gomock.Any(), gomock.Any(), constant.Empty, gomock.Not(nil))

		_, err := f.svc.Submit(context.Background(), "form-1", validRequest())

		assert.Equal(t, constant.MessageStoreFailure, failure.GetMessage(err))
	})

	t.Run("collision on another unique index is not retried", func(t *testing.T) {
		f := newFixture(t)

		f.tracker.EXPECT().Begin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.codes.EXPECT().Generate().Return("BKAAAAAA", nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: "bookings_pkey"})
		f.tracker.EXPECT().Finish(gomock.Any(), gomock.Any(), gomock.Any(), constant.Empty, gomock.Not(nil))

		_, err := f.svc.Submit(context.Background(), "form-1", validRequest())

		assert.Error(t, err)
	})

	t.Run("missing service fails validation without a write", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.Service = "   "

		_, err := f.svc.Submit(context.Background(), "form-1", req)

		require.Error(t, err)
		assert.Equal(t, "service", failure.GetField(err))
		assert.Equal(t, "Vui lòng chọn dịch vụ", failure.GetMessage(err))
	})

	t.Run("submission already in flight is rejected", func(t *testing.T) {
		f := newFixture(t)

		f.tracker.EXPECT().Begin(gomock.Any(), submission.FormBooking, "form-1").Return(submission.ErrInFlight)

		_, err := f.svc.Submit(context.Background(), "form-1", validRequest())

		assert.ErrorIs(t, err, submission.ErrInFlight)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Options(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Options(context.Background())

	assert.Equal(t, model.Services, res.Services)
	assert.Equal(t, model.TimeSlots, res.TimeSlots)
}

func TestBookingService_GetByCode(t *testing.T) {
	owner := "u-1"
	stored := model.Booking{ID: "b-1", Code: "BKA1B2C3", Status: model.StatusConfirmed, UserID: &owner}

	tests := []struct {
		name      string
		code      string
		caller    identity.Identity
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:   "owner reads own booking",
			code:   "bka1b2c3",
			caller: identity.Identity{UserID: owner, Role: constant.RoleUser},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
		},
		{
			name:   "admin reads any booking",
			code:   "BKA1B2C3",
			caller: identity.Identity{UserID: "a-1", Role: constant.RoleAdmin},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)
			},
		},
		{
			name:   "user promoted after sign in reads any booking",
			code:   "BKA1B2C3",
			caller: identity.Identity{UserID: "u-3", Role: constant.RoleUser},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)
			},
		},
		{
			name:   "other user is denied",
			code:   "BKA1B2C3",
			caller: identity.Identity{UserID: "u-2", Role: constant.RoleUser},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "admin demoted after sign in is denied",
			code:   "BKA1B2C3",
			caller: identity.Identity{UserID: "a-1", Role: constant.RoleAdmin},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "role lookup failure",
			code:   "BKA1B2C3",
			caller: identity.Identity{UserID: "a-1", Role: constant.RoleAdmin},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(false, failure.Store(errors.New("timeout")))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:      "malformed code never reaches the store",
			code:      "XX123",
			caller:    identity.Identity{UserID: owner, Role: constant.RoleUser},
			setupMock: func(fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:   "unknown code",
			code:   "BKA1B2C4",
			caller: identity.Identity{UserID: owner, Role: constant.RoleUser},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "store error",
			code:   "BKA1B2C3",
			caller: identity.Identity{UserID: owner, Role: constant.RoleUser},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetByCode(identity.WithContext(context.Background(), tt.caller), tt.code)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "BKA1B2C3", res.Code)
			assert.Equal(t, "Đã xác nhận", res.StatusLabel)
		})
	}
}
