package model

import (
	"errors"
	"slices"
	"time"

	"coating/shared/model"
	"coating/shared/status"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldCode      = "booking_code"
	FieldStatus    = "status"
	FieldUserID    = "user_id"
	FieldCreatedAt = "created_at"

	// CodeConstraint is the unique index guarding booking codes.
	CodeConstraint = "bookings_booking_code_key"

	DefaultQuantity = 1

	MessageNotFound = "Không tìm thấy lịch hẹn"
)

var (
	ErrUnknownStatus   = errors.New("unknown booking status")
	ErrUnknownTimeSlot = errors.New("unknown time slot")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

var statusLabels = status.Labels{
	string(StatusPending):   "Chờ xử lý",
	string(StatusConfirmed): "Đã xác nhận",
	string(StatusCompleted): "Hoàn thành",
	string(StatusCancelled): "Đã hủy",
}

func (s Status) Label() string {
	return statusLabels.Label(string(s))
}

func (s Status) Validate() error {
	if !statusLabels.Has(string(s)) {
		return ErrUnknownStatus
	}

	return nil
}

type TimeSlot string

var TimeSlots = []TimeSlot{
	"08:00-09:00",
	"09:00-10:00",
	"10:00-11:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
}

func (t TimeSlot) Validate() error {
	if !slices.Contains(TimeSlots, t) {
		return ErrUnknownTimeSlot
	}

	return nil
}

// Services is the catalogue offered on the booking form.
var Services = []string{
	"Tư vấn thiết kế dây chuyền sơn",
	"Gia công sơn tĩnh điện",
	"Hệ thống tự động hóa",
	"Bảo trì và sửa chữa",
	"Khảo sát hiện trạng",
	"Tư vấn nâng cấp hệ thống",
}

type Booking struct {
	ID                  string     `db:"id"`
	Code                string     `db:"booking_code"`
	CustomerName        string     `db:"customer_name"`
	CustomerPhone       string     `db:"customer_phone"`
	CustomerEmail       *string    `db:"customer_email"`
	CompanyName         *string    `db:"company_name"`
	CustomerAddress     *string    `db:"customer_address"`
	ServiceType         string     `db:"service_type"`
	ProductType         string     `db:"product_type"`
	Quantity            int        `db:"quantity"`
	PreferredDate       *time.Time `db:"preferred_date"`
	PreferredTime       *string    `db:"preferred_time"`
	SpecialRequirements *string    `db:"special_requirements"`
	Status              Status     `db:"status"`
	UserID              *string    `db:"user_id"`
	AccountName         *string    `db:"account_name" table:"profiles" column:"display_name"`
	model.Metadata
}

// GetJoinQuery reads the display name of the account that made the booking.
func (Booking) GetJoinQuery() string {
	return "LEFT JOIN profiles ON profiles.user_id = bookings.user_id"
}

func (b Booking) Owner() *string {
	return b.UserID
}
