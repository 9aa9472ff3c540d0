package dto

import (
	"fmt"
	"strings"

	"coating/internal/domains/booking/model"
	"coating/shared"
	"coating/shared/constant"
	gDto "coating/shared/dto"
	"coating/shared/identity"
	gModel "coating/shared/model"
	"coating/shared/timezone"
	"coating/shared/validator"

	"github.com/google/uuid"
)

const (
	SubmitTitle             = "Đặt lịch thành công!"
	submitDescriptionFormat = "Mã đặt lịch: %s. Chúng tôi sẽ liên hệ với bạn trong vòng 24 giờ."
)

// CreateBookingRequest mirrors the public booking form. Field order is the order rules are reported in.
type CreateBookingRequest struct {
	Name        string         `json:"name"        validate:"required,max=100"`
	Company     string         `json:"company"     validate:"max=100"`
	Phone       string         `json:"phone"       validate:"required,max=20"`
	Email       string         `json:"email"       validate:"omitempty,email,max=255"`
	Service     string         `json:"service"     validate:"required"`
	Date        string         `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Time        model.TimeSlot `json:"time"        validate:"omitempty,self"`
	Location    string         `json:"location"    validate:"max=500"`
	Description string         `json:"description" validate:"max=2000"`
}

func (c *CreateBookingRequest) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Company = strings.TrimSpace(c.Company)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Service = strings.TrimSpace(c.Service)
	c.Date = strings.TrimSpace(c.Date)
	c.Time = model.TimeSlot(strings.TrimSpace(string(c.Time)))
	c.Location = strings.TrimSpace(c.Location)
	c.Description = strings.TrimSpace(c.Description)
}

func (c *CreateBookingRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"name.required":  "Vui lòng nhập họ tên",
		"name.max":       "Tên quá dài",
		"company.max":    "Tên công ty quá dài",
		"phone.required": "Vui lòng nhập số điện thoại",
		"phone.max":      "Số điện thoại không hợp lệ",
		"email.email":    "Email không hợp lệ",
		"email.max":      "Email quá dài",
		"service":        "Vui lòng chọn dịch vụ",
		"date":           "Ngày không hợp lệ",
		"time":           "Khung giờ không hợp lệ",
		"location.max":   "Địa chỉ quá dài",
		"description":    "Mô tả quá dài",
	}
}

func optional(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

// ToModel builds a pending booking for the given code. Empty optional fields are stored as NULL.
func (c *CreateBookingRequest) ToModel(bookingCode string, caller identity.Identity) (model.Booking, error) {
	booking := model.Booking{
		ID:                  uuid.NewString(),
		Code:                bookingCode,
		CustomerName:        c.Name,
		CustomerPhone:       c.Phone,
		CustomerEmail:       optional(c.Email),
		CompanyName:         optional(c.Company),
		CustomerAddress:     optional(c.Location),
		ServiceType:         c.Service,
		ProductType:         c.Service,
		Quantity:            model.DefaultQuantity,
		PreferredTime:       optional(string(c.Time)),
		SpecialRequirements: optional(c.Description),
		Status:              model.StatusPending,
		UserID:              caller.OwnerRef(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  caller.Actor(),
			ModifiedBy: caller.Actor(),
		},
	}

	if c.Date != constant.Empty {
		date, err := timezone.ParseDate(c.Date)
		if err != nil {
			return model.Booking{}, fmt.Errorf("failed to parse preferred date: %w", err)
		}

		booking.PreferredDate = &date
	}

	return booking, nil
}

type SubmitResponse struct {
	Code string `json:"code"`
}

func SubmitNotice(bookingCode string) (title, description string) {
	return SubmitTitle, fmt.Sprintf(submitDescriptionFormat, bookingCode)
}

type OptionsResponse struct {
	Services  []string         `json:"services"`
	TimeSlots []model.TimeSlot `json:"time_slots"`
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,self"`
}

func (u *UpdateStatusRequest) Normalize() {
	u.Status = model.Status(strings.ToLower(strings.TrimSpace(string(u.Status))))
}

func (u *UpdateStatusRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"status": "Trạng thái không hợp lệ",
	}
}

type BookingResponse struct {
	ID                  string       `json:"id"`
	Code                string       `json:"booking_code"`
	CustomerName        string       `json:"customer_name"`
	CustomerPhone       string       `json:"customer_phone"`
	CustomerEmail       *string      `json:"customer_email"`
	CompanyName         *string      `json:"company_name"`
	CustomerAddress     *string      `json:"customer_address"`
	ServiceType         string       `json:"service_type"`
	ProductType         string       `json:"product_type"`
	Quantity            int          `json:"quantity"`
	PreferredDate       *string      `json:"preferred_date"`
	PreferredTime       *string      `json:"preferred_time"`
	SpecialRequirements *string      `json:"special_requirements"`
	Status              model.Status `json:"status"`
	StatusLabel         string       `json:"status_label"`
	UserID              *string      `json:"user_id,omitempty"`
	AccountName         *string      `json:"account_name,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.Code = m.Code
	r.CustomerName = m.CustomerName
	r.CustomerPhone = m.CustomerPhone
	r.CustomerEmail = m.CustomerEmail
	r.CompanyName = m.CompanyName
	r.CustomerAddress = m.CustomerAddress
	r.ServiceType = m.ServiceType
	r.ProductType = m.ProductType
	r.Quantity = m.Quantity
	r.PreferredTime = m.PreferredTime
	r.SpecialRequirements = m.SpecialRequirements
	r.Status = m.Status
	r.StatusLabel = m.Status.Label()
	r.UserID = m.UserID
	r.AccountName = m.AccountName
	r.Metadata.FromModel(m.Metadata)

	r.PreferredDate = nil
	if m.PreferredDate != nil {
		date := m.PreferredDate.Format(constant.CalendarDate)
		r.PreferredDate = &date
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
