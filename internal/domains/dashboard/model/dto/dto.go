package dto

import (
	bookingModel "coating/internal/domains/booking/model"
	bookingDto "coating/internal/domains/booking/model/dto"
	contactModel "coating/internal/domains/contact/model"
	contactDto "coating/internal/domains/contact/model/dto"
)

const (
	DeleteTitle              = "Xóa thành công"
	DeleteBookingDescription = "Đã xóa lịch đặt"
	DeleteContactDescription = "Đã xóa tin nhắn liên hệ"
)

// OverviewResponse lists the caller's own records, newest first.
type OverviewResponse struct {
	Bookings []bookingDto.BookingResponse `json:"bookings"`
	Contacts []contactDto.ContactResponse `json:"contacts"`
}

func (r *OverviewResponse) FromModels(bookings []bookingModel.Booking, contacts []contactModel.Contact) {
	r.Bookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking)
	}

	r.Contacts = make([]contactDto.ContactResponse, len(contacts))
	for i, contact := range contacts {
		r.Contacts[i].FromModel(contact)
	}
}
