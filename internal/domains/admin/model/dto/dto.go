package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	bookingModel "coating/internal/domains/booking/model"
	contactModel "coating/internal/domains/contact/model"
	"coating/shared/constant"
	gDto "coating/shared/dto"
)

const (
	UpdateTitle                    = "Thành công"
	UpdateBookingStatusDescription = "Đã cập nhật trạng thái đặt lịch."
	UpdateContactStatusDescription = "Đã cập nhật trạng thái liên hệ."
	ReplyContactDescription        = "Đã gửi phản hồi."

	MessageInvalidStatus = "Trạng thái không hợp lệ"
)

// ListRequest filters an admin list by one or more comma separated statuses and,
// for contacts, by whether a reply was sent. Lists are newest first unless sort_by is given.
// Without a limit every matching record is returned.
type ListRequest struct {
	Status  string
	Replied *bool
	gDto.QueryParams
}

func (l *ListRequest) FromRequest(r *http.Request) {
	l.QueryParams.FromRequest(r, false)

	query := r.URL.Query()
	l.Status = strings.ToLower(strings.TrimSpace(query.Get(constant.RequestParamStatus)))

	if replied, err := strconv.ParseBool(query.Get(constant.RequestParamReplied)); err == nil {
		l.Replied = &replied
	}

	if l.SortBy == constant.Empty {
		l.SortBy = constant.DefaultValueSortBy
		l.SortDir = constant.DefaultValueSortDir
	}
}

// Statuses splits Status on commas, dropping blanks and repeats.
func (l *ListRequest) Statuses() []string {
	statuses := make([]string, 0, 1)

	for status := range strings.SplitSeq(l.Status, ",") {
		status = strings.TrimSpace(status)
		if status == constant.Empty || slices.Contains(statuses, status) {
			continue
		}

		statuses = append(statuses, status)
	}

	return statuses
}

type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Total  int    `json:"total"`
}

type StatsResponse struct {
	Bookings      []StatusCount `json:"bookings"`
	Contacts      []StatusCount `json:"contacts"`
	TotalBookings int           `json:"total_bookings"`
	TotalContacts int           `json:"total_contacts"`
}

// FromCounts lists every known status, including those without rows.
func (r *StatsResponse) FromCounts(bookings, contacts map[string]int) {
	r.Bookings = make([]StatusCount, 0, len(bookingModel.Statuses))
	for _, status := range bookingModel.Statuses {
		total := bookings[string(status)]
		r.Bookings = append(r.Bookings, StatusCount{Status: string(status), Label: status.Label(), Total: total})
		r.TotalBookings += total
	}

	r.Contacts = make([]StatusCount, 0, len(contactModel.Statuses))
	for _, status := range contactModel.Statuses {
		total := contacts[string(status)]
		r.Contacts = append(r.Contacts, StatusCount{Status: string(status), Label: status.Label(), Total: total})
		r.TotalContacts += total
	}
}

// StatusChange is the payload of a status changed event.
type StatusChange struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Record any    `json:"record"`
}
