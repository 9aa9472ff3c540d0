package model

import (
	"errors"
	"time"

	"coating/shared/model"
	"coating/shared/status"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID         = "id"
	FieldStatus     = "status"
	FieldUserID     = "user_id"
	FieldAdminReply = "admin_reply"
	FieldRepliedAt  = "replied_at"

	MessageNotFound = "Không tìm thấy liên hệ"
)

var ErrUnknownStatus = errors.New("unknown contact status")

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

var Statuses = []Status{StatusNew, StatusInProgress, StatusResolved}

var statusLabels = status.Labels{
	string(StatusNew):        "Mới",
	string(StatusInProgress): "Đang xử lý",
	string(StatusResolved):   "Đã giải quyết",
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

type Contact struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	Email      string     `db:"email"`
	Phone      *string    `db:"phone"`
	Subject    *string    `db:"subject"`
	Message    string     `db:"message"`
	Status     Status     `db:"status"`
	AdminReply *string    `db:"admin_reply"`
	RepliedAt  *time.Time `db:"replied_at"`
	UserID     *string    `db:"user_id"`
	model.Metadata
}

func (c Contact) Owner() *string {
	return c.UserID
}
