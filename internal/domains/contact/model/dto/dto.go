package dto

import (
	"strings"

	"coating/internal/domains/contact/model"
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
	SubmitTitle       = "Gửi thông tin thành công!"
	SubmitDescription = "Chúng tôi sẽ phản hồi trong vòng 24 giờ."
)

// CreateContactRequest mirrors the public contact form. Field order is the order rules are reported in.
type CreateContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"max=20"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (c *CreateContactRequest) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
}

func (c *CreateContactRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"name.required":    "Vui lòng nhập họ tên",
		"name.max":         "Tên quá dài",
		"email.required":   "Email không hợp lệ",
		"email.email":      "Email không hợp lệ",
		"email.max":        "Email quá dài",
		"phone":            "Số điện thoại không hợp lệ",
		"subject":          "Tiêu đề quá dài",
		"message.required": "Vui lòng nhập nội dung",
		"message.max":      "Nội dung quá dài",
	}
}

func optional(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}

func (c *CreateContactRequest) ToModel(caller identity.Identity) model.Contact {
	return model.Contact{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   optional(c.Phone),
		Subject: optional(c.Subject),
		Message: c.Message,
		Status:  model.StatusNew,
		UserID:  caller.OwnerRef(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  caller.Actor(),
			ModifiedBy: caller.Actor(),
		},
	}
}

type SubmitResponse struct {
	ID string `json:"id"`
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

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=2000"`
}

func (r *ReplyRequest) Normalize() {
	r.Reply = strings.TrimSpace(r.Reply)
}

func (r *ReplyRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"reply.required": "Vui lòng nhập nội dung phản hồi",
		"reply.max":      "Nội dung quá dài",
	}
}

type ContactResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       *string      `json:"phone"`
	Subject     *string      `json:"subject"`
	Message     string       `json:"message"`
	Status      model.Status `json:"status"`
	StatusLabel string       `json:"status_label"`
	AdminReply  *string      `json:"admin_reply"`
	RepliedAt   *string      `json:"replied_at"`
	UserID      *string      `json:"user_id,omitempty"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(m model.Contact) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Phone = m.Phone
	r.Subject = m.Subject
	r.Message = m.Message
	r.Status = m.Status
	r.StatusLabel = m.Status.Label()
	r.AdminReply = m.AdminReply
	r.UserID = m.UserID
	r.Metadata.FromModel(m.Metadata)

	r.RepliedAt = nil
	if m.RepliedAt != nil {
		repliedAt := timezone.Format(*m.RepliedAt, constant.DateFormat)
		r.RepliedAt = &repliedAt
	}
}

type GetContactsResponse struct {
	Contacts  []ContactResponse `json:"contacts"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Contacts = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Contacts[i].FromModel(mod)
	}
}
