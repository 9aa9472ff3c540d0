package dto

import (
	"strings"

	"coating/internal/domains/project/model"
	"coating/shared/constant"
	gDto "coating/shared/dto"
	"coating/shared/validator"
)

const (
	UploadImageTitle = "Tải ảnh thành công"
	DeleteImageTitle = "Đã xóa ảnh"

	MessageInvalidImageURL = "Đường dẫn ảnh không hợp lệ"
)

// AllowedImageTypes are the content types accepted for project images.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

const MaxImageSizeMB = 5

type CategoryResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ProjectResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	CategoryLabel   string   `json:"category_label"`
	ImageURL        *string  `json:"image_url"`
	Tags            []string `json:"tags"`
	ClientName      *string  `json:"client_name"`
	CompletionDate  *string  `json:"completion_date"`
	ProjectDuration *string  `json:"project_duration"`
	Technologies    []string `json:"technologies"`
	Results         []string `json:"results"`
	Featured        bool     `json:"featured"`
	gDto.Metadata
}

func (r *ProjectResponse) FromModel(m model.Project) {
	r.ID = m.ID
	r.Title = m.Title
	r.Description = m.Description
	r.Content = m.Content
	r.Category = string(m.Category)
	r.CategoryLabel = m.Category.Label()
	r.ImageURL = m.ImageURL
	r.Tags = nonNil(m.Tags)
	r.ClientName = m.ClientName
	r.ProjectDuration = m.ProjectDuration
	r.Technologies = nonNil(m.Technologies)
	r.Results = nonNil(m.Results)
	r.Featured = m.Featured
	r.Metadata.FromModel(m.Metadata)

	r.CompletionDate = nil
	if m.CompletionDate != nil {
		date := m.CompletionDate.Format(constant.CalendarDate)
		r.CompletionDate = &date
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

type GetProjectsResponse struct {
	Projects   []ProjectResponse  `json:"projects"`
	Categories []CategoryResponse `json:"categories"`
}

func (r *GetProjectsResponse) FromModels(models []model.Project) {
	r.Projects = make([]ProjectResponse, len(models))
	for i, mod := range models {
		r.Projects[i].FromModel(mod)
	}

	r.Categories = make([]CategoryResponse, len(model.Categories))
	for i, category := range model.Categories {
		r.Categories[i] = CategoryResponse{Value: string(category), Label: category.Label()}
	}
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

// DeleteImageRequest names an image previously returned by the upload endpoint.
type DeleteImageRequest struct {
	URL string `json:"url" validate:"required,url,max=1000"`
}

func (r *DeleteImageRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
}

func (r *DeleteImageRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"url": MessageInvalidImageURL,
	}
}
