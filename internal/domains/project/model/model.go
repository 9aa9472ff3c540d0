package model

import (
	"time"

	"coating/shared/model"
	"coating/shared/status"

	"github.com/lib/pq"
)

const (
	TableName  = "projects"
	EntityName = "project"

	FieldID        = "id"
	FieldCategory  = "category"
	FieldFeatured  = "featured"
	FieldActive    = "active"
	FieldCreatedAt = "created_at"

	// CategoryAll disables the category filter.
	CategoryAll = "all"

	MessageNotFound = "Không tìm thấy dự án"
)

type Category string

const (
	CategoryIndustrial     Category = "industrial"
	CategoryInfrastructure Category = "infrastructure"
	CategoryCommercial     Category = "commercial"
	CategoryMarine         Category = "marine"
	CategoryResidential    Category = "residential"
)

var Categories = []Category{
	CategoryIndustrial,
	CategoryInfrastructure,
	CategoryCommercial,
	CategoryMarine,
	CategoryResidential,
}

var categoryLabels = status.Labels{
	string(CategoryIndustrial):     "Công nghiệp",
	string(CategoryInfrastructure): "Hạ tầng",
	string(CategoryCommercial):     "Thương mại",
	string(CategoryMarine):         "Hàng hải",
	string(CategoryResidential):    "Dân dụng",
}

func (c Category) Label() string {
	return categoryLabels.Label(string(c))
}

func (c Category) Known() bool {
	return categoryLabels.Has(string(c))
}

type Project struct {
	ID              string         `db:"id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Content         string         `db:"content"`
	Category        Category       `db:"category"`
	ImageURL        *string        `db:"image_url"`
	Tags            pq.StringArray `db:"tags"`
	ClientName      *string        `db:"client_name"`
	CompletionDate  *time.Time     `db:"completion_date"`
	ProjectDuration *string        `db:"project_duration"`
	Technologies    pq.StringArray `db:"technologies"`
	Results         pq.StringArray `db:"results"`
	Featured        bool           `db:"featured"`
	Active          bool           `db:"active"`
	model.Metadata
}
