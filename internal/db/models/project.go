package models

import (
	"gorm.io/gorm"
)

// ProjectStatus is the publication state of a project.
type ProjectStatus string

const (
	// ProjectStatusDraft projects are only visible in the admin area.
	ProjectStatusDraft ProjectStatus = "draft"
	// ProjectStatusPublished projects are listed on the public site.
	ProjectStatusPublished ProjectStatus = "published"
)

// Project is a portfolio entry.
type Project struct {
	// ID is the unique identifier of the project.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the display name.
	Title string `gorm:"size:255;not null" json:"title"`
	// Slug addresses the project on the public site. Unique across all projects.
	Slug string `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	// Description is the short summary shown on cards.
	Description string `gorm:"type:text;not null" json:"description"`
	// Content is the optional long form body in Markdown.
	Content *string `gorm:"type:text" json:"content"`
	// ImageURL, LiveURL and GithubURL are optional links.
	ImageURL  *string `gorm:"size:2048" json:"imageUrl"`
	LiveURL   *string `gorm:"size:2048" json:"liveUrl"`
	GithubURL *string `gorm:"size:2048" json:"githubUrl"`
	// Technologies keeps insertion order and duplicates. Stored as JSON text.
	Technologies []string `gorm:"type:text;not null;serializer:json" json:"technologies"`
	// Featured projects are shown on the home page.
	Featured bool `gorm:"not null;default:false" json:"featured"`
	// Status is draft or published.
	Status ProjectStatus `gorm:"type:varchar(20);not null;default:draft;index" json:"status"`
	// Order sorts published and featured lists, highest first.
	Order int `gorm:"column:order;not null;default:0" json:"order"`
	// CreatedAt and UpdatedAt are epoch milliseconds managed by gorm.
	CreatedAt int64 `gorm:"autoCreateTime:milli;index" json:"createdAt"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli" json:"updatedAt"`
}

// TableName specifies the database table name for the Project model.
func (Project) TableName() string {
	return "projects"
}

// BeforeSave normalizes empty values before every insert and update.
func (p *Project) BeforeSave(*gorm.DB) error {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}

	if p.Status == "" {
		p.Status = ProjectStatusDraft
	}

	return nil
}

// Published reports whether the project is visible on the public site.
func (p *Project) Published() bool {
	return p.Status == ProjectStatusPublished
}
