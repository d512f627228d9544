package models

import (
	"time"
)

// Commission is a single commissioned-work order. The store assigns the ID at
// insert time; CreatedAt never changes after that.
type Commission struct {
	ID              string    `json:"id"`
	ArtistID        string    `json:"artist_id"`
	ClientName      string    `json:"client_name"`
	Contact         string    `json:"contact,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Type            string    `json:"type"` // product category label
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdated     time.Time `json:"last_updated"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	ImageURLs       []string  `json:"image_urls,omitempty"` // client reference images
	Notes           string    `json:"notes,omitempty"`
	Source          string    `json:"source,omitempty"` // "nocy" or "general"
	CurrentProgress string    `json:"current_progress,omitempty"`
	ProgressImages  []string  `json:"progress_image_urls,omitempty"`
}

// CommissionPatch enumerates the fields an update is allowed to touch.
// ID and CreatedAt are deliberately absent; LastUpdated is stamped by the
// store layer, never by the caller. A nil pointer means "leave as is".
type CommissionPatch struct {
	ClientName      *string
	Contact         *string
	Title           *string
	Description     *string
	Type            *string
	Price           *float64
	Status          *string
	ThumbnailURL    *string
	ImageURLs       *[]string
	Notes           *string
	Source          *string
	CurrentProgress *string
	ProgressImages  *[]string
}

// IsZero reports whether the patch changes nothing.
func (p CommissionPatch) IsZero() bool {
	return p.ClientName == nil && p.Contact == nil && p.Title == nil &&
		p.Description == nil && p.Type == nil && p.Price == nil &&
		p.Status == nil && p.ThumbnailURL == nil && p.ImageURLs == nil &&
		p.Notes == nil && p.Source == nil && p.CurrentProgress == nil &&
		p.ProgressImages == nil
}

// ShowcaseItem is a standalone gallery image, independent of any commission.
type ShowcaseItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Addon is an optional named price delta on a product.
type Addon struct {
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
}

type Product struct {
	Name   string  `yaml:"name" json:"name"`
	Price  float64 `yaml:"price" json:"price"`
	Image  string  `yaml:"image" json:"img"`
	Addons []Addon `yaml:"addons,omitempty" json:"addons,omitempty"`
}

// ProductOptions maps a category label to its ordered product list.
type ProductOptions map[string][]Product

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`     // bcrypt hash
	Scope    string `json:"scope"` // which storefront this admin manages
}
