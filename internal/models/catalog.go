// internal/models/catalog.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Category uses human-readable string identifiers ("electronics", "home")
// matching the public URLs they appear in.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:64;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Image       string    `json:"image" gorm:"size:512"`
	CreatedAt   time.Time `json:"created_at"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// Product prices are whole currency units (CLP has no minor unit).
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;size:64"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       int64          `json:"price" gorm:"not null;check:price >= 0"`
	Image       string         `json:"image" gorm:"size:512"`
	CategoryID  string         `json:"category_id" gorm:"size:64;not null;index"`
	Shop        string         `json:"shop" gorm:"size:255"`
	Tags        pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at"`

	Category    Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Specs       []ProductSpec `json:"specs,omitempty" gorm:"foreignKey:ProductID"`
	KnastaPrice *KnastaPrice  `json:"knasta_price,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductSpec is a free-form name/value pair shown on the detail page.
type ProductSpec struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID string `json:"product_id" gorm:"size:64;not null;index"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Value     string `json:"value" gorm:"size:255;not null"`
}

// KnastaPrice is the externally sourced comparison price for a product.
// The unique index on product_id keeps at most one active record per product.
type KnastaPrice struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   string    `json:"product_id" gorm:"size:64;not null;uniqueIndex"`
	Price       int64     `json:"price" gorm:"not null;check:price >= 0"`
	URL         string    `json:"url" gorm:"size:512"`
	LastUpdated time.Time `json:"last_updated" gorm:"not null"`
}
