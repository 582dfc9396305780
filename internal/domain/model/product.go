package model

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// ProductCategory classifies purchasable items.
type ProductCategory string

const (
	CategoryScript ProductCategory = "script"
	CategoryCourse ProductCategory = "course"
	CategoryBundle ProductCategory = "bundle"
)

// Valid reports whether the category is one of the known values.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryScript, CategoryCourse, CategoryBundle:
		return true
	}
	return false
}

// ProductStatus describes catalog visibility. Only published products are orderable.
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
	ProductStatusArchived  ProductStatus = "archived"
)

// Valid reports whether the status is one of the known values.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

// Product is a purchasable catalog item.
type Product struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Category    ProductCategory
	Price       float64
	Status      ProductStatus

	Sales     int
	Revenue   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a product name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// RoundPrice normalizes a monetary amount to two decimal places.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
