package model

import "time"

// DefaultQuantity is the quantity of an item added without one.
const DefaultQuantity = 1

// Item is a single inventory record.
type Item struct {
	ID           int64
	Name         string
	Description  string
	Location     string
	Quantity     int64
	DateAdded    time.Time
	LastModified time.Time
}

// ItemUpdate holds the mutable columns of an item. A nil field is left as is.
type ItemUpdate struct {
	Name        *string
	Description *string
	Location    *string
	Quantity    *int64
}

// Empty reports whether the update changes nothing.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Location == nil && u.Quantity == nil
}
