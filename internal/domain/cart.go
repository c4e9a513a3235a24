package domain

import "time"

type CartItem struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Price      int64       `json:"price"`
	TotalPrice int64       `json:"totalPrice"`
	Storage    int         `json:"storage"`
	Images     []ItemImage `json:"images"`
	Amount     int         `json:"amount"`
	Path       string      `json:"path"`
	Discounts  []Discount  `json:"discounts,omitempty"`
}

type ItemImage struct {
	ID    int64  `json:"id"`
	Path  string `json:"path"`
	Order int    `json:"order"`
}

// Discount carries exactly one of Number (absolute reduction) or
// Percent. The backend serializes the unused field as null.
type Discount struct {
	ID      int64     `json:"id"`
	ItemID  int64     `json:"item_id"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Number  *int64    `json:"discountNumber"`
	Percent *int64    `json:"discountPercent"`
}

// Active reports whether the discount's validity window contains now.
func (d Discount) Active(now time.Time) bool {
	return !now.Before(d.StartAt) && now.Before(d.EndAt)
}

// CartAggregate is derived from the item list, never persisted.
type CartAggregate struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
}

type Item struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Price       int64       `json:"price"`
	Storage     int         `json:"storage"`
	Description string      `json:"description,omitempty"`
	Images      []ItemImage `json:"images"`
	Discounts   []Discount  `json:"discounts,omitempty"`
}
