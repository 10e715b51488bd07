package domain

import "time"

// ReviewStatus is the moderation state of a product review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is a customer product review awaiting or past moderation.
type Review struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	UserID    string       `json:"user_id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Enriched display fields, resolved from products and profiles.
	ProductName      string `json:"product_name,omitempty"`
	ProductThumbnail string `json:"product_thumbnail,omitempty"`
	ReviewerName     string `json:"reviewer_name,omitempty"`
	ReviewerEmail    string `json:"reviewer_email,omitempty"`
}

// WishlistItem is a single wishlist entry with its embedded product and owner.
type WishlistItem struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	ProductID string      `json:"product_id"`
	CreatedAt time.Time   `json:"created_at"`
	Product   *ProductRef `json:"product,omitempty"`
	UserEmail string      `json:"user_email,omitempty"`
	UserName  string      `json:"user_name,omitempty"`
}

// Pincode is a serviceable delivery area. The pincode value is always exactly
// six digits.
type Pincode struct {
	ID        string    `json:"id"`
	Pincode   string    `json:"pincode"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
