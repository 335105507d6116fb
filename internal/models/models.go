package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser    = "user"
	RoleSeller  = "seller"
	RoleCharity = "charity"
	RoleAdmin   = "admin"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
	OrderStatusFulfilled = "fulfilled"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	FirstName    string `gorm:"not null"                 json:"first_name"`
	LastName     string `gorm:"not null"                 json:"last_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

// UserRole keeps the business role out of the identity row, one row per user.
type UserRole struct {
	ID     uint   `gorm:"primaryKey"         json:"id"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Role   string `gorm:"not null"           json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// PriceCents is fixed-point money in minor units.
type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"   json:"id"`
	SellerID    uint   `gorm:"index;not null"             json:"seller_id"`
	Name        string `gorm:"not null"                   json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `gorm:"not null"                   json:"price_cents"`
	Stock       int64  `gorm:"not null;check:stock >= 0"  json:"stock"`
	ImagePath   string `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
}

type Cart struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID        uint  `gorm:"primaryKey"                                      json:"id"`
	CartID    uint  `gorm:"not null;uniqueIndex:idx_cart_product"           json:"cart_id"`
	ProductID uint  `gorm:"not null;uniqueIndex:idx_cart_product"           json:"product_id"`
	Quantity  int64 `gorm:"not null;check:quantity > 0"                     json:"quantity"`
}

type Order struct {
	ID         uint      `gorm:"primaryKey"           json:"id"`
	PublicID   uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"public_id"`
	UserID     uint      `gorm:"index;not null"       json:"user_id"`
	FullName   string    `gorm:"not null"             json:"full_name"`
	Phone      string    `gorm:"not null"             json:"phone"`
	Address    string    `gorm:"not null"             json:"address"`
	City       string    `gorm:"not null"             json:"city"`
	PostalCode string    `gorm:"not null"             json:"postal_code"`
	TotalCents int64     `gorm:"not null"             json:"total_cents"`
	Status     string    `gorm:"not null"             json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderItem freezes the unit price at checkout time; later product edits
// never touch historical orders.
type OrderItem struct {
	ID         uint  `gorm:"primaryKey"     json:"id"`
	OrderID    uint  `gorm:"index;not null" json:"order_id"`
	ProductID  uint  `gorm:"not null"       json:"product_id"`
	PriceCents int64 `gorm:"not null"       json:"price_cents"`
	Quantity   int64 `gorm:"not null"       json:"quantity"`
}

// SellerProfile rows are never hard-deleted; rejection only flags them so the
// user can re-apply and admins keep an audit trail.
type SellerProfile struct {
	ID              uint   `gorm:"primaryKey"           json:"id"`
	UserID          uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessName    string `gorm:"not null"             json:"business_name"`
	TaxID           string `gorm:"not null"             json:"tax_id"`
	Category        string `json:"category"`
	IsApproved      bool   `gorm:"default:false"        json:"is_approved"`
	IsRejected      bool   `gorm:"default:false"        json:"is_rejected"`
	RejectionReason string `json:"rejection_reason"`
	CreatedAt       time.Time `json:"created_at"`
}

type CharityCause struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null"   json:"title"`
	Description string `json:"description"`
	TargetCents int64  `gorm:"not null"   json:"target_cents"`
	RaisedCents int64  `gorm:"not null;default:0" json:"raised_cents"`
}

type Donation struct {
	ID          uint      `gorm:"primaryKey"     json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	CauseID     uint      `gorm:"index;not null" json:"cause_id"`
	AmountCents int64     `gorm:"not null"       json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DonorTypeIndividual   = "individual"
	DonorTypeOrganization = "organization"
)

type DonorApplication struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	DonorType string    `gorm:"not null"       json:"donor_type"`
	Name      string    `gorm:"not null"       json:"name"`
	Email     string    `gorm:"not null"       json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Reason    string    `json:"reason"`
	PhotoPath string    `json:"photo_path"`
	Approved  bool      `gorm:"default:false"  json:"approved"`
	Rejected  bool      `gorm:"default:false"  json:"rejected"`
	CreatedAt time.Time `json:"created_at"`
}

type CharityApplication struct {
	ID           uint      `gorm:"primaryKey"    json:"id"`
	Name         string    `gorm:"not null"      json:"name"`
	Email        string    `gorm:"not null"      json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Description  string    `json:"description"`
	PhotoPath    string    `json:"photo_path"`
	DocumentPath string    `json:"document_path"`
	Approved     bool      `gorm:"default:false" json:"approved"`
	Rejected     bool      `gorm:"default:false" json:"rejected"`
	CreatedAt    time.Time `json:"created_at"`
}
