// Package transport holds the typed request/response bodies for every
// endpoint; handlers bind and validate these before anything reaches the
// domain services.
package transport

import (
	"github.com/kindmarket/kindmarket/internal/models"
	"github.com/kindmarket/kindmarket/internal/payment"
)

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	AccountType string `json:"account_type"` // "user" (default) or "charity"
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID uint  `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

const (
	CartActionIncrease = "increase"
	CartActionDecrease = "decrease"
)

// UpdateCartItemRequest carries either an action or an explicit quantity.
type UpdateCartItemRequest struct {
	Action   string `json:"action,omitempty"`
	Quantity *int64 `json:"quantity,omitempty"`
}

type CartLine struct {
	ItemID        uint   `json:"item_id"`
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int64  `json:"quantity"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

type CartView struct {
	Lines      []CartLine `json:"lines"`
	TotalCents int64      `json:"total_cents"`
}

type CheckoutRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type CheckoutResponse struct {
	Order          *models.Order      `json:"order"`
	Items          []models.OrderItem `json:"items"`
	Payment        *payment.Intent    `json:"payment"`
	PaymentPending bool               `json:"payment_pending"`
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int64  `json:"stock"`
	ImagePath   string `json:"image_path"`
}

type PatchProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Stock       *int64  `json:"stock,omitempty"`
	ImagePath   *string `json:"image_path,omitempty"`
}

type SellerRegisterRequest struct {
	BusinessName string `json:"business_name"`
	TaxID        string `json:"tax_id"`
	Category     string `json:"category"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type DonateRequest struct {
	CauseID     uint  `json:"cause_id"`
	AmountCents int64 `json:"amount_cents"`
}

type DonorApplicationRequest struct {
	DonorType string `json:"donor_type"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Reason    string `json:"reason"`
	PhotoPath string `json:"photo_path"`
}

type CharityApplicationRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	PhotoPath    string `json:"photo_path"`
	DocumentPath string `json:"document_path"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type CauseProgress struct {
	Cause    models.CharityCause `json:"cause"`
	Progress float64             `json:"progress"`
}
