package models

import (
	"time"
)

const (
	CategoryAll     = "All"
	CategoryBurger  = "Burger"
	CategoryPizza   = "Pizza"
	CategoryAsian   = "Asian"
	CategoryDessert = "Dessert"
	CategoryDrinks  = "Drinks"
)

var Categories = []string{CategoryBurger, CategoryPizza, CategoryAsian, CategoryDessert, CategoryDrinks}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

const (
	PaymentCard   = "card"
	PaymentWallet = "wallet"
	PaymentCOD    = "cod"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentWallet, PaymentCOD:
		return true
	}
	return false
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type MenuItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Price       int64   `gorm:"not null"                  json:"price"`
	Category    string  `gorm:"not null;index"            json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      float64 `gorm:"default:5"                 json:"rating"`
}

type User struct {
	ID           string    `gorm:"primaryKey"      json:"id"`
	Name         string    `gorm:"not null"        json:"name"`
	Email        string    `gorm:"index;not null"  json:"email"`
	Avatar       string    `json:"avatar"`
	Role         string    `gorm:"not null"        json:"role"`
	PasswordHash string    `gorm:"not null"        json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"       json:"id"`
	Token     string `gorm:"unique;not null"  json:"token"`
	UserID    string `gorm:"index;not null"   json:"user_id"`
	ExpiresAt int64  `gorm:"not null"         json:"expires_at"`
	Revoked   bool   `gorm:"default:false"    json:"revoked"`
}

// CartItem carries a full copy of the menu item it was added from, so that
// deleting a catalog entry leaves existing carts intact.
type CartItem struct {
	ID          uint    `gorm:"primaryKey"                  json:"id"`
	UserID      string  `gorm:"index;not null"              json:"user_id"`
	MenuItemID  uint    `gorm:"not null"                    json:"menu_item_id"`
	Name        string  `gorm:"not null"                    json:"name"`
	Price       int64   `gorm:"not null"                    json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Quantity    uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
}

type Order struct {
	ID            string      `gorm:"primaryKey"      json:"id"`
	UserID        string      `gorm:"index;not null"  json:"user_id"`
	UserName      string      `json:"user_name"`
	Total         int64       `gorm:"not null"        json:"total"`
	Status        string      `gorm:"not null;index"  json:"status"`
	PaymentMethod string      `gorm:"not null"        json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is frozen at checkout. Later catalog or cart changes never reach it.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey"      json:"id"`
	OrderID     string  `gorm:"index;not null"  json:"order_id"`
	MenuItemID  uint    `json:"menu_item_id"`
	Name        string  `gorm:"not null"        json:"name"`
	Price       int64   `gorm:"not null"        json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Quantity    uint    `gorm:"not null"        json:"quantity"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null"   json:"name"`
	Rating    int       `gorm:"not null"   json:"rating"`
	Comment   string    `json:"comment"`
	Avatar    string    `json:"avatar"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}
