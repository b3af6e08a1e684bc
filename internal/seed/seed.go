package seed

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/foodhub75/Food-App/internal/hash"
	"github.com/foodhub75/Food-App/internal/models"
)

const (
	AdminID    = "admin-1"
	AdminEmail = "admin@quickbite.ai"
	AdminName  = "Restaurant Admin"
)

var menuItems = []models.MenuItem{
	{
		Name:        "Supreme Beef Burger",
		Price:       450,
		Category:    models.CategoryBurger,
		Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&w=400&h=300",
		Description: "Juicy double patty with caramelized onions and secret sauce.",
		Rating:      4.8,
	},
	{
		Name:        "Pepperoni Feast Pizza",
		Price:       1200,
		Category:    models.CategoryPizza,
		Image:       "https://images.unsplash.com/photo-1628840042765-356cda07504e?auto=format&fit=crop&w=400&h=300",
		Description: "Loaded with premium pepperoni and extra mozzarella.",
		Rating:      4.9,
	},
	{
		Name:        "Spicy Chicken Biryani",
		Price:       300,
		Category:    models.CategoryAsian,
		Image:       "https://images.unsplash.com/photo-1589302168068-964664d93dc0?auto=format&fit=crop&w=400&h=300",
		Description: "Traditional aromatic rice cooked with tender spicy chicken.",
		Rating:      4.7,
	},
	{
		Name:        "Classic Margherita",
		Price:       900,
		Category:    models.CategoryPizza,
		Image:       "https://images.unsplash.com/photo-1574071318508-1cdbad80ad50?auto=format&fit=crop&w=400&h=300",
		Description: "The Italian classic with fresh basil and tomatoes.",
		Rating:      4.5,
	},
	{
		Name:        "Truffle Mushroom Burger",
		Price:       550,
		Category:    models.CategoryBurger,
		Image:       "https://images.unsplash.com/photo-1594212699903-ec8a3eca50f5?auto=format&fit=crop&w=400&h=300",
		Description: "Gourmet mushroom burger with real truffle oil.",
		Rating:      4.9,
	},
	{
		Name:        "Caramel Macchiato",
		Price:       350,
		Category:    models.CategoryDrinks,
		Image:       "https://images.unsplash.com/photo-1485808191679-5f86510681a2?auto=format&fit=crop&w=400&h=300",
		Description: "Freshly brewed coffee with sweet vanilla and caramel.",
		Rating:      4.6,
	},
	{
		Name:        "Molten Lava Cake",
		Price:       450,
		Category:    models.CategoryDessert,
		Image:       "https://images.unsplash.com/photo-1624353365286-3f8d62daad51?auto=format&fit=crop&w=400&h=300",
		Description: "Warm chocolate cake with a gooey center served with vanilla ice cream.",
		Rating:      5.0,
	},
	{
		Name:        "Prawn Pad Thai",
		Price:       850,
		Category:    models.CategoryAsian,
		Image:       "https://images.unsplash.com/photo-1559339352-11d035aa65de?auto=format&fit=crop&w=400&h=300",
		Description: "Classic Thai stir-fry noodles with shrimp, tofu, and sprouts.",
		Rating:      4.8,
	},
}

var reviews = []models.Review{
	{
		Name:     "Sara J.",
		Rating:   5,
		Comment:  "The AI recommendations are scary accurate! Best Burger I have ever had.",
		Avatar:   "https://i.pravatar.cc/150?u=sara",
		Location: "Karachi",
	},
	{
		Name:     "Daniyal K.",
		Rating:   5,
		Comment:  "Blazing fast delivery. The rider map feature kept me updated every minute.",
		Avatar:   "https://i.pravatar.cc/150?u=daniyal",
		Location: "Lahore",
	},
	{
		Name:     "Zoe M.",
		Rating:   4,
		Comment:  "Love the variety. The Asian selection is authentic and fresh!",
		Avatar:   "https://i.pravatar.cc/150?u=zoe",
		Location: "Islamabad",
	},
}

// Run populates the freshly migrated store: the menu, the customer reviews
// shown on the landing page, and the single seed admin account.
func Run(db *gorm.DB, adminPassword string) error {
	for _, item := range menuItems {
		item := item
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
	}

	for _, r := range reviews {
		r := r
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("seed reviews: %w", err)
		}
	}

	passwordHash, err := hash.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := models.User{
		ID:           AdminID,
		Name:         AdminName,
		Email:        AdminEmail,
		Avatar:       "https://i.pravatar.cc/150?u=admin",
		Role:         models.RoleAdmin,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
