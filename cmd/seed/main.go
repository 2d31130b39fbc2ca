// Package main seeds a sample catalog for local development.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/profile"
	"foodfinder/internal/infrastructure/storage/postgres"
	"foodfinder/internal/infrastructure/storage/postgres/catalog_repo"
	"foodfinder/internal/infrastructure/storage/postgres/profile_repo"
	"foodfinder/pkg/logger"
)

type dish struct {
	name      string
	recipe    string
	allergens []string
}

type sample struct {
	name    string
	cuisine string
	price   string
	rating  float64
	lat     float64
	lon     float64
	menus   map[string][]dish
}

var samples = []sample{
	{
		name: "Bella Napoli", cuisine: "Italian", price: "$$", rating: 4.4, lat: 40.7359, lon: -73.9911,
		menus: map[string][]dish{
			"lunch": {
				{"Caprese Salad", "tomato, mozzarella, basil", []string{"dairy"}},
				{"Margherita Pizza", "tomato, mozzarella, basil, wheat dough", []string{"gluten", "dairy"}},
			},
			"dinner": {
				{"Pasta Carbonara", "spaghetti, egg, pecorino, guanciale", []string{"gluten", "dairy", "egg"}},
				{"Pizza Diavola", "tomato, mozzarella, spicy salami", []string{"gluten", "dairy"}},
				{"Tiramisu", "mascarpone, espresso, ladyfingers", []string{"gluten", "dairy", "egg"}},
			},
		},
	},
	{
		name: "Tokyo Garden", cuisine: "Japanese", price: "$$$", rating: 4.7, lat: 40.7304, lon: -73.9871,
		menus: map[string][]dish{
			"lunch": {
				{"Salmon Sushi Set", "salmon, rice, nori", []string{"fish"}},
				{"Veggie Ramen", "wheat noodles, miso broth, tofu", []string{"gluten", "soy"}},
			},
			"dinner": {
				{"Tonkotsu Ramen", "wheat noodles, pork broth, egg", []string{"gluten", "egg"}},
				{"Tuna Sashimi", "tuna", []string{"fish"}},
			},
		},
	},
	{
		name: "Green Leaf", cuisine: "Vegetarian", price: "$", rating: 4.1, lat: 40.7282, lon: -74.0021,
		menus: map[string][]dish{
			"breakfast": {
				{"Oat Pancakes", "oats, almond milk, maple syrup", []string{"gluten", "nuts"}},
				{"Fruit Bowl", "seasonal fruit", nil},
			},
			"lunch": {
				{"Quinoa Salad", "quinoa, avocado, chickpeas", nil},
				{"Pizza Bianca", "wheat dough, olive oil, rosemary", []string{"gluten"}},
			},
		},
	},
	{
		name: "El Fuego", cuisine: "Mexican", price: "$$", rating: 4.3, lat: 40.7420, lon: -74.0048,
		menus: map[string][]dish{
			"lunch": {
				{"Chicken Tacos", "corn tortilla, chicken, salsa", nil},
				{"Queso Fundido", "melted cheese, chorizo", []string{"dairy"}},
			},
			"dinner": {
				{"Shrimp Fajitas", "shrimp, peppers, tortilla", []string{"shellfish", "gluten"}},
				{"Churros", "fried dough, cinnamon sugar", []string{"gluten", "egg"}},
			},
		},
	},
}

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := catalog_repo.NewRepository(txm)
	admin := catalog.NewAdminService(repo, txm, nil)

	for _, s := range samples {
		r := catalog.NewRestaurant(s.name, s.cuisine, s.price, decimal.NewFromFloat(s.rating), s.lat, s.lon)
		if err := admin.CreateRestaurant(ctx, r); err != nil {
			log.Warnw("skipping restaurant", "name", s.name, "error", err)
			continue
		}
		for mealType, dishes := range s.menus {
			m := catalog.NewMenu(r.ID, mealType)
			if err := admin.CreateMenu(ctx, m); err != nil {
				log.Fatalw("failed to create menu", "restaurant", s.name, "mealType", mealType, "error", err)
			}
			for _, d := range dishes {
				item := catalog.NewMenuItem(m.ID, d.name, d.recipe, d.allergens)
				if err := admin.CreateItem(ctx, item); err != nil {
					log.Fatalw("failed to create item", "item", d.name, "error", err)
				}
			}
		}
		log.Infow("seeded restaurant", "name", s.name)
	}

	if username := os.Getenv("SEED_ADMIN_USERNAME"); username != "" {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			log.Fatal("SEED_ADMIN_PASSWORD is required with SEED_ADMIN_USERNAME")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalw("failed to hash admin password", "error", err)
		}
		admin := profile.NewUser(username, string(hash))
		admin.IsAdmin = true
		if err := profile_repo.NewRepository(txm).Create(ctx, admin); err != nil {
			log.Warnw("admin user not created", "error", err)
		} else {
			log.Infow("seeded admin user", "username", username)
		}
	}

	log.Info("seed complete")
}
