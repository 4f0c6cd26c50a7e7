package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type ingredientRow struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "путь к фикстуре ингредиентов")
	withUsers := flag.Bool("users", true, "создать демо-пользователей")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()

	// ================== INGREDIENTS ==================
	log.Println("Loading ingredients from", *ingredientsPath)
	raw, err := os.ReadFile(*ingredientsPath)
	if err != nil {
		log.Fatal("cannot read ingredients file:", err)
	}
	var rows []ingredientRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Fatal("cannot parse ingredients file:", err)
	}

	ingredientRepo := repository.NewIngredientRepository(db)
	created, skipped := 0, 0
	for _, row := range rows {
		ing := domain.Ingredient{Name: row.Name, MeasurementUnit: row.MeasurementUnit}
		err := ingredientRepo.Create(ctx, &ing)
		switch {
		case err == nil:
			created++
		case errors.Is(err, repository.ErrIngredientExists):
			skipped++
		default:
			log.Fatal("ingredient insert failed:", err)
		}
	}
	log.Printf("Ingredients: %d created, %d already present", created, skipped)

	// ================== TAGS ==================
	log.Println("Creating tags...")
	tagRepo := repository.NewTagRepository(db)
	tags := []domain.Tag{
		{Name: "Завтрак", Color: domain.TagColorOrange, Slug: "breakfast"},
		{Name: "Обед", Color: domain.TagColorGreen, Slug: "lunch"},
		{Name: "Ужин", Color: domain.TagColorPurple, Slug: "dinner"},
		{Name: "Десерт", Color: domain.TagColorYellow, Slug: "dessert"},
		{Name: "Напитки", Color: domain.TagColorBlue, Slug: "drinks"},
	}
	for _, tag := range tags {
		tag := tag
		err := tagRepo.Create(ctx, &tag)
		switch {
		case err == nil:
			log.Println("Tag created:", tag.Slug)
		case errors.Is(err, repository.ErrTagExists):
			log.Println("Tag already present:", tag.Slug)
		default:
			log.Fatal("tag insert failed:", err)
		}
	}

	if !*withUsers {
		return
	}

	// ================== USERS ==================
	log.Println("Creating demo users...")
	userRepo := repository.NewUserRepository(db)
	demo := []struct {
		email, username, first, last, password string
	}{
		{"chef@foodgram.local", "chef", "Иван", "Поваров", "chef12345"},
		{"guest@foodgram.local", "guest", "Анна", "Гостева", "guest12345"},
	}
	for _, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		user := domain.User{
			Email:        d.email,
			Username:     d.username,
			FirstName:    d.first,
			LastName:     d.last,
			PasswordHash: string(hash),
		}
		err = userRepo.Create(ctx, &user)
		switch {
		case err == nil:
			log.Printf("User created: %s / %s", d.email, d.password)
		case errors.Is(err, repository.ErrUserExists):
			log.Println("User already present:", d.email)
		default:
			log.Fatal("user insert failed:", err)
		}
	}

	log.Println("Seed complete")
}
