package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/modules/auth"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/subscription"
	"foodgram/internal/pkg/images"
	jwtsvc "foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)
	followRepo := repository.NewFollowRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	imageStore := images.NewStore(cfg.MediaDir, cfg.StaticBase)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogHandler := catalog.NewHandler(tagRepo, ingredientRepo)

	recipeService := recipe.NewService(
		recipeRepo,
		ingredientRepo,
		tagRepo,
		favoriteRepo,
		cartRepo,
		followRepo,
		imageStore,
		cfg.MinCookingTime,
		cfg.MinIngredientAmount,
	)
	recipeHandler := recipe.NewHandler(recipeService, cfg.MaxPageLimit)

	subscriptionService := subscription.NewService(followRepo, userRepo, recipeRepo)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	r := gin.Default()
	r.Static(cfg.StaticBase, cfg.MediaDir)

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)

		// reads are available to anonymous callers too
		public := api.Group("/")
		public.Use(middleware.OptionalAuth(j))

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth(j))

		recipeHandler.RegisterRoutes(public, protected)
		subscriptionHandler.RegisterRoutes(protected)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
