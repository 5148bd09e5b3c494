package router

import (
	search_repositories "tax-backoffice-backend/search/repositories"
	"tax-backoffice-backend/users/controllers"
	"tax-backoffice-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InitRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	searchRepo search_repositories.SearchRepositoryInterface,
	db *gorm.DB,
) {
	userController := &controllers.UserController{
		UserRepo:   userRepo,
		DB:         db,
		SearchRepo: searchRepo,
	}

	userRoutes := app.Group("/api/v1/users")
	{
		userRoutes.Get("/", userController.GetUsersController)
		userRoutes.Post("/", userController.UpsertUserController)
	}
}
