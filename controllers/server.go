package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"glamapi/models"
	"glamapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		// Optionally, you could return the error to give each route more control over the status code
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	db *gorm.DB,
	googleService services.GoogleServiceProvider,
	awsService services.AWSServiceProvider,
	firebaseApp *firebase.App,
	asynqClient *asynq.Client,
	urlCache services.URLCacheServiceProvider,
) *echo.Echo {

	fmt.Println(firebaseApp, "Firebase app")
	err := awsService.InitPresignClient(context.Background())
	if err != nil {
		log.Fatal("Failed to initialize AWS provider: S3")
	}

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("platform", models.ValidatePlatform)
	v.RegisterValidation("category", models.ValidateCategory)
	v.RegisterValidation("season", models.ValidateSeason)
	v.RegisterValidation("mood", models.ValidateMood)
	v.RegisterValidation("occasion", models.ValidateOccasion)
	e.Validator = &CustomValidator{validator: v}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__asynqclient", asynqClient)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	authGroup := e.Group("auth")

	authController := AuthController{Google: googleService, FirebaseApp: firebaseApp}
	authController.AuthRoutes(authGroup)

	apiGroup := e.Group("api", echojwt.JWT([]byte(os.Getenv("JWT_SECRET"))))
	apiGroup.Use(UserMiddleware)

	profileController := ProfileController{AWSService: awsService}
	profileGroup := apiGroup.Group("/profile")
	profileController.ProfileRoutes(profileGroup)

	wardrobeController := WardrobeController{AWSService: awsService, URLCache: urlCache}
	wardrobeGroup := apiGroup.Group("/wardrobe")
	wardrobeController.WardrobeRoutes(wardrobeGroup)

	stylistController := StylistController{}
	stylistGroup := apiGroup.Group("/stylist")
	stylistController.StylistRoutes(stylistGroup)

	calendarController := CalendarController{}
	calendarGroup := apiGroup.Group("/calendar")
	calendarController.CalendarRoutes(calendarGroup)

	chatController := NewChatController()
	chatGroup := apiGroup.Group("/chat")
	chatController.ChatRoutes(chatGroup)

	return e
}
