package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"glamapi/models"
	"glamapi/services"
	"glamapi/stylist"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type VibesIn struct {
	Vibes []string `json:"vibes" validate:"required,max=30"`
}

type ProfileController struct {
	AWSService services.AWSServiceProvider
}

func (m *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("/me", m.Me)
	g.POST("/settings", m.Settings)
	g.GET("/vibes", m.GetVibes)
	g.PUT("/vibes", m.PutVibes)
	g.POST("/register-push", m.RegisterPush)
	g.POST("/delete-push", m.DeletePush)
	g.POST("/logout", m.Logout)
	g.POST("/delete-account", m.DeleteAccount)
}

func (m *ProfileController) Me(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var userVibes models.UserVibes
	vibes := []string{}
	r := db.Where("owner_id = ?", user.ID).Limit(1).Find(&userVibes)
	if r.RowsAffected > 0 {
		vibes = models.TagsToSlice(userVibes.Vibes)
	}

	return c.JSON(http.StatusOK, models.UserMeInfoOut{
		Id:                   UIntToStr(user.ID),
		Name:                 user.Name,
		Email:                user.Email,
		AvatarURL:            user.AvatarURL,
		ReceiveNotifications: user.ReceiveNotifications,
		Vibes:                vibes,
	})
}

func (m *ProfileController) Settings(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	var settingsIn = new(models.UserSettingsIn)
	db := c.Get("__db").(*gorm.DB)
	if err := c.Bind(settingsIn); err != nil {
		return err
	}
	user.ReceiveNotifications = settingsIn.ReceiveNotifications
	db.Save(&user)
	return c.JSON(http.StatusOK, settingsIn)
}

func (m *ProfileController) GetVibes(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var userVibes models.UserVibes
	vibes := []string{}
	r := db.Where("owner_id = ?", user.ID).Limit(1).Find(&userVibes)
	if r.RowsAffected > 0 {
		vibes = models.TagsToSlice(userVibes.Vibes)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"vibes":     vibes,
		"available": stylist.AllVibes(),
	})
}

func (m *ProfileController) PutVibes(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var req VibesIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	known := map[string]bool{}
	for _, v := range stylist.AllVibes() {
		known[v] = true
	}
	for _, v := range req.Vibes {
		if !known[v] {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unknown vibe: %s", v)})
		}
	}

	userVibes := models.UserVibes{OwnerID: user.ID}
	db.Where("owner_id = ?", user.ID).Limit(1).Find(&userVibes)
	userVibes.Vibes = models.TagsToString(req.Vibes)
	if err := db.Save(&userVibes).Error; err != nil {
		log.Println("Failed to save vibes for user", user.ID, err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, echo.Map{"vibes": req.Vibes})
}

func (m *ProfileController) RegisterPush(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)
	var tokenRequest = new(models.UserPushIn)

	if err := c.Bind(tokenRequest); err != nil {
		return err
	}

	if !models.ValidatePlatformRaw(tokenRequest.Platform) {
		return c.JSON(http.StatusForbidden, map[string]interface{}{"message": "Please provide proper platform parameter"})
	}
	var pushData models.UserPushToken = models.UserPushToken{
		Platform:      models.Platform(tokenRequest.Platform),
		Token:         tokenRequest.Token,
		UserAccountID: user.ID,
		Active:        true,
	}

	// same token/device can sign in to diff accs and still receive pushes
	result := db.Where("token = ? and user_account_id = ?", tokenRequest.Token, user.ID).FirstOrCreate(&pushData)
	if result.Error != nil {
		log.Println(result.Error)
		return echo.ErrInternalServerError
	}
	fmt.Println("Push id ", pushData.ID, " Token ", pushData.Token, " Platform: ", pushData.Platform, "User ID:", pushData.UserAccountID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "registered",
		"push_id": pushData.ID,
	})
}

func (m *ProfileController) DeletePush(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)
	var tokenRequest = new(models.UserPushIn)

	if err := c.Bind(tokenRequest); err != nil {
		return err
	}

	if !models.ValidatePlatformRaw(tokenRequest.Platform) {
		return c.JSON(http.StatusForbidden, map[string]interface{}{"message": "Please provide proper platform parameter"})
	}

	result := db.Where("token = ? and user_account_id = ? and platform = ?", tokenRequest.Token, user.ID, tokenRequest.Platform).Delete(&models.UserPushToken{})
	if result.Error != nil {
		log.Println(result.Error)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "deleted",
		"deleted": result.RowsAffected > 0,
	})
}

func (m *ProfileController) Logout(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)
	var tokenRequest = new(models.UserPushIn)
	if err := c.Bind(tokenRequest); err != nil {
		return err
	}

	db.Where("user_account_id = ? and token = ?", user.ID, tokenRequest.Token).Delete(&models.UserPushToken{})

	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

func (m *ProfileController) DeleteAccount(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)
	now := time.Now()
	user.ConfirmedDeleteDate = &now
	db.Save(user)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "scheduled for deletion",
	})
}
