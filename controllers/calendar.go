package controllers

import (
	"fmt"
	"net/http"
	"time"

	"glamapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type PlanOutfitIn struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	OutfitID uint   `json:"outfit_id" validate:"required"`
}

type CalendarController struct {
}

func (controller *CalendarController) CalendarRoutes(g *echo.Group) {
	g.GET("", controller.ListPlanned)
	g.POST("", controller.PlanOutfit)
	g.DELETE("/:date", controller.UnplanOutfit)
}

func (controller *CalendarController) ListPlanned(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	query := db.Preload("Outfit.Items.ClothingItem").Where("owner_id = ?", user.ID)
	if month := c.QueryParam("month"); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "month must be YYYY-MM"})
		}
		query = query.Where("date LIKE ?", month+"-%")
	}

	var planned []models.PlannedOutfit
	if err := query.Order("date asc").Find(&planned).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch calendar"})
	}
	return c.JSON(http.StatusOK, echo.Map{"planned": planned})
}

// PlanOutfit upserts, planning a second outfit for the same date replaces
// the first.
func (controller *CalendarController) PlanOutfit(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	var req PlanOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var outfit models.Outfit
	r := db.Where("id = ? and owner_id = ?", req.OutfitID, user.ID).Limit(1).Find(&outfit)
	if r.Error != nil {
		fmt.Println("Failed to fetch outfit for planning", r.Error)
		return echo.ErrInternalServerError
	}
	if r.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Outfit not found"})
	}

	planned := models.PlannedOutfit{OwnerID: user.ID, Date: req.Date}
	db.Where("owner_id = ? and date = ?", user.ID, req.Date).Limit(1).Find(&planned)
	planned.OutfitID = outfit.ID
	if err := db.Save(&planned).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	fmt.Println("Planned outfit ", outfit.ID, " on ", req.Date, " for user ", user.ID)
	return c.JSON(http.StatusOK, planned)
}

func (controller *CalendarController) UnplanOutfit(c echo.Context) error {
	user := c.Get("currentUser").(models.UserAccount)
	db := c.Get("__db").(*gorm.DB)

	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
	}

	result := db.Where("owner_id = ? and date = ?", user.ID, date).Delete(&models.PlannedOutfit{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "deleted",
		"deleted": result.RowsAffected > 0,
	})
}
