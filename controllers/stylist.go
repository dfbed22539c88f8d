package controllers

import (
	"fmt"
	"net/http"
	"time"

	"glamapi/models"
	"glamapi/stylist"
	"glamapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type GenerateOutfitsIn struct {
	Mood     string   `json:"mood" validate:"required,mood"`
	Occasion string   `json:"occasion" validate:"required,occasion"`
	Weather  string   `json:"weather" validate:"omitempty,max=100"`
	Vibes    []string `json:"vibes" validate:"omitempty,max=30,dive,max=50"`
}

type OutfitFeedbackIn struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Liked  bool    `json:"liked"`
	Note   *string `json:"note" validate:"omitempty,max=500"`
}

type GeneratedOutfitResponse struct {
	ID          uint                   `json:"id"`
	Explanation string                 `json:"explanation"`
	Mood        string                 `json:"mood"`
	Occasion    string                 `json:"occasion"`
	Weather     string                 `json:"weather"`
	Items       []WardrobeItemResponse `json:"items"`
}

type StylistController struct {
}

func (controller *StylistController) StylistRoutes(g *echo.Group) {
	g.POST("/generate", controller.Generate)
	g.GET("/outfits", controller.ListOutfits)
	g.POST("/outfits/:outfitId/feedback", controller.OutfitFeedback)
	g.POST("/outfits/:outfitId/worn", controller.OutfitWorn)
}

// WardrobeSnapshot maps owned gorm rows to the immutable values the scoring
// engine works on. ACCESSORY rows never enter candidate enumeration.
func WardrobeSnapshot(items []models.ClothingItem) []stylist.Item {
	snapshot := make([]stylist.Item, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, stylist.Item{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Color:     item.Color,
			Season:    item.Season,
			Tags:      item.TagList(),
			TimesWorn: item.TimesWorn,
		})
	}
	return snapshot
}

func (controller *StylistController) Generate(c echo.Context) error {
	var req GenerateOutfitsIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var wardrobe []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Find(&wardrobe).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	vibes := req.Vibes
	if len(vibes) == 0 {
		var userVibes models.UserVibes
		r := db.Where("owner_id = ?", user.ID).Limit(1).Find(&userVibes)
		if r.RowsAffected > 0 {
			vibes = models.TagsToSlice(userVibes.Vibes)
		}
	}

	// missing weather falls through to the ALL season bucket here, only the
	// chat surface asks a clarifying question
	params := stylist.Params{
		Mood:     models.Mood(req.Mood),
		Occasion: models.Occasion(req.Occasion),
		Weather:  req.Weather,
		Vibes:    vibes,
	}
	generated := stylist.GenerateOutfits(WardrobeSnapshot(wardrobe), params)

	if len(generated) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Not enough items to build an outfit. You need at least one top, one bottom and one pair of shoes.",
		})
	}

	byID := map[uint]models.ClothingItem{}
	for _, item := range wardrobe {
		byID[item.ID] = item
	}

	// a suggested piece counts as worn right away, so back-to-back
	// generations rotate toward fresh items
	now := time.Now().UTC()
	response := []GeneratedOutfitResponse{}
	for _, gen := range generated {
		outfit := models.Outfit{
			Explanation:    gen.Explanation,
			Mood:           params.Mood,
			Occasion:       params.Occasion,
			WeatherSummary: params.Weather,
			OwnerID:        user.ID,
		}
		if err := db.Create(&outfit).Error; err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfits"})
		}
		items := []WardrobeItemResponse{}
		for _, genItem := range gen.Items {
			outfitItem := models.OutfitItem{OutfitID: outfit.ID, ClothingItemID: genItem.ID}
			if err := db.Create(&outfitItem).Error; err != nil {
				sentry.CaptureException(err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfits"})
			}
			if err := db.Model(&models.ClothingItem{}).Where("id = ?", genItem.ID).
				Updates(map[string]interface{}{
					"times_worn": gorm.Expr("times_worn + 1"),
					"last_worn":  now,
				}).Error; err != nil {
				sentry.CaptureException(err)
			}
			items = append(items, itemResponse(byID[genItem.ID]))
		}
		response = append(response, GeneratedOutfitResponse{
			ID:          outfit.ID,
			Explanation: outfit.Explanation,
			Mood:        string(outfit.Mood),
			Occasion:    string(outfit.Occasion),
			Weather:     outfit.WeatherSummary,
			Items:       items,
		})
	}

	fmt.Printf("[Stylist] Generated %v outfits for user %v \n", len(response), user.ID)
	return c.JSON(http.StatusCreated, echo.Map{"outfits": response})
}

func (controller *StylistController) ListOutfits(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var outfits []models.Outfit
	if err := db.Preload("Items.ClothingItem").Preload("Feedback").
		Where("owner_id = ?", user.ID).
		Order("created_at desc").Limit(20).Find(&outfits).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch outfits"})
	}
	return c.JSON(http.StatusOK, echo.Map{"outfits": outfits})
}

func (controller *StylistController) fetchOwnedOutfit(c echo.Context) (*models.Outfit, *gorm.DB, error) {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return nil, nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var outfitId uint
	if err := echo.PathParamsBinder(c).Uint("outfitId", &outfitId).BindError(); err != nil {
		return nil, nil, echo.ErrBadRequest
	}
	var outfit models.Outfit
	r := db.Where("id = ? and owner_id = ?", outfitId, user.ID).Limit(1).Find(&outfit)
	if r.Error != nil {
		fmt.Println("Failed to fetch outfit", r.Error)
		return nil, nil, echo.ErrInternalServerError
	}
	if r.RowsAffected == 0 {
		return nil, nil, echo.ErrNotFound
	}
	return &outfit, db, nil
}

func (controller *StylistController) OutfitFeedback(c echo.Context) error {
	outfit, db, err := controller.fetchOwnedOutfit(c)
	if err != nil {
		return err
	}

	var req OutfitFeedbackIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	feedback := models.OutfitFeedback{
		OutfitID: outfit.ID,
		Rating:   req.Rating,
		Liked:    req.Liked,
		Note:     req.Note,
	}
	if err := db.Create(&feedback).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusCreated, feedback)
}

// OutfitWorn queues the wear-count increment for an explicit confirmation,
// the worker retries it if redis or the db hiccups.
func (controller *StylistController) OutfitWorn(c echo.Context) error {
	outfit, _, err := controller.fetchOwnedOutfit(c)
	if err != nil {
		return err
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	task, err := tasks.NewWearIncrementTask(outfit.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not record the wear, please try again"})
	}
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("default"))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not record the wear, please try again"})
	}
	fmt.Println("[Queue] Wear increment task submitted, Outfit ID: ", outfit.ID, " Task ID: ", info.ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "recorded"})
}
