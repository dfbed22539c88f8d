package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"glamapi/models"
	"glamapi/services"
	"glamapi/stylist"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CreateWardrobeItemIn struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Category string   `json:"category" validate:"required,category"`
	Color    string   `json:"color" validate:"required,max=50"`
	Season   string   `json:"season" validate:"required,season"`
	Tags     []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	FileName *string  `json:"file_name" validate:"omitempty,max=200"`
}

type UpdateWardrobeItemIn struct {
	Name     *string   `json:"name" validate:"omitempty,max=100"`
	Category *string   `json:"category" validate:"omitempty,category"`
	Color    *string   `json:"color" validate:"omitempty,max=50"`
	Season   *string   `json:"season" validate:"omitempty,season"`
	Tags     *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

type WardrobeItemResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Color     string     `json:"color"`
	ColorHex  string     `json:"color_hex"`
	Season    string     `json:"season"`
	Tags      []string   `json:"tags"`
	TimesWorn int        `json:"times_worn"`
	LastWorn  *time.Time `json:"last_worn"`
	Uri       *string    `json:"uri,omitempty"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

type WardrobeItemCreatedResponse struct {
	Item          WardrobeItemResponse `json:"item"`
	FileUploadUrl string               `json:"file_upload_url,omitempty"`
}

type WardrobeListResponse struct {
	Tops        []WardrobeItemResponse `json:"tops"`
	Bottoms     []WardrobeItemResponse `json:"bottoms"`
	Shoes       []WardrobeItemResponse `json:"shoes"`
	Outerwear   []WardrobeItemResponse `json:"outerwear"`
	Accessories []WardrobeItemResponse `json:"accessories"`
}

type WardrobeController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.GET("/list", controller.ListItems)
	g.POST("/create", controller.CreateItem)
	g.PUT("/:itemId", controller.UpdateItem)
	g.DELETE("/:itemId", controller.DeleteItem)
	g.POST("/:itemId/worn", controller.MarkItemWorn)
}

func itemResponse(item models.ClothingItem) WardrobeItemResponse {
	return WardrobeItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Category:  string(item.Category),
		Color:     item.Color,
		ColorHex:  stylist.ColorHex(item.Color),
		Season:    string(item.Season),
		Tags:      item.TagList(),
		TimesWorn: item.TimesWorn,
		LastWorn:  item.LastWorn,
		CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (controller *WardrobeController) CreateItem(c echo.Context) error {
	var req CreateWardrobeItemIn
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

	item := models.ClothingItem{
		Name:     req.Name,
		Category: models.Category(req.Category),
		Color:    req.Color,
		Season:   models.Season(req.Season),
		OwnerID:  user.ID,
	}
	item.SetTags(req.Tags)

	var uploadUrl string
	if req.FileName != nil && *req.FileName != "" {
		var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
		safeFileName := fmt.Sprintf("wardrobe/%v/%s", user.ID, *req.FileName)
		presignedUrl, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
		if presignErr != nil {
			log.Printf("Unable to presign upload for %s!, %s", item.Name, presignErr)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Error while creating item with attachment",
			})
		}
		uploadUrl = presignedUrl
		item.ImageURL = &safeFileName
	}

	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	return c.JSON(http.StatusCreated, WardrobeItemCreatedResponse{
		Item:          itemResponse(item),
		FileUploadUrl: uploadUrl,
	})
}

// populatePresignedItemImages enriches raw wardrobe rows with presigned read
// URLs concurrently. The cache is the fast path, a direct R2 presign is the
// failsafe when the cache layer itself errors.
func (controller *WardrobeController) populatePresignedItemImages(ctx context.Context, items []models.ClothingItem) []WardrobeItemResponse {
	if len(items) == 0 {
		return []WardrobeItemResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]WardrobeItemResponse, len(items))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, wardrobeItem := range items {
		wg.Add(1)
		go func(index int, item models.ClothingItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			resp := itemResponse(item)
			if imageUrl != "" {
				resp.Uri = &imageUrl
			}
			processedResponses[index] = resp
		}(i, wardrobeItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *WardrobeController) ListItems(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var items []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Order("created_at desc").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}
	processedResponses := controller.populatePresignedItemImages(c.Request().Context(), items)

	response := WardrobeListResponse{
		Tops:        []WardrobeItemResponse{},
		Bottoms:     []WardrobeItemResponse{},
		Shoes:       []WardrobeItemResponse{},
		Outerwear:   []WardrobeItemResponse{},
		Accessories: []WardrobeItemResponse{},
	}

	for _, resp := range processedResponses {
		switch resp.Category {
		case string(models.CategoryTop):
			response.Tops = append(response.Tops, resp)
		case string(models.CategoryBottom):
			response.Bottoms = append(response.Bottoms, resp)
		case string(models.CategoryShoes):
			response.Shoes = append(response.Shoes, resp)
		case string(models.CategoryOuter):
			response.Outerwear = append(response.Outerwear, resp)
		case string(models.CategoryAccessory):
			response.Accessories = append(response.Accessories, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}

func (controller *WardrobeController) fetchOwnedItem(c echo.Context) (*models.ClothingItem, *gorm.DB, error) {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return nil, nil, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return nil, nil, echo.ErrBadRequest
	}

	var item models.ClothingItem
	r := db.Where("id = ? and owner_id = ?", itemId, user.ID).Limit(1).Find(&item)
	if r.Error != nil {
		fmt.Println("Failed to fetch wardrobe item", r.Error)
		return nil, nil, echo.ErrInternalServerError
	}
	if r.RowsAffected == 0 {
		return nil, nil, echo.ErrNotFound
	}
	return &item, db, nil
}

func (controller *WardrobeController) UpdateItem(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if err != nil {
		return err
	}

	var req UpdateWardrobeItemIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = models.Category(*req.Category)
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Season != nil {
		item.Season = models.Season(*req.Season)
	}
	if req.Tags != nil {
		item.SetTags(*req.Tags)
	}

	if err := db.Save(item).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update item, please try again"})
	}
	return c.JSON(http.StatusOK, itemResponse(*item))
}

func (controller *WardrobeController) DeleteItem(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if err != nil {
		return err
	}
	if err := db.Delete(item).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	fmt.Println("Deleted wardrobe item ", item.ID, " for user ", item.OwnerID)
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func (controller *WardrobeController) MarkItemWorn(c echo.Context) error {
	item, db, err := controller.fetchOwnedItem(c)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	item.TimesWorn += 1
	item.LastWorn = &now
	if err := db.Save(item).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, itemResponse(*item))
}
