package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"glamapi/models"
	"glamapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type WearIncrementPayload struct {
	OutfitID uint `json:"outfit_id"`
}

// Client initializes an asynq client for enqueuing tasks
func NewClient() (*asynq.Client, error) {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}), nil
}

// NewWearIncrementTask queues the wear-count bump for every item of a
// confirmed worn outfit.
func NewWearIncrementTask(outfitID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(WearIncrementPayload{OutfitID: outfitID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask("wardrobe:wear_increment", payload), nil
}

func NewDailyOutfitReminderTask() *asynq.Task {
	return asynq.NewTask("stylist:daily_reminder", []byte{})
}

// HandleWearIncrementTask bumps TimesWorn and LastWorn for each item of the
// outfit. Retries are safe only because a duplicate bump is an acceptable
// drift for scoring, the engine treats wear counts as a soft signal.
func HandleWearIncrementTask(ctx context.Context, t *asynq.Task, db *gorm.DB) error {
	var payload WearIncrementPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("failed to parse wear increment payload: %v: %w", err, asynq.SkipRetry)
	}
	fmt.Printf("[Wear] Processing outfit %v\n", payload.OutfitID)

	var outfit models.Outfit
	r := db.Preload("Items").Limit(1).Find(&outfit, payload.OutfitID)
	if r.Error != nil {
		sentry.CaptureException(r.Error)
		return r.Error
	}
	if r.RowsAffected == 0 {
		fmt.Printf("[Wear] Outfit %v no longer exists, skipping\n", payload.OutfitID)
		return nil
	}

	now := time.Now().UTC()
	for _, outfitItem := range outfit.Items {
		result := db.Model(&models.ClothingItem{}).Where("id = ?", outfitItem.ClothingItemID).
			Updates(map[string]interface{}{
				"times_worn": gorm.Expr("times_worn + 1"),
				"last_worn":  now,
			})
		if result.Error != nil {
			sentry.CaptureException(result.Error)
			return result.Error
		}
	}
	fmt.Printf("[Wear] Outfit %v, updated %v items\n", outfit.ID, len(outfit.Items))
	return nil
}

// HandleDailyOutfitReminderTask pushes a morning nudge to everyone who has an
// outfit planned for today and kept notifications on.
func HandleDailyOutfitReminderTask(ctx context.Context, t *asynq.Task, db *gorm.DB, fbApp *firebase.App) error {
	today := time.Now().UTC().Format("2006-01-02")

	var planned []models.PlannedOutfit
	if err := db.Where("date = ?", today).Find(&planned).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}
	fmt.Printf("[Reminder] %v planned outfits for %s\n", len(planned), today)

	for _, plan := range planned {
		var user models.UserAccount
		r := db.Limit(1).Find(&user, plan.OwnerID)
		if r.RowsAffected == 0 || !user.ReceiveNotifications {
			continue
		}
		services.SendNotification(
			fbApp, db, user.ID,
			"Your outfit for today is ready",
			"You planned a look for today. Tap to see it before you get dressed.",
			map[string]string{"planned_outfit_id": fmt.Sprint(plan.ID)},
		)
	}
	return nil
}
