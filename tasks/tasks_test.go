package tasks

import (
	"context"
	"testing"

	"glamapi/dbhelper"
	"glamapi/models"
	"glamapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWearIncrementTask(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)
	items := test.FakeBasicWardrobe(db, user.ID)

	outfit := models.Outfit{Explanation: "Test.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&outfit)
	for _, item := range items[:3] {
		db.Create(&models.OutfitItem{OutfitID: outfit.ID, ClothingItemID: item.ID})
	}

	task, err := NewWearIncrementTask(outfit.ID)
	require.NoError(t, err)
	require.NoError(t, HandleWearIncrementTask(context.Background(), task, db))

	var updated models.ClothingItem
	db.First(&updated, items[0].ID)
	assert.Equal(t, 1, updated.TimesWorn)
	assert.NotNil(t, updated.LastWorn)

	// the item outside the outfit stays untouched
	var untouched models.ClothingItem
	db.First(&untouched, items[3].ID)
	assert.Equal(t, 0, untouched.TimesWorn)

	// double processing is allowed, counts drift up
	require.NoError(t, HandleWearIncrementTask(context.Background(), task, db))
	db.First(&updated, items[0].ID)
	assert.Equal(t, 2, updated.TimesWorn)
}

func TestHandleWearIncrementMissingOutfit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()

	task, err := NewWearIncrementTask(999999)
	require.NoError(t, err)
	assert.NoError(t, HandleWearIncrementTask(context.Background(), task, db))
}
