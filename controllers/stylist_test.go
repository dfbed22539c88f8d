package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"glamapi/dbhelper"
	"glamapi/models"
	"glamapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateResponse struct {
	Outfits []GeneratedOutfitResponse `json:"outfits"`
}

func TestGenerateOutfitsOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	test.FakeBasicWardrobe(db, user.ID)

	reqBody := GenerateOutfitsIn{Mood: "happy", Occasion: "casual", Weather: "mild"}
	req := test.NewJSONAuthRequest("POST", "/api/stylist/generate", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var response generateResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.NotEmpty(t, response.Outfits)
	assert.LessOrEqual(t, len(response.Outfits), 3)

	for _, outfit := range response.Outfits {
		assert.NotZero(t, outfit.ID)
		assert.NotEmpty(t, outfit.Explanation)
		assert.GreaterOrEqual(t, len(outfit.Items), 3)
		assert.Equal(t, "happy", outfit.Mood)
		assert.Equal(t, "casual", outfit.Occasion)
	}

	// persisted with items
	var outfitCount int64
	db.Model(&models.Outfit{}).Where("owner_id = ?", user.ID).Count(&outfitCount)
	assert.Equal(t, int64(len(response.Outfits)), outfitCount)
	var itemCount int64
	db.Model(&models.OutfitItem{}).Count(&itemCount)
	assert.NotZero(t, itemCount)
}

func TestGenerateBumpsWearCounts(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	items := test.FakeBasicWardrobe(db, user.ID)

	reqBody := GenerateOutfitsIn{Mood: "happy", Occasion: "casual", Weather: "mild"}
	req := test.NewJSONAuthRequest("POST", "/api/stylist/generate", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var response generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Outfits)

	// the only top is part of every generated outfit, one bump per outfit
	var top models.ClothingItem
	db.First(&top, items[0].ID)
	assert.Equal(t, len(response.Outfits), top.TimesWorn)
	assert.NotNil(t, top.LastWorn)
}

func TestGenerateNotEnoughItems(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	// only a top, no bottom or shoes
	test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTop, "white", models.SeasonAll, "casual")

	reqBody := GenerateOutfitsIn{Mood: "happy", Occasion: "casual", Weather: "mild"}
	req := test.NewJSONAuthRequest("POST", "/api/stylist/generate", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "Not enough items")
}

func TestGenerateInvalidMood(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := GenerateOutfitsIn{Mood: "furious", Occasion: "casual", Weather: "mild"}
	req := test.NewJSONAuthRequest("POST", "/api/stylist/generate", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateUsesStoredVibes(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	test.FakeBasicWardrobe(db, user.ID)
	db.Create(&models.UserVibes{OwnerID: user.ID, Vibes: "stressed"})

	reqBody := GenerateOutfitsIn{Mood: "relaxed", Occasion: "casual", Weather: "mild"}
	req := test.NewJSONAuthRequest("POST", "/api/stylist/generate", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var response generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Outfits)
	// the comfort oriented wardrobe should surface the stressed-day reason
	assert.Contains(t, response.Outfits[0].Explanation, "comfort + low-effort pieces")
}

func TestListOutfitsLatest(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	test.FakeBasicWardrobe(db, user.ID)

	reqBody := GenerateOutfitsIn{Mood: "happy", Occasion: "casual", Weather: "mild"}
	req := test.NewJSONAuthRequest("POST", "/api/stylist/generate", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	listReq := test.NewJSONAuthRequest("GET", "/api/stylist/outfits", UIntToStr(user.ID), nil)
	listRec := httptest.NewRecorder()
	e.ServeHTTP(listRec, listReq)

	require.Equal(t, http.StatusOK, listRec.Code, listRec.Body.String())
	var listResponse map[string][]models.Outfit
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listResponse))
	require.NotEmpty(t, listResponse["outfits"])
	assert.NotEmpty(t, listResponse["outfits"][0].Items)
}

func TestOutfitFeedback(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	outfit := models.Outfit{Explanation: "Test outfit.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&outfit)

	reqBody := OutfitFeedbackIn{Rating: 5, Liked: true, Note: test.NewRefString("loved it")}
	req := test.NewJSONAuthRequest("POST", fmt.Sprintf("/api/stylist/outfits/%v/feedback", outfit.ID), UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var feedback models.OutfitFeedback
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feedback))
	assert.Equal(t, 5, feedback.Rating)
	assert.True(t, feedback.Liked)

	// out of range rating
	badBody := OutfitFeedbackIn{Rating: 9}
	badReq := test.NewJSONAuthRequest("POST", fmt.Sprintf("/api/stylist/outfits/%v/feedback", outfit.ID), UIntToStr(user.ID), badBody)
	badRec := httptest.NewRecorder()
	e.ServeHTTP(badRec, badReq)
	assert.Equal(t, http.StatusBadRequest, badRec.Code)
}
