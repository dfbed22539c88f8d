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

func TestCreateWardrobeItemOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := CreateWardrobeItemIn{
		Name:     "Linen Shirt",
		Category: "TOP",
		Color:    "white",
		Season:   "SUMMER",
		Tags:     []string{"casual", "everyday"},
		FileName: StrPointer("linen-shirt.jpg"),
	}

	req := test.NewJSONAuthRequest("POST", "/api/wardrobe/create", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, "Expected status code 201 Created, got %d: %s", rec.Code, rec.Body.String())

	var response WardrobeItemCreatedResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Equal(t, reqBody.Name, response.Item.Name)
	require.Equal(t, reqBody.Category, response.Item.Category)
	require.Equal(t, reqBody.Tags, response.Item.Tags)
	assert.Contains(t, response.FileUploadUrl, "fakebucketurl.com")
	assert.Contains(t, response.FileUploadUrl, fmt.Sprintf("wardrobe/%v/linen-shirt.jpg", user.ID))
	assert.Equal(t, 0, response.Item.TimesWorn)
}

func TestCreateWardrobeItemInvalidCategory(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := CreateWardrobeItemIn{
		Name:     "Mystery Piece",
		Category: "HAT",
		Color:    "red",
		Season:   "SUMMER",
	}

	req := test.NewJSONAuthRequest("POST", "/api/wardrobe/create", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "Category")
}

func TestCreateWardrobeItemUnauthorized(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})

	reqBody := CreateWardrobeItemIn{Name: "Tee", Category: "TOP", Color: "white", Season: "ALL"}
	req := test.NewJSONRequest("POST", "/api/wardrobe/create", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListWardrobeGroupsByCategory(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{MockUrl: "https://cached.example.com/read"})
	user := test.FakeUser(db)
	test.FakeBasicWardrobe(db, user.ID)
	test.FakeWardrobeItem(db, user.ID, "Scarf", models.CategoryAccessory, "red", models.SeasonWinter, "cozy")

	// someone else's item must not leak in
	other := test.FakeUserV2(db, "Other", "other@example.com")
	test.FakeWardrobeItem(db, other.ID, "Their Tee", models.CategoryTop, "green", models.SeasonAll, "")

	req := test.NewJSONAuthRequest("GET", "/api/wardrobe/list", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response WardrobeListResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response.Tops, 1)
	assert.Len(t, response.Bottoms, 1)
	assert.Len(t, response.Shoes, 1)
	assert.Len(t, response.Outerwear, 1)
	assert.Len(t, response.Accessories, 1)
	assert.Equal(t, "White Tee", response.Tops[0].Name)
}

func TestUpdateWardrobeItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	item := test.FakeWardrobeItem(db, user.ID, "Old Name", models.CategoryTop, "red", models.SeasonSummer, "")

	reqBody := UpdateWardrobeItemIn{
		Name:  StrPointer("New Name"),
		Color: StrPointer("blue"),
		Tags:  &[]string{"casual"},
	}
	req := test.NewJSONAuthRequest("PUT", fmt.Sprintf("/api/wardrobe/%v", item.ID), UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response WardrobeItemResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "New Name", response.Name)
	assert.Equal(t, "blue", response.Color)
	assert.Equal(t, []string{"casual"}, response.Tags)
}

func TestDeleteWardrobeItemNotOwned(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")
	item := test.FakeWardrobeItem(db, other.ID, "Their Tee", models.CategoryTop, "green", models.SeasonAll, "")

	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/api/wardrobe/%v", item.ID), UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	db.Model(&models.ClothingItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkItemWorn(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	item := test.FakeWardrobeItem(db, user.ID, "White Tee", models.CategoryTop, "white", models.SeasonAll, "")

	req := test.NewJSONAuthRequest("POST", fmt.Sprintf("/api/wardrobe/%v/worn", item.ID), UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response WardrobeItemResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, 1, response.TimesWorn)
	assert.NotNil(t, response.LastWorn)
}
