package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"glamapi/dbhelper"
	"glamapi/models"
	"glamapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOutfitUpserts(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)

	first := models.Outfit{Explanation: "First.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&first)
	second := models.Outfit{Explanation: "Second.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&second)

	req := test.NewJSONAuthRequest("POST", "/api/calendar", UIntToStr(user.ID), PlanOutfitIn{Date: "2026-09-01", OutfitID: first.ID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// planning a second outfit for the same date replaces the first
	req = test.NewJSONAuthRequest("POST", "/api/calendar", UIntToStr(user.ID), PlanOutfitIn{Date: "2026-09-01", OutfitID: second.ID})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var planned []models.PlannedOutfit
	db.Where("owner_id = ?", user.ID).Find(&planned)
	require.Len(t, planned, 1)
	assert.Equal(t, second.ID, planned[0].OutfitID)
	assert.Equal(t, "2026-09-01", planned[0].Date)
}

func TestPlanOutfitNotOwned(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")
	theirOutfit := models.Outfit{Explanation: "Theirs.", Mood: "happy", Occasion: "casual", OwnerID: other.ID}
	db.Create(&theirOutfit)

	req := test.NewJSONAuthRequest("POST", "/api/calendar", UIntToStr(user.ID), PlanOutfitIn{Date: "2026-09-01", OutfitID: theirOutfit.ID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanOutfitBadDate(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	outfit := models.Outfit{Explanation: "Test.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&outfit)

	req := test.NewJSONAuthRequest("POST", "/api/calendar", UIntToStr(user.ID), PlanOutfitIn{Date: "01.09.2026", OutfitID: outfit.ID})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPlannedMonthFilter(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	outfit := models.Outfit{Explanation: "Test.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&outfit)
	db.Create(&models.PlannedOutfit{OwnerID: user.ID, Date: "2026-09-05", OutfitID: outfit.ID})
	db.Create(&models.PlannedOutfit{OwnerID: user.ID, Date: "2026-10-01", OutfitID: outfit.ID})

	req := test.NewJSONAuthRequest("GET", "/api/calendar?month=2026-09", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response map[string][]models.PlannedOutfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response["planned"], 1)
	assert.Equal(t, "2026-09-05", response["planned"][0].Date)

	badReq := test.NewJSONAuthRequest("GET", "/api/calendar?month=september", UIntToStr(user.ID), nil)
	badRec := httptest.NewRecorder()
	e.ServeHTTP(badRec, badReq)
	assert.Equal(t, http.StatusBadRequest, badRec.Code)
}

func TestUnplanOutfit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, &test.AWSProviderMock{}, nil, nil, test.URLCacheMock{})
	user := test.FakeUser(db)
	outfit := models.Outfit{Explanation: "Test.", Mood: "happy", Occasion: "casual", OwnerID: user.ID}
	db.Create(&outfit)
	db.Create(&models.PlannedOutfit{OwnerID: user.ID, Date: "2026-09-05", OutfitID: outfit.ID})

	req := test.NewJSONAuthRequest("DELETE", "/api/calendar/2026-09-05", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["deleted"])

	var count int64
	db.Model(&models.PlannedOutfit{}).Where("owner_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// deleting a free date reports deleted false
	req = test.NewJSONAuthRequest("DELETE", "/api/calendar/2026-09-05", UIntToStr(user.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, false, response["deleted"])
}
