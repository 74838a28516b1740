// internal/tests/community_test.go
package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/services"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

type CommunityTestSuite struct {
	suite.Suite
	server   *testServer
	admin    authBody
	msme     authBody
	villager authBody
}

func (suite *CommunityTestSuite) SetupTest() {
	suite.server = newTestServer(suite.T())
	suite.admin = suite.server.register(suite.T(), "Pak Kades", "kades@example.com", models.UserRoleAdmin)
	suite.msme = suite.server.register(suite.T(), "Warung Sari", "sari@example.com", models.UserRoleMsme)
	suite.villager = suite.server.register(suite.T(), "Dewi", "dewi@example.com", models.UserRoleVillager)
}

func (suite *CommunityTestSuite) home() services.CommunityHome {
	w := suite.server.do(suite.T(), http.MethodGet, "/community/home", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var home services.CommunityHome
	decode(suite.T(), w, &home)
	return home
}

func (suite *CommunityTestSuite) TestNewsManagement() {
	news := map[string]string{
		"title":   "Harvest festival",
		"summary": "Join the harvest festival at the village square",
		"type":    "event",
	}

	w := suite.server.do(suite.T(), http.MethodPost, "/community/news", suite.villager.Token, news)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.server.do(suite.T(), http.MethodPost, "/community/news", suite.admin.Token, news)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var item models.NewsItem
	decode(suite.T(), w, &item)
	suite.False(item.PublishedAt.IsZero())

	home := suite.home()
	suite.Require().Len(home.News, 1)
	suite.Equal("Harvest festival", home.News[0].Title)
	suite.Equal(int64(1), home.Stats.EventsCount)

	w = suite.server.do(suite.T(), http.MethodDelete, "/community/news/"+item.ID.String(), suite.admin.Token, nil)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(suite.home().News)

	w = suite.server.do(suite.T(), http.MethodDelete, "/community/news/"+item.ID.String(), suite.admin.Token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CommunityTestSuite) TestTourismSpotsAndImages() {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "waterfall.png")
	suite.Require().NoError(err)
	_, err = part.Write(pngBytes)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/community/tourism/images", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.admin.Token)
	w := httptest.NewRecorder()
	suite.server.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var upload services.UploadResult
	decode(suite.T(), w, &upload)
	suite.Equal("image/png", upload.MimeType)
	suite.True(strings.HasPrefix(upload.Key, "tourism/"))
	suite.Equal("http://localhost:5000/uploads/"+upload.Key, upload.URL)

	_, err = os.Stat(filepath.Join(suite.server.uploadDir, filepath.FromSlash(upload.Key)))
	suite.NoError(err)

	// The stored file is served back.
	w = suite.server.do(suite.T(), http.MethodGet, "/uploads/"+upload.Key, "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.server.do(suite.T(), http.MethodPost, "/community/tourism", suite.admin.Token, map[string]string{
		"name":        "Curug Sewu",
		"description": "A tall waterfall a short walk from the village",
		"imageUrl":    upload.URL,
		"location":    "North hill",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var spot models.TourismSpot
	decode(suite.T(), w, &spot)

	home := suite.home()
	suite.Len(home.TourismSpots, 1)
	suite.Equal(int64(1), home.Stats.TourismSpotsCount)

	w = suite.server.do(suite.T(), http.MethodDelete, "/community/tourism/"+spot.ID.String(), suite.msme.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.server.do(suite.T(), http.MethodDelete, "/community/tourism/"+spot.ID.String(), suite.admin.Token, nil)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *CommunityTestSuite) TestUploadWithoutFile() {
	req := httptest.NewRequest(http.MethodPost, "/community/tourism/images", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+suite.admin.Token)
	w := httptest.NewRecorder()
	suite.server.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *CommunityTestSuite) TestMsmeVerificationFlow() {
	w := suite.server.do(suite.T(), http.MethodGet, "/msme/profile", suite.msme.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var profile models.MsmeProfile
	decode(suite.T(), w, &profile)
	suite.Equal(models.MsmeStatusPending, profile.Status)

	w = suite.server.do(suite.T(), http.MethodPut, "/msme/profile", suite.msme.Token, map[string]interface{}{
		"storeName":   "Warung Sari",
		"category":    "Food",
		"description": "Home cooked meals every day",
		"location":    "East lane",
		"distanceKm":  1.2,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	decode(suite.T(), w, &profile)
	suite.Equal("Warung Sari", profile.StoreName)

	w = suite.server.do(suite.T(), http.MethodGet, "/msme/profile", suite.villager.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	// Admin queue lists the pending profile.
	w = suite.server.do(suite.T(), http.MethodGet, "/admin/msmes?status=pending", suite.admin.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	w = suite.server.do(suite.T(), http.MethodPatch, "/admin/msmes/"+profile.ID.String(), suite.admin.Token, map[string]string{
		"status": "approved",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	decode(suite.T(), w, &profile)
	suite.Equal(models.MsmeStatusApproved, profile.Status)

	w = suite.server.do(suite.T(), http.MethodPatch, "/admin/msmes/"+profile.ID.String(), suite.admin.Token, map[string]string{
		"status": "archived",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	home := suite.home()
	suite.Require().Len(home.Msmes, 1)
	suite.Equal("Warung Sari", home.Msmes[0].Name)

	// The owner is told about the decision.
	var notifications []models.Notification
	w = suite.server.do(suite.T(), http.MethodGet, "/notifications", suite.msme.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	decode(suite.T(), w, &notifications)
	suite.NotEmpty(notifications)

	w = suite.server.do(suite.T(), http.MethodGet, "/admin/dashboard", suite.admin.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var dashboard services.AdminDashboard
	decode(suite.T(), w, &dashboard)
	suite.Equal(int64(3), dashboard.Stats.TotalUsers)
	suite.Equal(int64(1), dashboard.Stats.ActiveMsmes)
	suite.Len(dashboard.Growth, 6)
	suite.True(dashboard.Population.Estimated)

	w = suite.server.do(suite.T(), http.MethodGet, "/admin/dashboard", suite.msme.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *CommunityTestSuite) TestNotifications() {
	w := suite.server.do(suite.T(), http.MethodPost, "/notifications", suite.admin.Token, map[string]string{
		"title":        "Water schedule",
		"message":      "Water supply pauses on Sunday morning",
		"type":         "announcement",
		"targetUserId": suite.villager.User.ID.String(),
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created models.Notification
	decode(suite.T(), w, &created)
	suite.False(created.Read)

	w = suite.server.do(suite.T(), http.MethodPost, "/notifications", suite.villager.Token, map[string]string{
		"title": "Hello", "message": "Hello world", "type": "system",
	})
	suite.Equal(http.StatusForbidden, w.Code)

	// Someone else marking it read leaves it untouched.
	w = suite.server.do(suite.T(), http.MethodPost, "/notifications/"+created.ID.String()+"/read", suite.msme.Token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	var notifications []models.Notification
	w = suite.server.do(suite.T(), http.MethodGet, "/notifications", suite.villager.Token, nil)
	decode(suite.T(), w, &notifications)
	suite.Require().Len(notifications, 1)
	suite.False(notifications[0].Read)

	w = suite.server.do(suite.T(), http.MethodPost, "/notifications/"+created.ID.String()+"/read", suite.villager.Token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.server.do(suite.T(), http.MethodGet, "/notifications", suite.villager.Token, nil)
	decode(suite.T(), w, &notifications)
	suite.Require().Len(notifications, 1)
	suite.True(notifications[0].Read)

	w = suite.server.do(suite.T(), http.MethodGet, "/notifications", suite.msme.Token, nil)
	decode(suite.T(), w, &notifications)
	suite.Empty(notifications)
}

func TestCommunityTestSuite(t *testing.T) {
	suite.Run(t, new(CommunityTestSuite))
}
