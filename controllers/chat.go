package controllers

import (
	"net/http"
	"sync"

	"glamapi/agent"
	"glamapi/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type ChatMessageIn struct {
	Message string `json:"message" validate:"required,max=500"`
}

// chatSession pins the agent context to one user. The mutex serializes turns
// so the agent keeps its single writer guarantee even with a flaky client
// double-sending.
type chatSession struct {
	mu  sync.Mutex
	ctx agent.Context
}

type ChatController struct {
	mu       sync.Mutex
	sessions map[uint]*chatSession
}

func NewChatController() *ChatController {
	return &ChatController{sessions: map[uint]*chatSession{}}
}

func (controller *ChatController) ChatRoutes(g *echo.Group) {
	g.POST("", controller.Message)
	g.DELETE("", controller.Reset)
}

func (controller *ChatController) session(userId uint) *chatSession {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	s, ok := controller.sessions[userId]
	if !ok {
		s = &chatSession{}
		controller.sessions[userId] = s
	}
	return s
}

func (controller *ChatController) Message(c echo.Context) error {
	var req ChatMessageIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var wardrobe []models.ClothingItem
	if err := db.Where("owner_id = ?", user.ID).Find(&wardrobe).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}

	s := controller.session(user.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	// refresh the snapshot every turn, wardrobe edits between turns count
	s.ctx.Wardrobe = WardrobeSnapshot(wardrobe)
	response := agent.ProcessMessage(req.Message, &s.ctx)

	return c.JSON(http.StatusOK, response)
}

func (controller *ChatController) Reset(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	controller.mu.Lock()
	delete(controller.sessions, user.ID)
	controller.mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"message": "session cleared"})
}
