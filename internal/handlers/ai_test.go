package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskpilot/taskpilot-api/internal/database"
	"github.com/taskpilot/taskpilot-api/internal/middleware"
	"github.com/taskpilot/taskpilot-api/internal/models"
	"github.com/taskpilot/taskpilot-api/internal/repository"
	"github.com/taskpilot/taskpilot-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type aiTestEnv struct {
	router        *gin.Engine
	adviceService *services.AdviceService
	taskService   *services.TaskService
	token         string
	userID        uint64
}

func setupAITestEnv(t *testing.T) aiTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Subtask{},
		&models.Note{},
		&models.AIInteraction{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	tokens := services.NewTokenService("test-secret")
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo)
	adviceService := services.NewAdviceService(interactionRepo, rand.New(rand.NewSource(42)))
	handler := NewAIHandler(adviceService, taskService)

	r := gin.New()
	ai := r.Group("/api/ai")
	ai.Use(middleware.RequireAuth(tokens))
	{
		ai.POST("/chat", handler.Chat)
		ai.POST("/suggestions", handler.Suggestions)
		ai.POST("/insights", handler.Insights)
		ai.POST("/feedback", handler.Feedback)
		ai.GET("/history", handler.History)
	}

	result, err := authService.Register(services.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return aiTestEnv{
		router:        r,
		adviceService: adviceService,
		taskService:   taskService,
		token:         result.Token,
		userID:        result.User.ID,
	}
}

func TestAIHandler_Chat(t *testing.T) {
	env := setupAITestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/chat", env.token, map[string]string{
		"message": "How do I stay productive?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Response      string `json:"response"`
		InteractionID uint64 `json:"interaction_id"`
		SessionID     string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Response)
	require.NotZero(t, response.InteractionID)
	require.NotEmpty(t, response.SessionID, "a session id is minted when none is supplied")

	// The reply always comes from the fixed pool regardless of the message.
	history, err := env.adviceService.History(env.userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, models.InteractionTypeChat, history[0].Type)
	require.Equal(t, "How do I stay productive?", history[0].UserMessage)
	require.Equal(t, response.Response, history[0].AIResponse)
}

func TestAIHandler_Chat_KeepsSessionID(t *testing.T) {
	env := setupAITestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/chat", env.token, map[string]string{
		"message":    "hello again",
		"session_id": "session-123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "session-123", response.SessionID)
}

func TestAIHandler_Chat_MissingMessage(t *testing.T) {
	env := setupAITestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/chat", env.token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIHandler_Chat_RequiresAuth(t *testing.T) {
	env := setupAITestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/chat", "", map[string]string{
		"message": "hi",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAIHandler_Suggestions_EmptyBacklog(t *testing.T) {
	env := setupAITestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/suggestions", env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Suggestions []services.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Suggestions, 1)
	require.Equal(t, "getting_started", response.Suggestions[0].Type)
	require.Equal(t, "high", response.Suggestions[0].Priority)
}

func TestAIHandler_Suggestions_LargeBacklog(t *testing.T) {
	env := setupAITestEnv(t)

	for i := 0; i < 6; i++ {
		_, err := env.taskService.CreateTask(env.userID, services.CreateTaskInput{
			Title: "task",
		})
		require.NoError(t, err)
	}

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/suggestions", env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Suggestions []services.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	types := make([]string, len(response.Suggestions))
	for i, s := range response.Suggestions {
		types[i] = s.Type
	}
	require.Equal(t, []string{"too_many_tasks", "break_large_tasks"}, types,
		"no overdue tasks, so the backlog and catch-all rules fire in order")
}

func TestAIHandler_Insights(t *testing.T) {
	env := setupAITestEnv(t)

	_, err := env.taskService.CreateTask(env.userID, services.CreateTaskInput{
		Title: "done", Priority: models.TaskPriorityHigh,
	})
	require.NoError(t, err)
	created, err := env.taskService.CreateTask(env.userID, services.CreateTaskInput{
		Title: "finished", Category: models.TaskCategoryWork,
	})
	require.NoError(t, err)
	_, err = env.taskService.CompleteTask(created.ID, env.userID)
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/insights", env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Insights []services.Insight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	types := make([]string, len(response.Insights))
	for i, in := range response.Insights {
		types[i] = in.Type
	}
	require.Equal(t, []string{"completion_rate", "priority_focus", "category_balance"}, types)
	require.Contains(t, response.Insights[0].Description, "50%")
}

func TestAIHandler_Feedback(t *testing.T) {
	env := setupAITestEnv(t)

	interaction, err := env.adviceService.Chat(env.userID, "", "hello")
	require.NoError(t, err)

	rating := 5
	helpful := true
	w := doJSON(t, env.router, http.MethodPost, "/api/ai/feedback", env.token, map[string]any{
		"interaction_id": interaction.ID,
		"rating":         rating,
		"helpful":        helpful,
		"comment":        "very useful",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Interaction struct {
			Rating  *int  `json:"rating"`
			Helpful *bool `json:"helpful"`
		} `json:"interaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Interaction.Rating)
	require.Equal(t, 5, *response.Interaction.Rating)
	require.NotNil(t, response.Interaction.Helpful)
	require.True(t, *response.Interaction.Helpful)
}

func TestAIHandler_Feedback_BadRating(t *testing.T) {
	env := setupAITestEnv(t)

	interaction, err := env.adviceService.Chat(env.userID, "", "hello")
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/feedback", env.token, map[string]any{
		"interaction_id": interaction.ID,
		"rating":         9,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIHandler_Feedback_UnknownInteraction(t *testing.T) {
	env := setupAITestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/ai/feedback", env.token, map[string]any{
		"interaction_id": 12345,
		"rating":         4,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAIHandler_History(t *testing.T) {
	env := setupAITestEnv(t)

	for _, msg := range []string{"first", "second"} {
		_, err := env.adviceService.Chat(env.userID, "", msg)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/ai/history", env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Interactions []struct {
			UserMessage string `json:"user_message"`
		} `json:"interactions"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 2, response.Total)
	require.Equal(t, "second", response.Interactions[0].UserMessage, "newest first")
}
