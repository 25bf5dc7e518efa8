package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"better-life/internal/advice"
	"better-life/internal/auth"
	"better-life/internal/catalog"
	"better-life/internal/chat"
	"better-life/internal/models"
	"better-life/internal/payment"
	"better-life/internal/store"
	"better-life/internal/tracker"
	"better-life/pkg/logger"
)

const profileKey = "profile"

// Handlers holds the service dependencies of the HTTP API.
type Handlers struct {
	auth    *auth.Service
	orch    *payment.Orchestrator
	advice  *advice.Service
	tracker *tracker.Service
	txStore store.TransactionStore
	webhook WebhookVerifier
	log     *logger.Logger

	mu    sync.Mutex
	chats map[string]*chat.Session
}

func NewHandlers(
	authSvc *auth.Service,
	orch *payment.Orchestrator,
	adviceSvc *advice.Service,
	trackerSvc *tracker.Service,
	txStore store.TransactionStore,
	webhook WebhookVerifier,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		auth:    authSvc,
		orch:    orch,
		advice:  adviceSvc,
		tracker: trackerSvc,
		txStore: txStore,
		webhook: webhook,
		log:     log,
		chats:   make(map[string]*chat.Session),
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handlers) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if h.webhook != nil {
		r.POST("/webhook/stripe", h.handleStripeWebhook)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.handleSignUp)
		api.POST("/auth/signin", h.handleSignIn)

		api.GET("/catalog/plans", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"plans": catalog.Plans()})
		})
		api.GET("/catalog/services", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"services": catalog.Services()})
		})

		authed := api.Group("", h.requireAuth)
		{
			authed.POST("/auth/signout", h.handleSignOut)
			authed.GET("/me", h.handleMe)

			authed.POST("/payments", h.handleCreatePayment)
			authed.GET("/payments/:id", h.handlePaymentStatus)

			authed.POST("/subscriptions", h.handleCreateSubscription)
			authed.GET("/subscriptions/:id", h.handleSubscriptionStatus)
			authed.DELETE("/subscriptions/:id", h.handleCancelSubscription)

			authed.POST("/advice/:topic", h.handleAdvice)
			authed.GET("/advice/:topic/messages", h.handleTranscript)
			authed.DELETE("/advice/:topic", h.handleClearChat)

			authed.POST("/tracker/meals", h.handleLogMeal)
			authed.GET("/tracker/meals", h.handleListMeals)
			authed.POST("/tracker/workouts", h.handleLogWorkout)
			authed.GET("/tracker/workouts", h.handleListWorkouts)
			authed.POST("/tracker/hydration", h.handleLogHydration)
			authed.GET("/tracker/hydration", h.handleListHydration)
		}
	}

	return r
}

func (h *Handlers) requireAuth(c *gin.Context) {
	token := bearerToken(c)
	profile, err := h.auth.UserFromToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Set(profileKey, profile)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func currentProfile(c *gin.Context) models.UserProfile {
	v, _ := c.Get(profileKey)
	profile, _ := v.(models.UserProfile)
	return profile
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Weight   int    `json:"weight"`
	Height   int    `json:"height"`
	Language string `json:"language"`
	Location string `json:"location"`
}

func (h *Handlers) handleSignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := models.UserProfile{
		FullName: req.FullName,
		Age:      req.Age,
		Weight:   req.Weight,
		Height:   req.Height,
		Language: req.Language,
		Location: req.Location,
	}

	sess, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password, profile)
	if errors.Is(err, auth.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Sign-up failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign up"})
		return
	}

	c.JSON(http.StatusCreated, sess)
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) handleSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Sign-in failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

func (h *Handlers) handleSignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), bearerToken(c)); err != nil {
		h.log.Error("Sign-out failed", "error", err)
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentProfile(c))
}

func (h *Handlers) handleCreatePayment(c *gin.Context) {
	var req payment.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := currentProfile(c)
	if req.CustomerEmail == "" {
		req.CustomerEmail = profile.Email
	}
	if req.CustomerName == "" {
		req.CustomerName = profile.FullName
	}

	h.respondOutcome(c, h.orch.CreatePayment(c.Request.Context(), req))
}

func (h *Handlers) handleCreateSubscription(c *gin.Context) {
	var req payment.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := currentProfile(c)
	if req.CustomerEmail == "" {
		req.CustomerEmail = profile.Email
	}
	if req.CustomerName == "" {
		req.CustomerName = profile.FullName
	}

	h.respondOutcome(c, h.orch.CreateSubscription(c.Request.Context(), req))
}

func (h *Handlers) handlePaymentStatus(c *gin.Context) {
	h.respondOutcome(c, h.orch.GetPaymentStatus(c.Request.Context(), c.Param("id")))
}

func (h *Handlers) handleSubscriptionStatus(c *gin.Context) {
	h.respondOutcome(c, h.orch.GetSubscriptionStatus(c.Request.Context(), c.Param("id")))
}

func (h *Handlers) handleCancelSubscription(c *gin.Context) {
	h.respondOutcome(c, h.orch.CancelSubscription(c.Request.Context(), c.Param("id")))
}

// respondOutcome maps a tagged Outcome to a JSON response. Failures stay
// inline-renderable: the reason and kind are returned, never a bare 500.
func (h *Handlers) respondOutcome(c *gin.Context, out payment.Outcome) {
	if out.OK() {
		c.JSON(http.StatusOK, out)
		return
	}

	status := http.StatusBadGateway
	switch out.Failure.Kind {
	case payment.FailureValidation:
		status = http.StatusBadRequest
	case payment.FailureTransport:
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, gin.H{"error": out.Failure.Reason, "kind": out.Failure.Kind})
}

type adviceRequest struct {
	Query string `json:"query" binding:"required"`
}

func (h *Handlers) handleAdvice(c *gin.Context) {
	topic := models.Topic(c.Param("topic"))
	if !topic.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic"})
		return
	}

	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := currentProfile(c)
	session := h.chatSession(bearerToken(c), topic)

	reply, err := session.Ask(c.Request.Context(), req.Query, &profile)
	if errors.Is(err, chat.ErrBusy) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Chat ask failed", "topic", topic, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *Handlers) handleTranscript(c *gin.Context) {
	topic := models.Topic(c.Param("topic"))
	if !topic.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic"})
		return
	}

	session := h.chatSession(bearerToken(c), topic)
	c.JSON(http.StatusOK, gin.H{"messages": session.Messages()})
}

func (h *Handlers) handleClearChat(c *gin.Context) {
	topic := models.Topic(c.Param("topic"))
	if !topic.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic"})
		return
	}

	h.chatSession(bearerToken(c), topic).Clear()
	c.Status(http.StatusNoContent)
}

// chatSession returns the transcript for one open chat window, keyed by
// session token and topic. Windows are independent: each has its own
// transcript and in-flight flag.
func (h *Handlers) chatSession(token string, topic models.Topic) *chat.Session {
	key := token + "|" + string(topic)

	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.chats[key]
	if !ok {
		s = chat.NewSession(topic, h.advice)
		h.chats[key] = s
	}
	return s
}

func (h *Handlers) handleLogMeal(c *gin.Context) {
	var entry models.MealEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.tracker.LogMeal(c.Request.Context(), currentProfile(c).ID, entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handlers) handleListMeals(c *gin.Context) {
	meals, err := h.tracker.Meals(c.Request.Context(), currentProfile(c).ID)
	if err != nil {
		h.log.Error("Failed to list meals", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *Handlers) handleLogWorkout(c *gin.Context) {
	var entry models.WorkoutEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.tracker.LogWorkout(c.Request.Context(), currentProfile(c).ID, entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handlers) handleListWorkouts(c *gin.Context) {
	workouts, err := h.tracker.Workouts(c.Request.Context(), currentProfile(c).ID)
	if err != nil {
		h.log.Error("Failed to list workouts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list workouts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func (h *Handlers) handleLogHydration(c *gin.Context) {
	var entry models.HydrationEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.tracker.LogHydration(c.Request.Context(), currentProfile(c).ID, entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handlers) handleListHydration(c *gin.Context) {
	entries, err := h.tracker.Hydration(c.Request.Context(), currentProfile(c).ID)
	if err != nil {
		h.log.Error("Failed to list hydration entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hydration entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hydration": entries})
}
