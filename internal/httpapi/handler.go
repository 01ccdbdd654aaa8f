// Package httpapi wires the gin routes of the service: direct weather and
// crypto lookups, the agent chat endpoint, the query history, and CRUD for
// schedules and alerts.
package httpapi

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/agent-fetch/internal/alert"
	"github.com/dileep-u-k/agent-fetch/internal/gateway"
	"github.com/dileep-u-k/agent-fetch/internal/history"
	"github.com/dileep-u-k/agent-fetch/internal/schedule"
	"github.com/dileep-u-k/agent-fetch/internal/store"
)

// DataSource is the slice of the gateway the handlers need.
type DataSource interface {
	FetchWeather(ctx context.Context, city string) (*gateway.WeatherReport, error)
	FetchCryptoPrice(ctx context.Context, coin string) (*gateway.CryptoQuote, error)
}

// AgentRunner answers one natural-language message.
type AgentRunner interface {
	Run(ctx context.Context, message string) (string, error)
}

// Handler holds every dependency the routes need.
type Handler struct {
	source    DataSource
	agent     AgentRunner
	history   *history.Log
	store     *store.Store
	schedules *schedule.Engine
	alerts    *alert.Engine
}

func NewHandler(
	source DataSource,
	agentRunner AgentRunner,
	historyLog *history.Log,
	st *store.Store,
	schedules *schedule.Engine,
	alerts *alert.Engine,
) *Handler {
	return &Handler{
		source:    source,
		agent:     agentRunner,
		history:   historyLog,
		store:     st,
		schedules: schedules,
		alerts:    alerts,
	}
}

// Register attaches all routes to the engine.
func (h *Handler) Register(engine *gin.Engine) {
	engine.Use(corsMiddleware())

	engine.GET("/health", h.handleHealth)

	api := engine.Group("/api")
	{
		api.GET("/weather", h.handleWeather)
		api.GET("/crypto", h.handleCrypto)
		api.POST("/agent/chat", h.handleAgentChat)
		api.GET("/history", h.handleHistory)

		api.GET("/schedules", h.handleListSchedules)
		api.POST("/schedules", h.handleCreateSchedule)
		api.PATCH("/schedules/:id", h.handleToggleSchedule)
		api.DELETE("/schedules/:id", h.handleDeleteSchedule)

		api.GET("/alerts", h.handleListAlerts)
		api.POST("/alerts", h.handleCreateAlert)
		api.PATCH("/alerts/:id", h.handleToggleAlert)
		api.DELETE("/alerts/:id", h.handleDeleteAlert)
	}
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleWeather(c *gin.Context) {
	city := c.Query("city")

	report, err := h.source.FetchWeather(c.Request.Context(), city)
	if err != nil {
		abortWithError(c, err)
		return
	}
	// A 200 from the provider without the core numeric fields is an
	// upstream format change, not a user mistake.
	if report.TemperatureC == nil || report.FeelsLikeC == nil || report.Humidity == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Weather data format unexpected from API."})
		return
	}

	h.saveMirror("weather", report.City, report.Raw)
	h.history.Append(history.KindWeather, report.City, report)

	c.JSON(http.StatusOK, report)
}

func (h *Handler) handleCrypto(c *gin.Context) {
	coin := c.Query("coin")

	quote, err := h.source.FetchCryptoPrice(c.Request.Context(), coin)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.saveMirror("crypto", quote.CoinID, quote.Raw)
	h.history.Append(history.KindCrypto, quote.CoinID, quote)

	c.JSON(http.StatusOK, quote)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) handleAgentChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	answer, err := h.agent.Run(c.Request.Context(), req.Message)
	if err != nil {
		// Model quota/API problems are upstream failures from the
		// caller's point of view.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.history.Append(history.KindAgent, req.Message, map[string]any{"answer": answer})
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *Handler) handleHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 200"})
			return
		}
		limit = parsed
	}
	c.JSON(http.StatusOK, h.history.Recent(limit))
}

// saveMirror writes the raw provider payload to the data directory. A mirror
// failure is logged but never fails the request.
func (h *Handler) saveMirror(category, name string, payload any) {
	if _, err := h.store.Save(category, name, payload); err != nil {
		log.Printf("WARNING: could not save %s mirror for %s: %v", category, name, err)
	}
}
