package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/agent-fetch/internal/alert"
	"github.com/dileep-u-k/agent-fetch/internal/schedule"
)

type scheduleCreateRequest struct {
	Name      string `json:"name"`
	TimeOfDay string `json:"time_of_day"`
	City      string `json:"city"`
	Coin      string `json:"coin"`
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *Handler) handleListSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, h.schedules.List())
}

func (h *Handler) handleCreateSchedule(c *gin.Context) {
	var req scheduleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.TimeOfDay == "" {
		req.TimeOfDay = "08:00"
	}

	sched, err := h.schedules.Create(schedule.CreateRequest{
		Name:      req.Name,
		TimeOfDay: req.TimeOfDay,
		City:      req.City,
		Coin:      req.Coin,
	})
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sched)
}

func (h *Handler) handleToggleSchedule(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled is required"})
		return
	}

	sched, err := h.schedules.SetEnabled(c.Param("id"), *req.Enabled)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sched)
}

func (h *Handler) handleDeleteSchedule(c *gin.Context) {
	if err := h.schedules.Delete(c.Param("id")); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type alertCreateRequest struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Operator  string  `json:"operator"`
	Threshold float64 `json:"threshold"`
	Coin      string  `json:"coin"`
	City      string  `json:"city"`
}

func (h *Handler) handleListAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.alerts.List())
}

func (h *Handler) handleCreateAlert(c *gin.Context) {
	var req alertCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Type == "" {
		req.Type = string(alert.TypeCryptoChange)
	}
	if req.Operator == "" {
		req.Operator = string(alert.OpGreater)
	}

	created, err := h.alerts.Create(alert.CreateRequest{
		Name:      req.Name,
		Type:      alert.Type(req.Type),
		Operator:  alert.Operator(req.Operator),
		Threshold: req.Threshold,
		Coin:      req.Coin,
		City:      req.City,
	})
	if err != nil {
		var verr *alert.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *Handler) handleToggleAlert(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled is required"})
		return
	}

	updated, err := h.alerts.SetEnabled(c.Param("id"), *req.Enabled)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) handleDeleteAlert(c *gin.Context) {
	if err := h.alerts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
