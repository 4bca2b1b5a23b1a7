package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locart/services/stylist"
	"locart/utils"
)

// StylistHandler exposes stylist onboarding and the timeslot surface.
type StylistHandler struct {
	svc *stylist.Service
}

func NewStylistHandler(svc *stylist.Service) *StylistHandler {
	return &StylistHandler{svc: svc}
}

// Onboard handles POST /stylists.
func (h *StylistHandler) Onboard(c *gin.Context) {
	var in stylist.OnboardInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.svc.Onboard(&in)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to onboard stylist", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "stylist onboarded", "data": created})
}

// Timeslots handles GET /stylists/:id/timeslots?service_id=...&date=...
func (h *StylistHandler) Timeslots(c *gin.Context) {
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "service_id and date are required", "")
		return
	}

	slots, err := h.svc.Timeslots(c.Param("id"), serviceID, date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to compute timeslots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": slots})
}

// WeekTimeslots handles GET /stylists/:id/timeslots/week?service_id=...&from=...
func (h *StylistHandler) WeekTimeslots(c *gin.Context) {
	serviceID := c.Query("service_id")
	from := c.Query("from")
	if serviceID == "" || from == "" {
		utils.JSONError(c, http.StatusBadRequest, "service_id and from are required", "")
		return
	}

	week, err := h.svc.WeekTimeslots(c.Param("id"), serviceID, from)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to compute timeslots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": week})
}
