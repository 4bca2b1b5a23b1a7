package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"locart/models"
)

// parseBookingFilter reads the booking list query parameters. Multi-value
// filters arrive comma-separated.
func parseBookingFilter(c *gin.Context) models.BookingFilter {
	filter := models.BookingFilter{
		Statuses:   splitParam(c.Query("status")),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		StartTime:  c.Query("start_time"),
		EndTime:    c.Query("end_time"),
		StylistIDs: splitParam(c.Query("stylist_ids")),
		ServiceIDs: splitParam(c.Query("service_ids")),
	}
	filter.MinAmount, _ = strconv.ParseFloat(c.Query("min_amount"), 64)
	filter.MaxAmount, _ = strconv.ParseFloat(c.Query("max_amount"), 64)
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return filter
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
