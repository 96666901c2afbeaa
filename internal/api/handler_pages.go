package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"studyseat-dashboard/internal/view"
)

const htmlContentType = "text/html; charset=utf-8"

func noticeFromQuery(c *gin.Context) *view.Notice {
	message := c.Query("notice")
	if message == "" {
		return nil
	}
	kind := c.Query("kind")
	if kind == "" {
		kind = "info"
	}
	return &view.Notice{Kind: kind, Message: message}
}

// GetDashboard renders the full dashboard page from the current snapshot.
func (h *Handler) GetDashboard(c *gin.Context) {
	snap := h.cache.Snapshot()
	data := view.BuildPageData(snap, c.Query("q"), noticeFromQuery(c), view.FormPrefill{
		Name:    c.Query("name"),
		Contact: c.Query("contact"),
		Room:    c.Query("room"),
		Table:   c.Query("table"),
		Amount:  c.Query("amount"),
	})

	page, err := view.RenderPage(data)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to render dashboard"})
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// GetTableDetail renders the detail view for one table by composite id.
func (h *Handler) GetTableDetail(c *gin.Context) {
	snap := h.cache.Snapshot()
	table := snap.TableByID(c.Param("id"))
	if table == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown table id"})
		return
	}

	page, err := view.RenderTableDetail(table)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to render table detail"})
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// GetVacantTables renders the vacant table list for one room.
func (h *Handler) GetVacantTables(c *gin.Context) {
	snap := h.cache.Snapshot()
	room := snap.RoomByID(c.Param("room"))
	if room == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown room"})
		return
	}

	page, err := view.RenderVacantTables(room)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to render vacant tables"})
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// GetRoomStats renders the statistics view for one room.
func (h *Handler) GetRoomStats(c *gin.Context) {
	snap := h.cache.Snapshot()
	room := snap.RoomByID(c.Param("room"))
	if room == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown room"})
		return
	}

	page, err := view.RenderRoomStats(room)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to render room stats"})
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// GetFeeForm renders the fee update form for one student.
func (h *Handler) GetFeeForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	snap := h.cache.Snapshot()
	student := snap.StudentByID(id)
	if student == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown student"})
		return
	}

	page, err := view.RenderFeeForm(time.Now().UTC(), *student)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to render fee form"})
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}
