package api

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"studyseat-dashboard/internal/backend"
)

// redirect sends the browser back to the dashboard with a flash notice.
func redirect(c *gin.Context, kind, message string, extra url.Values) {
	values := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	values.Set("notice", message)
	values.Set("kind", kind)
	c.Redirect(http.StatusSeeOther, "/?"+values.Encode())
}

// completeCommand records the outcome and, on success, invalidates cached
// pages and forces a full re-sync of every dependent view. Consistency is
// always achieved by full refresh, never by targeted patching; a refresh
// failure after a successful mutation just leaves the previous snapshot on
// screen until the next cycle.
func (h *Handler) completeCommand(c *gin.Context, action, target, detail string, cmdErr error) {
	if err := h.store.RecordAction(c.Request.Context(), action, target, detail, cmdErr == nil); err != nil {
		log.Printf("Failed to record %s action: %v", action, err)
	}
	if cmdErr != nil {
		return
	}
	h.respCache.Flush()
	if err := h.refresher.RefreshOnce(c.Request.Context()); err != nil {
		log.Printf("Refresh after %s failed: %v", action, err)
	}
}

// PostAssign handles the assignment form: create a student and assign a table.
func (h *Handler) PostAssign(c *gin.Context) {
	name := c.PostForm("name")
	contact := c.PostForm("contactNumber")
	room := c.PostForm("roomNumber")
	tableNumber, tableErr := strconv.Atoi(c.PostForm("tableNumber"))
	amount, amountErr := strconv.ParseFloat(c.PostForm("amountPaid"), 64)

	// On failure the submitted values ride along so the form is retained.
	retained := url.Values{}
	retained.Set("name", name)
	retained.Set("contact", contact)
	retained.Set("room", room)
	retained.Set("table", c.PostForm("tableNumber"))
	retained.Set("amount", c.PostForm("amountPaid"))

	if name == "" || contact == "" || room == "" || tableErr != nil || amountErr != nil {
		redirect(c, "error", "Room, table number, name, contact and amount are required", retained)
		return
	}

	req := backend.AssignRequest{
		Name:          name,
		ContactNumber: contact,
		RoomNumber:    room,
		TableNumber:   tableNumber,
		AmountPaid:    amount,
	}
	err := h.client.Assign(c.Request.Context(), req)
	target := fmt.Sprintf("%s-T%d", room, tableNumber)
	h.completeCommand(c, "assign", target, name, err)

	if err != nil {
		log.Printf("Error assigning student: %v", err)
		redirect(c, "error", "Error: "+err.Error(), retained)
		return
	}
	redirect(c, "success", "Student assigned successfully!", nil)
}

// PostPayment handles the fee update form for one student.
func (h *Handler) PostPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	amount, amountErr := strconv.ParseFloat(c.PostForm("amount"), 64)
	if amountErr != nil {
		redirect(c, "error", "A valid amount is required", nil)
		return
	}
	paid := c.PostForm("paid") == "true"
	months, monthsErr := strconv.Atoi(c.PostForm("months"))
	if monthsErr != nil || months < 1 {
		months = 1
	}

	err = h.client.UpdatePayment(c.Request.Context(), id, backend.PaymentRequest{
		Amount: amount,
		Paid:   paid,
		Months: months,
	})
	h.completeCommand(c, "payment", strconv.FormatInt(id, 10), fmt.Sprintf("amount=%v paid=%v months=%d", amount, paid, months), err)

	if err != nil {
		log.Printf("Error updating fee: %v", err)
		redirect(c, "error", "Error updating fee: "+err.Error(), nil)
		return
	}
	redirect(c, "success", "Fee updated successfully!", nil)
}

// PostDelete removes one student. The confirmation prompt is enforced by the
// submitting form.
func (h *Handler) PostDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	err = h.client.DeleteStudent(c.Request.Context(), id)
	h.completeCommand(c, "delete", strconv.FormatInt(id, 10), "", err)

	if err != nil {
		log.Printf("Error removing student: %v", err)
		redirect(c, "error", "Error removing student: "+err.Error(), nil)
		return
	}
	redirect(c, "success", "Student removed successfully!", nil)
}

// PostClearAll removes all student, payment and table-assignment data. While
// one clear is in flight further attempts are rejected to prevent duplicate
// submission.
func (h *Handler) PostClearAll(c *gin.Context) {
	if !h.clearing.CompareAndSwap(false, true) {
		redirect(c, "error", "A clear operation is already in progress", nil)
		return
	}
	defer h.clearing.Store(false)

	err := h.client.ClearAll(c.Request.Context())
	h.completeCommand(c, "clear", "all", "", err)

	if err != nil {
		log.Printf("Error clearing data: %v", err)
		redirect(c, "error", "Error clearing data: "+err.Error(), nil)
		return
	}
	redirect(c, "success", "All student data cleared successfully!", nil)
}
