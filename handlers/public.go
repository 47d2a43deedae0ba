package handlers

import (
	"net/http"

	"lunch-voting-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports process and database liveness
func (h *Handler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "Lunch Voting API",
		"version": "1.0.0",
		"today":   h.voting.Today(),
	})
}

// GetStateMachineInfo describes the per-day vote lifecycle
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	terminal := []statemachine.VoteState{}
	for _, s := range statemachine.States() {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	ok(c, http.StatusOK, "Daily vote lifecycle", gin.H{
		"state_machine":   info,
		"terminal_states": terminal,
		"scope":           "one employee, one calendar day",
	})
}
