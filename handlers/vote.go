package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lunch-voting-api/middleware"
	"lunch-voting-api/voting"

	"github.com/gin-gonic/gin"
)

// Vote casts the caller's single vote of the day for a menu
func (h *Handler) Vote(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("menu_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusNotFound, "Menu not found.", nil)
		return
	}

	res, err := h.voting.CastVote(c.Request.Context(), uint(menuID), middleware.GetIdentity(c))
	switch {
	case errors.Is(err, voting.ErrNotAnEmployee):
		fail(c, http.StatusForbidden, "Only employees can vote.", nil)
		return
	case errors.Is(err, voting.ErrMenuNotFound):
		fail(c, http.StatusNotFound, "Menu not found.", nil)
		return
	case err != nil:
		h.internalError(c, "cast vote", err)
		return
	}

	if res.AlreadyVoted {
		fail(c, http.StatusOK, "You already voted!", nil)
		return
	}
	view := voteView{
		Detail:       fmt.Sprintf("You voted for the restaurant with the number %d", menuID),
		MenuID:       res.Menu.ID,
		RestaurantID: res.Menu.RestaurantID,
		Votes:        res.Menu.Votes,
	}
	if res.Menu.Restaurant != nil {
		view.Restaurant = res.Menu.Restaurant.Name
	}
	ok(c, http.StatusOK, "You voted successfully!", view)
}

// voteView confirms which menu and restaurant received the vote.
type voteView struct {
	Detail       string `json:"detail"`
	MenuID       uint   `json:"menu_id"`
	RestaurantID uint   `json:"restaurant_id"`
	Restaurant   string `json:"restaurant"`
	Votes        int    `json:"votes"`
}

type resultView struct {
	ID         uint      `json:"id"`
	File       string    `json:"file"`
	Restaurant string    `json:"restaurant"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Results reports today's winning restaurant
func (h *Handler) Results(c *gin.Context) {
	menu, err := h.voting.TodayResult(c.Request.Context())
	if errors.Is(err, voting.ErrNoMenuToday) {
		fail(c, http.StatusOK, "Results not found! no menus found for today.", nil)
		return
	}
	if err != nil {
		h.internalError(c, "compute results", err)
		return
	}

	view := resultView{ID: menu.ID, File: menu.File, Votes: menu.Votes, CreatedAt: menu.CreatedAt}
	if menu.Restaurant != nil {
		view.Restaurant = menu.Restaurant.Name
	}
	ok(c, http.StatusOK, "The restaurant chosen for today.", view)
}
