package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lunch-voting-api/models"
	"lunch-voting-api/voting"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

// menuView flattens a menu for responses; restaurant is the display name.
type menuView struct {
	ID           uint      `json:"id"`
	Restaurant   string    `json:"restaurant"`
	RestaurantID uint      `json:"restaurant_id"`
	File         string    `json:"file"`
	Votes        int       `json:"votes"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedOn    string    `json:"created_on"`
	CreatedAt    time.Time `json:"created_at"`
}

func newMenuView(m *models.Menu) menuView {
	v := menuView{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		File:         m.File,
		Votes:        m.Votes,
		UploadedBy:   m.UploadedBy,
		CreatedOn:    m.CreatedOn,
		CreatedAt:    m.CreatedAt,
	}
	if m.Restaurant != nil {
		v.Restaurant = m.Restaurant.Name
	}
	return v
}

const (
	// multipartSlack covers form fields and part headers on top of the file.
	multipartSlack  int64 = 1 << 20
	multipartMemory int64 = 8 << 20
)

// UploadMenu accepts a multipart menu file for one restaurant and today
func (h *Handler) UploadMenu(c *gin.Context) {
	limit := h.voting.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartSlack)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			fail(c, http.StatusBadRequest, "Invalid menu upload.", gin.H{
				"file": fmt.Sprintf("The submitted file is over the %s limit.", humanize.IBytes(uint64(limit))),
			})
			return
		case errors.Is(err, http.ErrNotMultipart):
		default:
			fail(c, http.StatusBadRequest, "Invalid menu upload.", gin.H{"file": "The submitted data was not a file."})
			return
		}
	}

	in := voting.UploadMenuInput{
		UploadedBy: strings.TrimSpace(c.PostForm("uploaded_by")),
	}

	if raw := strings.TrimSpace(c.PostForm("restaurant")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			fail(c, http.StatusBadRequest, "Invalid menu upload.", gin.H{
				"restaurant": "Incorrect type. Expected pk value, received " + strconv.Quote(raw) + ".",
			})
			return
		}
		in.RestaurantID = uint(id)
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			h.internalError(c, "open uploaded file", err)
			return
		}
		defer f.Close()
		in.FileName = fh.Filename
		in.Size = fh.Size
		in.Content = f
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		fail(c, http.StatusBadRequest, "Invalid menu upload.", gin.H{"file": "The submitted data was not a file."})
		return
	}

	menu, err := h.voting.UploadMenu(c.Request.Context(), in)
	if err != nil {
		var verr *voting.ValidationError
		switch {
		case errors.Is(err, voting.ErrDuplicateMenu):
			fail(c, http.StatusOK, "Menu already added.", nil)
		case errors.As(err, &verr):
			fail(c, http.StatusBadRequest, verr.Error(), verr.Fields)
		default:
			h.internalError(c, "upload menu", err)
		}
		return
	}
	ok(c, http.StatusCreated, "Menu successful uploaded", newMenuView(menu))
}

// ListTodayMenus returns today's menus, newest first (public)
func (h *Handler) ListTodayMenus(c *gin.Context) {
	menus, err := h.voting.TodayMenus(c.Request.Context())
	if err != nil {
		h.internalError(c, "list today's menus", err)
		return
	}
	views := make([]menuView, len(menus))
	for i := range menus {
		views[i] = newMenuView(&menus[i])
	}
	ok(c, http.StatusOK, "success", views)
}
