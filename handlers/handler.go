package handlers

import (
	"log/slog"
	"net/http"

	"lunch-voting-api/middleware"
	"lunch-voting-api/voting"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries the dependencies every route needs.
type Handler struct {
	db     *gorm.DB
	voting *voting.Service
	tokens *middleware.TokenIssuer
	logger *slog.Logger
}

func New(db *gorm.DB, svc *voting.Service, tokens *middleware.TokenIssuer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{db: db, voting: svc, tokens: tokens, logger: logger}
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Msg     string `json:"msg"`
	Data    any    `json:"data"`
	Success bool   `json:"success"`
}

func ok(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Response{Msg: msg, Data: data, Success: true})
}

func fail(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Response{Msg: msg, Data: data, Success: false})
}

// internalError logs err and answers a generic 500.
func (h *Handler) internalError(c *gin.Context, what string, err error) {
	h.logger.Error(what,
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	fail(c, http.StatusInternalServerError, "Something went wrong. Please try again later.", nil)
}
