package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuelboada21/PruebaCVisual/internal/http/middleware"
	"github.com/samuelboada21/PruebaCVisual/internal/http/validation"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/users"
	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type LoginHandler struct {
	Users *users.Service
}

func NewLoginHandler(svc *users.Service) *LoginHandler {
	return &LoginHandler{Users: svc}
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /login
func (h *LoginHandler) Post(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("invalid login data", validation.FromBindError(err, &in)))
		return
	}

	token, err := h.Users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
