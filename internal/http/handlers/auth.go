package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuelboada21/PruebaCVisual/internal/http/middleware"
	"github.com/samuelboada21/PruebaCVisual/internal/http/validation"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/users"
	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type RegisterHandler struct {
	Users *users.Service
}

func NewRegisterHandler(svc *users.Service) *RegisterHandler {
	return &RegisterHandler{Users: svc}
}

type registerInput struct {
	Name     string `json:"name" binding:"required,max=50"`
	Surname  string `json:"surname" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// POST /registro
func (h *RegisterHandler) Post(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("invalid registration data", validation.FromBindError(err, &in)))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), users.RegisterInput{
		Name:     in.Name,
		Surname:  in.Surname,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user registered successfully",
		"user_id": u.ID,
	})
}
