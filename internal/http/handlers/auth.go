package handlers

import (
	"net/http"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func Login(c *gin.Context) {
	var in models.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := authService(c).Login(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, res, "Login successful")
}

func Register(c *gin.Context) {
	var in models.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := authService(c).Register(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, res, "Registration successful")
}

func Me(c *gin.Context) {
	u, err := authService(c).Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, u, "")
}
