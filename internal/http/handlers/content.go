package handlers

import (
	"net/http"

	"cinecraft/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func GetContent(c *gin.Context) {
	content, err := contentService(c).Get(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, content, "")
}

func UpdateContent(c *gin.Context) {
	var in models.SiteContent
	if !BindJSONOrError(c, &in) {
		return
	}
	content, err := contentService(c).Update(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, content, "Content updated successfully")
}
