package handlers

import (
	"net/http"
	"strings"

	"cinecraft/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func ListServices(c *gin.Context) {
	list, err := catalogService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func SearchServices(c *gin.Context) {
	list, err := catalogService(c).Search(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func ServicesByCategory(c *gin.Context) {
	list, err := catalogService(c).ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func GetService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc, err := catalogService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, svc, "")
}

func CreateService(c *gin.Context) {
	var in models.ServiceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc, err := catalogService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, svc, "Service created successfully")
}

func UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.ServiceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc, err := catalogService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, svc, "Service updated successfully")
}

func DeleteService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil, "Service deleted successfully")
}

func UploadServiceImage(c *gin.Context) {
	uploadOne(c, "image", "services", nil)
}
