package handlers

import (
	"net/http"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// isAdmin reports whether the optional token belongs to an admin, so the
// public portfolio routes can also serve drafts to the admin screens.
func isAdmin(c *gin.Context) bool {
	return middleware.Role(c) == domain.RoleAdmin
}

func ListPortfolio(c *gin.Context) {
	list, err := portfolioService(c).List(c.Request.Context(), listFilter(c), isAdmin(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func PortfolioByCategory(c *gin.Context) {
	list, err := portfolioService(c).ByCategory(c.Request.Context(), c.Param("category"), isAdmin(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func GetPortfolioItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := portfolioService(c).Get(c.Request.Context(), id, isAdmin(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, item, "")
}

func CreatePortfolioItem(c *gin.Context) {
	var in models.PortfolioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	item, err := portfolioService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, item, "Portfolio item created successfully")
}

func UpdatePortfolioItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.PortfolioInput
	if !BindJSONOrError(c, &in) {
		return
	}
	item, err := portfolioService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, item, "Portfolio item updated successfully")
}

func DeletePortfolioItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := portfolioService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil, "Portfolio item deleted successfully")
}

func UploadPortfolioImage(c *gin.Context) {
	uploadOne(c, "image", "portfolio", nil)
}
