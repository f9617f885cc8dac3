package handlers

import (
	"net/http"

	"cinecraft/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func CreateFeedback(c *gin.Context) {
	var in models.FeedbackInput
	if !BindJSONOrError(c, &in) {
		return
	}
	fb, err := feedbackService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, fb, "Thank you for your feedback! It will be reviewed shortly.")
}

func ApprovedFeedback(c *gin.Context) {
	list, err := feedbackService(c).Approved(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func FeedbackByCategory(c *gin.Context) {
	list, err := feedbackService(c).ByCategory(c.Request.Context(), c.Param("category"), queryInt(c, "limit"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func FeedbackStats(c *gin.Context) {
	st, err := feedbackService(c).Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, st, "")
}

func ListFeedback(c *gin.Context) {
	list, err := feedbackService(c).List(c.Request.Context(), listFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func GetFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	fb, err := feedbackService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, fb, "")
}

func UpdateFeedbackStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	fb, err := feedbackService(c).UpdateStatus(c.Request.Context(), id, p.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, fb, "Feedback status updated successfully")
}

func DeleteFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := feedbackService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil, "Feedback deleted successfully")
}
