package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petoverflow/internal/api/middleware"
	"petoverflow/internal/models"
	"petoverflow/internal/service"
	"petoverflow/pkg/response"
)

type AnswerHandler struct {
	answerService service.AnswerService
	voteService   service.VoteService
}

func NewAnswerHandler(answerService service.AnswerService, voteService service.VoteService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, voteService: voteService}
}

// GetAnswer godoc
// @Summary Get an answer by id
// @Tags answers
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} models.AnswerResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /answers/{id} [get]
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	answerID, ok := idParam(c, "id")
	if !ok {
		return
	}

	answer, err := h.answerService.GetAnswer(c.Request.Context(), answerID, middleware.UserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

// Vote godoc
// @Summary Vote on an answer
// @Description Cast an up or down vote, or "none" to withdraw a vote.
// @Tags answers
// @Accept json
// @Produce json
// @Param id path int true "Answer ID"
// @Param request body models.VoteRequest true "Vote direction: up, down or none"
// @Success 200 {object} models.AnswerResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /answers/{id}/vote [put]
func (h *AnswerHandler) Vote(c *gin.Context) {
	answerID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input data", err.Error())
		return
	}

	voterID := middleware.UserID(c)
	ctx := c.Request.Context()

	var err error
	if req.Vote == "none" {
		err = h.voteService.RemoveAnswerVote(ctx, answerID, voterID)
	} else {
		err = h.voteService.CastAnswerVote(ctx, answerID, voterID, models.VoteType(req.Vote))
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	answer, err := h.answerService.GetAnswer(ctx, answerID, voterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}
