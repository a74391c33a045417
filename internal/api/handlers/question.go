package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petoverflow/internal/api/middleware"
	"petoverflow/internal/models"
	"petoverflow/internal/service"
	"petoverflow/pkg/response"
)

type QuestionHandler struct {
	questionService service.QuestionService
	answerService   service.AnswerService
	voteService     service.VoteService
}

func NewQuestionHandler(
	questionService service.QuestionService,
	answerService service.AnswerService,
	voteService service.VoteService,
) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		answerService:   answerService,
		voteService:     voteService,
	}
}

// Ask godoc
// @Summary Submit a question
// @Tags questions
// @Accept json
// @Produce json
// @Param request body models.AskRequest true "Question text and topics"
// @Success 201 {object} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions [post]
func (h *QuestionHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input data", err.Error())
		return
	}

	question, err := h.questionService.Ask(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GetQuestion godoc
// @Summary Get a question by id
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} models.QuestionResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(c.Request.Context(), questionID, middleware.UserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// Newest godoc
// @Summary List the newest questions
// @Tags questions
// @Produce json
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions [get]
func (h *QuestionHandler) Newest(c *gin.Context) {
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	questions, err := h.questionService.Newest(c.Request.Context(), middleware.UserID(c), size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// Best godoc
// @Summary List all questions, best rated first
// @Tags questions
// @Produce json
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/best [get]
func (h *QuestionHandler) Best(c *gin.Context) {
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	questions, err := h.questionService.Best(c.Request.Context(), middleware.UserID(c), size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// Answers godoc
// @Summary List a question's answers, best first
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.AnswerResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/{id}/answers [get]
func (h *QuestionHandler) Answers(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	answers, err := h.answerService.AnswersFor(c.Request.Context(), middleware.UserID(c), questionID, size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answers)
}

// PostAnswer godoc
// @Summary Answer a question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body models.AnswerRequest true "Answer text"
// @Success 201 {object} models.AnswerResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/{id}/answers [post]
func (h *QuestionHandler) PostAnswer(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input data", err.Error())
		return
	}

	answer, err := h.answerService.PostAnswer(c.Request.Context(), middleware.UserID(c), questionID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// Vote godoc
// @Summary Vote on a question
// @Description Cast an up or down vote, or "none" to withdraw a vote. Voting
// @Description on your own question is ignored.
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param request body models.VoteRequest true "Vote direction: up, down or none"
// @Success 200 {object} models.QuestionResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /questions/{id}/vote [put]
func (h *QuestionHandler) Vote(c *gin.Context) {
	questionID, ok := idParam(c, "id")
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
		err = h.voteService.RemoveQuestionVote(ctx, questionID, voterID)
	} else {
		err = h.voteService.CastQuestionVote(ctx, questionID, voterID, models.VoteType(req.Vote))
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	question, err := h.questionService.GetQuestion(ctx, questionID, voterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}
