package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petoverflow/internal/api/middleware"
	"petoverflow/internal/service"
	"petoverflow/pkg/response"
)

type TopicHandler struct {
	topicService    service.TopicService
	questionService service.QuestionService
}

func NewTopicHandler(topicService service.TopicService, questionService service.QuestionService) *TopicHandler {
	return &TopicHandler{topicService: topicService, questionService: questionService}
}

// AllTopics godoc
// @Summary List every topic in use
// @Tags topics
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /topics [get]
func (h *TopicHandler) AllTopics(c *gin.Context) {
	topics, err := h.topicService.AllTopics(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// PopularTopics godoc
// @Summary List topics ranked by the summed ratings of their questions
// @Tags topics
// @Produce json
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.TopicScore
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /topics/popular [get]
func (h *TopicHandler) PopularTopics(c *gin.Context) {
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	topics, err := h.topicService.PopularTopics(c.Request.Context(), size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// Questions godoc
// @Summary List a topic's questions, best rated first
// @Tags topics
// @Produce json
// @Param topic path string true "Topic name"
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /topics/{topic}/questions [get]
func (h *TopicHandler) Questions(c *gin.Context) {
	topic := c.Param("topic")
	if topic == "" {
		response.Error(c, http.StatusBadRequest, "Missing topic parameter", "")
		return
	}
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	questions, err := h.questionService.ByTopic(c.Request.Context(), middleware.UserID(c), topic, size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}
