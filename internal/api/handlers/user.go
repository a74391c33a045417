package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petoverflow/internal/adapters/storage"
	"petoverflow/internal/api/middleware"
	"petoverflow/internal/models"
	"petoverflow/internal/service"
	"petoverflow/pkg/response"
)

const maxPhotoSize = 5 << 20 // 5 MiB

type UserHandler struct {
	userService     service.UserService
	questionService service.QuestionService
	answerService   service.AnswerService
	storage         *storage.MinIOClient
}

func NewUserHandler(userService service.UserService, questionService service.QuestionService, answerService service.AnswerService, storage *storage.MinIOClient) *UserHandler {
	return &UserHandler{
		userService:     userService,
		questionService: questionService,
		answerService:   answerService,
		storage:         storage,
	}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Description Only the fields present in the payload change.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid input data", err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadPhoto godoc
// @Summary Upload a profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Photo file"
// @Success 200 {object} models.PhotoResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/profile/photo [post]
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing photo file", err.Error())
		return
	}
	if file.Size > maxPhotoSize {
		response.Error(c, http.StatusBadRequest, "Photo too large", "")
		return
	}

	url, err := h.storage.UploadPhoto(c.Request.Context(), file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Photo upload failed", "")
		return
	}

	if err := h.userService.UpdatePhoto(c.Request.Context(), middleware.UserID(c), url); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PhotoResponse{PhotoURL: url})
}

// GetUser godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Questions godoc
// @Summary List a user's questions, newest first
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.QuestionResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/questions [get]
func (h *UserHandler) Questions(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	questions, err := h.questionService.ByAuthor(c.Request.Context(), middleware.UserID(c), userID, size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// Answers godoc
// @Summary List a user's answers, newest first
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.AnswerResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/answers [get]
func (h *UserHandler) Answers(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	answers, err := h.answerService.ByAuthor(c.Request.Context(), middleware.UserID(c), userID, size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answers)
}

// Leaders godoc
// @Summary List users ranked by rating
// @Tags users
// @Produce json
// @Param size query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.UserResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/leaders [get]
func (h *UserHandler) Leaders(c *gin.Context) {
	size, offset, ok := paging(c)
	if !ok {
		return
	}

	leaders, err := h.userService.Leaders(c.Request.Context(), size, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaders)
}
