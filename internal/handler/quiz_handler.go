// Package handler exposes the pipeline over HTTP.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service   service.QuizGenerationService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizGenerationService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// learnerID pulls the authenticated learner id set by the auth middleware.
func learnerID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || id == "" {
		return "", domain.NewUnauthorizedError("learner is not authenticated")
	}
	return id, nil
}

// GenerateQuiz godoc
// @Summary Generate a quiz for a learning content item
// @Description Returns the quiz for the given content, generating it on first request. Repeated requests return the same quiz.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Content to generate a quiz from"
// @Success 200 {object} dto.QuizResponse "Existing quiz"
// @Success 201 {object} dto.QuizResponse "Newly generated quiz"
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	ownerID, err := learnerID(c)
	if err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if errs := h.validator.ValidateGenerateQuizRequest(req.ContentID); len(errs) > 0 {
		return errs
	}

	record, created, err := h.service.GenerateQuiz(c.Context(), ownerID, req.ContentID)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.NewQuizResponse(record))
}

// GetQuiz godoc
// @Summary Get a generated quiz by id
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	ownerID, err := learnerID(c)
	if err != nil {
		return err
	}

	quizID := c.Params("id")
	if errs := h.validator.ValidateQuizIDParam(quizID); len(errs) > 0 {
		return errs
	}

	record, err := h.service.GetQuizRecord(c.Context(), ownerID, quizID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(record))
}
