package handler

import (
	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"
)

// ScoreHandler handles answer scoring HTTP requests
type ScoreHandler struct {
	service   service.ScoringService
	validator *validation.Validator
}

// NewScoreHandler creates a new ScoreHandler instance
func NewScoreHandler(service service.ScoringService, validator *validation.Validator) *ScoreHandler {
	return &ScoreHandler{
		service:   service,
		validator: validator,
	}
}

// SubmitScore godoc
// @Summary Submit answers for a challenge and get them graded
// @Tags score
// @Accept json
// @Produce json
// @Param request body dto.SubmitScoreRequest true "Answers to grade"
// @Success 201 {object} dto.ScoreResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /scores [post]
func (h *ScoreHandler) SubmitScore(c *fiber.Ctx) error {
	ownerID, err := learnerID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	if errs := h.validator.ValidateSubmitScoreRequest(&req); len(errs) > 0 {
		return errs
	}

	submissions := make([]domain.AnswerSubmission, len(req.Answers))
	for i, a := range req.Answers {
		submissions[i] = domain.AnswerSubmission{Question: a.Question, Answer: a.Answer}
	}

	record, err := h.service.SubmitScore(c.Context(), ownerID, req.ChallengeID, submissions)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewScoreResponse(record))
}

// ListMyScores godoc
// @Summary List the authenticated learner's scores, newest first
// @Tags score
// @Produce json
// @Success 200 {array} dto.ScoreResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /scores/me [get]
func (h *ScoreHandler) ListMyScores(c *fiber.Ctx) error {
	ownerID, err := learnerID(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListScores(c.Context(), ownerID)
	if err != nil {
		return err
	}

	responses := make([]*dto.ScoreResponse, len(records))
	for i, record := range records {
		responses[i] = dto.NewScoreResponse(record)
	}
	return c.JSON(responses)
}
