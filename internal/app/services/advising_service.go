package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iuermili/LeCourse/internal/app/models"
	"github.com/iuermili/LeCourse/internal/app/models/dto"
	"github.com/iuermili/LeCourse/internal/app/sessions"
	"github.com/iuermili/LeCourse/internal/pkg/apperrors"
	"github.com/iuermili/LeCourse/internal/pkg/auth"
	"github.com/iuermili/LeCourse/internal/pkg/llm"
)

// CatalogSource provides the catalog rows the advising flow reconciles against
type CatalogSource interface {
	GetAll(ctx context.Context) ([]models.Course, error)
}

// RequirementSource provides required-credit totals per major
type RequirementSource interface {
	RequiredCreditHours(ctx context.Context, major string) (int, error)
}

// ModelClient is the model round-trip surface used by the advising flow
type ModelClient interface {
	Generate(ctx context.Context, prompt string, contToken json.RawMessage) (string, json.RawMessage, error)
	Chat(ctx context.Context, messages []llm.Message, contToken json.RawMessage) (string, json.RawMessage, error)
}

// AdvisingService defines the interface for student advising operations
type AdvisingService interface {
	InitStudent(ctx context.Context, req *dto.InitStudentRequest) (*dto.InitStudentResponse, error)
	FetchClasses(ctx context.Context, sessionToken string, req *dto.FetchClassesRequest) (*dto.FetchClassesResponse, error)
	Chat(ctx context.Context, sessionToken string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

// advisingServiceImpl implements the AdvisingService interface
type advisingServiceImpl struct {
	catalogRepo      CatalogSource
	requirementRepo  RequirementSource
	model            ModelClient
	sessionStore     *sessions.Store
	tokenService     *auth.TokenService
	surfaceUnmatched bool
	logger           zerolog.Logger
}

// NewAdvisingService creates a new advising service instance
func NewAdvisingService(
	catalogRepo CatalogSource,
	requirementRepo RequirementSource,
	model ModelClient,
	sessionStore *sessions.Store,
	tokenService *auth.TokenService,
	surfaceUnmatched bool,
	logger zerolog.Logger,
) AdvisingService {
	return &advisingServiceImpl{
		catalogRepo:      catalogRepo,
		requirementRepo:  requirementRepo,
		model:            model,
		sessionStore:     sessionStore,
		tokenService:     tokenService,
		surfaceUnmatched: surfaceUnmatched,
		logger:           logger,
	}
}

// InitStudent reconciles the student's free-text transcript against the
// catalog and builds the initial advising view. The pipeline is strictly
// sequential: prompt, model call, parse, resolve, shape.
func (s *advisingServiceImpl) InitStudent(ctx context.Context, req *dto.InitStudentRequest) (*dto.InitStudentResponse, error) {
	if strings.TrimSpace(req.Major) == "" || strings.TrimSpace(req.CoursesTaken) == "" {
		return nil, apperrors.NewValidationError("Major and courses taken are required")
	}

	catalog, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load catalog")
		return nil, err
	}

	prompt := llm.BuildMatchPrompt(llm.CatalogSnapshot(catalog), req.CoursesTaken)

	reply, contToken, err := s.model.Generate(ctx, prompt, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Transcript matching call failed")
		return nil, err
	}

	identifiers := ParseCourseCodes(reply)
	matched, unmatched := ResolveAgainstCatalog(catalog, identifiers)

	takenIDs := make([]string, 0, len(matched))
	for _, course := range matched {
		takenIDs = append(takenIDs, course.ID)
	}

	s.logger.Debug().
		Str("major", req.Major).
		Int("matched", len(matched)).
		Int("unmatched", len(unmatched)).
		Msg("Transcript reconciled")

	creditsTaken, creditsRequired := MajorCredits(catalog, req.Major, takenIDs)

	// The requirements table, when populated for this major, overrides the
	// field-wide credit total.
	requiredFromTable, err := s.requirementRepo.RequiredCreditHours(ctx, req.Major)
	if err != nil {
		return nil, err
	}
	if requiredFromTable > 0 {
		creditsRequired = requiredFromTable
	}

	session := s.sessionStore.Create(req.Major, takenIDs, contToken)

	tokenString, err := s.tokenService.Generate(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	resp := &dto.InitStudentResponse{
		SessionToken:         tokenString,
		CoursesTaken:         matched,
		CreditsByRequirement: CreditsByRequirement(matched),
		MajorCredits:         dto.MajorCredits{Taken: creditsTaken, Required: creditsRequired},
		RemainingCourses:     EligibleCourses(catalog, takenIDs),
	}
	if s.surfaceUnmatched {
		resp.UnmatchedCourses = unmatched
	}

	return resp, nil
}

// FetchClasses filters the catalog by requirement criteria and, when interest
// text is given, by the model's relevant-course picks. A session token scopes
// the result to the student's prerequisite-eligible view and lets the model
// call reuse the session's continuation token instead of resending the
// catalog snapshot.
func (s *advisingServiceImpl) FetchClasses(ctx context.Context, sessionToken string, req *dto.FetchClassesRequest) (*dto.FetchClassesResponse, error) {
	if len(req.Criteria) == 0 && strings.TrimSpace(req.InterestedTopics) == "" {
		return nil, apperrors.NewValidationError("Either criteria or interested topics are required")
	}

	catalog, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load catalog")
		return nil, err
	}

	view := catalog
	var session sessions.Session
	haveSession := false
	if sessionToken != "" {
		sessionID, err := s.tokenService.Validate(sessionToken)
		if err != nil {
			return nil, err
		}
		session, err = s.sessionStore.Get(sessionID)
		if err != nil {
			return nil, err
		}
		haveSession = true
		view = EligibleCourses(catalog, session.TakenCourseIDs)
	}

	var recommended []models.Course
	var unmatched []string
	var recommendedIDs []string

	if strings.TrimSpace(req.InterestedTopics) != "" {
		snapshot := llm.CatalogSnapshot(catalog)
		var contToken json.RawMessage
		if haveSession && len(session.ContinuationToken) > 0 {
			// The continuation token already carries the catalog context
			snapshot = ""
			contToken = session.ContinuationToken
		}

		prompt := llm.BuildInterestPrompt(snapshot, req.InterestedTopics)

		reply, newToken, err := s.model.Generate(ctx, prompt, contToken)
		if err != nil {
			s.logger.Error().Err(err).Msg("Interest matching call failed")
			return nil, err
		}
		if haveSession {
			s.sessionStore.SetContinuationToken(session.ID, newToken)
		}

		recommendedIDs = ParseCourseCodes(reply)
		recommended, unmatched = ResolveAgainstCatalog(view, recommendedIDs)
	}

	resp := &dto.FetchClassesResponse{
		LLMRecommendedCourses: recommended,
		FilteredCourses:       FilterCatalog(view, req.Criteria, recommendedIDs),
	}
	if s.surfaceUnmatched {
		resp.UnmatchedCourses = unmatched
	}

	return resp, nil
}

// Chat relays one student turn to the model. The first turn of a session
// seeds the conversation with the catalog as a system message; later turns
// rely on the session's continuation token.
func (s *advisingServiceImpl) Chat(ctx context.Context, sessionToken string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidationError("Message is required")
	}

	sessionID, err := s.tokenService.Validate(sessionToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionStore.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var messages []llm.Message
	if len(session.ContinuationToken) == 0 {
		catalog, err := s.catalogRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		messages = append(messages, llm.Message{
			Role:    "system",
			Content: llm.AdvisorSystemPrompt(llm.CatalogSnapshot(catalog)),
		})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})

	reply, newToken, err := s.model.Chat(ctx, messages, session.ContinuationToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("Advisor chat call failed")
		return nil, err
	}

	s.sessionStore.SetContinuationToken(session.ID, newToken)

	return &dto.ChatResponse{Response: reply}, nil
}
