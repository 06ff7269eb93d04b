package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
	"github.com/stemsi/gamesurvey-backend/internal/survey"
)

// Survey flow errors.
var (
	ErrNoSurvey       = errors.New("no survey in progress")
	ErrSurveyComplete = errors.New("survey already complete")
)

// SubmitResult is what happens after an answer is submitted: either the
// survey continues with Next, or it finished and Result was persisted.
type SubmitResult struct {
	Next   *model.SurveyQuestionView
	Result *model.Result
}

// Completed reports whether the submission finished the survey.
func (r *SubmitResult) Completed() bool {
	return r.Result != nil
}

// SurveyService runs the survey engine against session-held progress and
// writes the result ledger on completion.
type SurveyService struct {
	engine   *survey.Engine
	progress ProgressStore
	results  ResultStore
	feed     ResultPublisher
	log      zerolog.Logger
}

// NewSurveyService creates a new SurveyService. feed may be nil.
func NewSurveyService(
	engine *survey.Engine,
	progress ProgressStore,
	results ResultStore,
	feed ResultPublisher,
	log zerolog.Logger,
) *SurveyService {
	return &SurveyService{
		engine:   engine,
		progress: progress,
		results:  results,
		feed:     feed,
		log:      log.With().Str("component", "survey_service").Logger(),
	}
}

// Setup starts a fresh survey for the session, replacing any survey in progress.
func (s *SurveyService) Setup(ctx context.Context, sessionID, gamingTime string) (*model.SurveyProgress, error) {
	p := s.engine.Start(survey.TierForGamingTime(gamingTime))
	if err := s.progress.Save(ctx, sessionID, &p); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return &p, nil
}

// CurrentQuestion returns the question the session is on. It returns
// ErrNoSurvey when nothing was set up and ErrSurveyComplete when the stored
// index is already past the end.
func (s *SurveyService) CurrentQuestion(ctx context.Context, sessionID string) (*model.SurveyQuestionView, error) {
	p, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(*p)
}

// SubmitAnswer records rawOption for the current question. Empty or
// unparsable input counts as a skipped answer. When the last question is
// answered, the result is persisted exactly once and the progress discarded.
func (s *SurveyService) SubmitAnswer(ctx context.Context, sessionID string, accountID int, rawOption string) (*SubmitResult, error) {
	p, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.engine.Submit(p, survey.ParseAnswer(rawOption))
	if err != nil {
		if errors.Is(err, survey.ErrComplete) {
			return nil, ErrSurveyComplete
		}
		return nil, err
	}

	if outcome == nil {
		if err := s.progress.Save(ctx, sessionID, p); err != nil {
			return nil, fmt.Errorf("save progress: %w", err)
		}
		next, err := s.view(*p)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{Next: next}, nil
	}

	result := &model.Result{
		AccountID:  accountID,
		Difficulty: outcome.Difficulty,
		Score:      outcome.Score,
		MaxScore:   outcome.MaxScore,
		TimeTaken:  outcome.TimeTaken,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	if err := s.progress.Delete(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to discard finished survey progress")
	}

	s.log.Info().
		Int("account_id", accountID).
		Str("difficulty", string(result.Difficulty)).
		Int("score", result.Score).
		Int("max_score", result.MaxScore).
		Float64("time_taken", result.TimeTaken).
		Msg("Survey completed")

	if s.feed != nil {
		if err := s.feed.Publish(ctx, result); err != nil {
			s.log.Warn().Err(err).Int("result_id", result.ID).Msg("Failed to publish result")
		}
	}

	return &SubmitResult{Result: result}, nil
}

// Results lists an account's results, newest first.
func (s *SurveyService) Results(ctx context.Context, accountID int) ([]model.Result, error) {
	return s.results.ListByAccount(ctx, accountID)
}

func (s *SurveyService) load(ctx context.Context, sessionID string) (*model.SurveyProgress, error) {
	p, err := s.progress.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSurvey
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return p, nil
}

func (s *SurveyService) view(p model.SurveyProgress) (*model.SurveyQuestionView, error) {
	q, err := s.engine.Current(p)
	if err != nil {
		if errors.Is(err, survey.ErrComplete) {
			return nil, ErrSurveyComplete
		}
		return nil, err
	}
	return &model.SurveyQuestionView{
		Question:       q,
		Index:          p.CurrentQuestion,
		Total:          len(s.engine.Pool(p.Difficulty)),
		Difficulty:     survey.ResolveTier(string(p.Difficulty)),
		StartTimestamp: float64(p.StartTime.UnixNano()) / float64(time.Second),
	}, nil
}
