// Package survey walks a fixed question pool one answer at a time and scores
// the attempt when the last answer arrives.
//
// The engine holds no per-attempt state. Every operation takes the
// model.SurveyProgress value and returns the next one, so the caller decides
// where progress lives.
package survey

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stemsi/gamesurvey-backend/internal/model"
)

// ErrComplete is returned when progress has already walked past the last question.
var ErrComplete = errors.New("survey already complete")

// Engine serves questions from a set of tier pools.
type Engine struct {
	pools map[model.Tier][]model.Question
	now   func() time.Time
}

// NewEngine creates an Engine over the given pools. A nil clock means time.Now.
func NewEngine(pools map[model.Tier][]model.Question, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{pools: pools, now: now}
}

// NewDefaultEngine creates an Engine over DefaultPools using the wall clock.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultPools, nil)
}

// ResolveTier maps a tier name to a known tier, falling back to easy.
func ResolveTier(name string) model.Tier {
	switch t := model.Tier(name); t {
	case model.TierEasy, model.TierMedium, model.TierHard:
		return t
	default:
		return model.TierEasy
	}
}

// TierForGamingTime maps a self-reported gaming-time category to a tier.
// Unknown or empty categories mean low_time.
func TierForGamingTime(gamingTime string) model.Tier {
	switch model.GamingTime(gamingTime) {
	case model.GamingTimeMedium:
		return model.TierMedium
	case model.GamingTimeHigh:
		return model.TierHard
	default:
		return model.TierEasy
	}
}

// ParseAnswer coerces a submitted option to an index. Empty or non-integer
// input becomes model.NoAnswer.
func ParseAnswer(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.NoAnswer
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return model.NoAnswer
	}
	return n
}

// Pool returns the questions for a tier, resolving unknown tiers to easy.
func (e *Engine) Pool(tier model.Tier) []model.Question {
	return e.pools[ResolveTier(string(tier))]
}

// Start begins a new attempt for the tier.
func (e *Engine) Start(tier model.Tier) model.SurveyProgress {
	return model.SurveyProgress{
		Difficulty:      ResolveTier(string(tier)),
		StartTime:       e.now(),
		CurrentQuestion: 0,
		Answers:         []int{},
	}
}

// Current returns the question at the progress index, or ErrComplete.
func (e *Engine) Current(p model.SurveyProgress) (model.Question, error) {
	pool := e.Pool(p.Difficulty)
	if p.CurrentQuestion < 0 || p.CurrentQuestion >= len(pool) {
		return model.Question{}, ErrComplete
	}
	return pool[p.CurrentQuestion], nil
}

// Submit records one answer and advances p. When the answer is the last one
// it returns the scored outcome; otherwise the outcome is nil and the caller
// continues with Current. Progress already past the end yields ErrComplete
// and is left untouched.
func (e *Engine) Submit(p *model.SurveyProgress, answer int) (*model.SurveyOutcome, error) {
	pool := e.Pool(p.Difficulty)
	if p.CurrentQuestion < 0 || p.CurrentQuestion >= len(pool) {
		return nil, ErrComplete
	}

	p.Answers = append(p.Answers, answer)
	p.CurrentQuestion++

	if p.CurrentQuestion < len(pool) {
		return nil, nil
	}

	return &model.SurveyOutcome{
		Difficulty: ResolveTier(string(p.Difficulty)),
		Score:      Score(pool, p.Answers),
		MaxScore:   len(pool),
		TimeTaken:  roundSeconds(e.now().Sub(p.StartTime)),
	}, nil
}

// Score counts positional matches between answers and the pool's answer keys.
// Answers beyond the pool are ignored.
func Score(pool []model.Question, answers []int) int {
	score := 0
	for i, a := range answers {
		if i < len(pool) && a == pool[i].Answer {
			score++
		}
	}
	return score
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
