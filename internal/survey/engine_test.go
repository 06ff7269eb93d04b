package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/stemsi/gamesurvey-backend/internal/model"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time         { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(c *fakeClock) *Engine {
	return NewEngine(DefaultPools, c.Now)
}

func answerKeys(pool []model.Question) []int {
	keys := make([]int, len(pool))
	for i, q := range pool {
		keys[i] = q.Answer
	}
	return keys
}

func TestPoolSizes(t *testing.T) {
	want := map[model.Tier]int{model.TierEasy: 10, model.TierMedium: 5, model.TierHard: 5}
	for tier, n := range want {
		if got := len(DefaultPools[tier]); got != n {
			t.Errorf("%s pool has %d questions, want %d", tier, got, n)
		}
		for i, q := range DefaultPools[tier] {
			if q.Answer < 0 || q.Answer >= len(q.Options) {
				t.Errorf("%s[%d] answer key %d out of range", tier, i, q.Answer)
			}
		}
	}
}

func TestStart(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)

	for _, tier := range []model.Tier{model.TierEasy, model.TierMedium, model.TierHard} {
		t.Run(string(tier), func(t *testing.T) {
			p := e.Start(tier)
			if p.Difficulty != tier {
				t.Errorf("Difficulty = %s, want %s", p.Difficulty, tier)
			}
			if p.CurrentQuestion != 0 {
				t.Errorf("CurrentQuestion = %d, want 0", p.CurrentQuestion)
			}
			if p.Answers == nil || len(p.Answers) != 0 {
				t.Errorf("Answers = %v, want empty non-nil slice", p.Answers)
			}
			if !p.StartTime.Equal(clock.Now()) {
				t.Errorf("StartTime = %v, want %v", p.StartTime, clock.Now())
			}
		})
	}

	t.Run("unknown tier behaves like easy", func(t *testing.T) {
		unknown := e.Start("impossible")
		easy := e.Start(model.TierEasy)
		if unknown.Difficulty != easy.Difficulty || unknown.CurrentQuestion != easy.CurrentQuestion || len(unknown.Answers) != len(easy.Answers) {
			t.Errorf("Start(unknown) = %+v, want %+v", unknown, easy)
		}
		q, err := e.Current(unknown)
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if q.Prompt != DefaultPools[model.TierEasy][0].Prompt {
			t.Errorf("first question = %q, want the first easy question", q.Prompt)
		}
	})
}

func TestTierForGamingTime(t *testing.T) {
	tests := []struct {
		in   string
		want model.Tier
	}{
		{"low_time", model.TierEasy},
		{"medium_time", model.TierMedium},
		{"high_time", model.TierHard},
		{"", model.TierEasy},
		{"all_the_time", model.TierEasy},
	}
	for _, tt := range tests {
		if got := TierForGamingTime(tt.in); got != tt.want {
			t.Errorf("TierForGamingTime(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"3", 3},
		{" 2 ", 2},
		{"", model.NoAnswer},
		{"   ", model.NoAnswer},
		{"two", model.NoAnswer},
		{"1.5", model.NoAnswer},
		{"7", 7},
	}
	for _, tt := range tests {
		if got := ParseAnswer(tt.in); got != tt.want {
			t.Errorf("ParseAnswer(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSubmitScenarios(t *testing.T) {
	tests := []struct {
		name      string
		tier      model.Tier
		answers   []int
		wantScore int
		wantMax   int
	}{
		{"easy all correct", model.TierEasy, []int{1, 3, 1, 0, 2, 3, 1, 0, 1, 2}, 10, 10},
		{"medium all correct", model.TierMedium, []int{0, 3, 1, 3, 0}, 5, 5},
		{"hard all correct", model.TierHard, []int{3, 2, 0, 2, 3}, 5, 5},
		{"medium all skipped", model.TierMedium, []int{-1, -1, -1, -1, -1}, 0, 5},
		{"hard mixed", model.TierHard, []int{3, 0, 0, -1, 9}, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(newFakeClock())
			p := e.Start(tt.tier)

			var outcome *model.SurveyOutcome
			for i, a := range tt.answers {
				out, err := e.Submit(&p, a)
				if err != nil {
					t.Fatalf("Submit #%d: %v", i, err)
				}
				if i < len(tt.answers)-1 && out != nil {
					t.Fatalf("Submit #%d completed early", i)
				}
				outcome = out
			}

			if outcome == nil {
				t.Fatal("last Submit did not complete the survey")
			}
			if outcome.Score != tt.wantScore || outcome.MaxScore != tt.wantMax {
				t.Errorf("score = %d/%d, want %d/%d", outcome.Score, outcome.MaxScore, tt.wantScore, tt.wantMax)
			}
			if outcome.Difficulty != tt.tier {
				t.Errorf("Difficulty = %s, want %s", outcome.Difficulty, tt.tier)
			}
		})
	}
}

func TestSubmitFewerThanPoolNeverCompletes(t *testing.T) {
	e := newTestEngine(newFakeClock())
	p := e.Start(model.TierEasy)
	keys := answerKeys(DefaultPools[model.TierEasy])

	for i := 0; i < len(keys)-1; i++ {
		out, err := e.Submit(&p, keys[i])
		if err != nil {
			t.Fatalf("Submit #%d: %v", i, err)
		}
		if out != nil {
			t.Fatalf("Submit #%d returned an outcome", i)
		}
		next, err := e.Current(p)
		if err != nil {
			t.Fatalf("Current after #%d: %v", i, err)
		}
		if next.Prompt != DefaultPools[model.TierEasy][i+1].Prompt {
			t.Errorf("next question after #%d = %q", i, next.Prompt)
		}
	}
	if p.CurrentQuestion != len(keys)-1 || len(p.Answers) != len(keys)-1 {
		t.Errorf("progress = %+v", p)
	}
}

func TestSubmitAfterCompletion(t *testing.T) {
	e := newTestEngine(newFakeClock())
	p := e.Start(model.TierMedium)
	for _, a := range []int{0, 0, 0, 0, 0} {
		if _, err := e.Submit(&p, a); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	before := len(p.Answers)
	out, err := e.Submit(&p, 1)
	if !errors.Is(err, ErrComplete) {
		t.Fatalf("Submit after completion err = %v, want ErrComplete", err)
	}
	if out != nil {
		t.Error("Submit after completion returned an outcome")
	}
	if len(p.Answers) != before {
		t.Error("Submit after completion mutated answers")
	}
	if _, err := e.Current(p); !errors.Is(err, ErrComplete) {
		t.Errorf("Current after completion err = %v, want ErrComplete", err)
	}
}

func TestStaleIndex(t *testing.T) {
	e := newTestEngine(newFakeClock())
	p := model.SurveyProgress{Difficulty: model.TierHard, CurrentQuestion: 42, Answers: []int{}}

	if _, err := e.Current(p); !errors.Is(err, ErrComplete) {
		t.Errorf("Current err = %v, want ErrComplete", err)
	}
	if _, err := e.Submit(&p, 0); !errors.Is(err, ErrComplete) {
		t.Errorf("Submit err = %v, want ErrComplete", err)
	}
	if p.CurrentQuestion != 42 || len(p.Answers) != 0 {
		t.Errorf("stale progress was mutated: %+v", p)
	}
}

func TestElapsedTimeRounding(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock)
	p := e.Start(model.TierMedium)

	for i := 0; i < 4; i++ {
		clock.Advance(10 * time.Second)
		if _, err := e.Submit(&p, 0); err != nil {
			t.Fatal(err)
		}
	}
	clock.Advance(2*time.Second + 345678*time.Microsecond)
	out, err := e.Submit(&p, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.TimeTaken != 42.35 {
		t.Errorf("TimeTaken = %v, want 42.35", out.TimeTaken)
	}
}

func TestScoreSkipsPositionsBeyondPool(t *testing.T) {
	pool := DefaultPools[model.TierMedium]
	answers := append(answerKeys(pool), 0, 3, 1)
	if got := Score(pool, answers); got != len(pool) {
		t.Errorf("Score = %d, want %d", got, len(pool))
	}
}
