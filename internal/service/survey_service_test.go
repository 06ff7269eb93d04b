package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/survey"
	"github.com/stemsi/gamesurvey-backend/internal/testutil"
)

type surveyFixture struct {
	svc      *SurveyService
	progress *testutil.Progress
	results  *testutil.Results
	feed     *testutil.Feed
	now      time.Time
}

func newSurveyFixture() *surveyFixture {
	f := &surveyFixture{
		progress: testutil.NewProgress(),
		feed:     &testutil.Feed{},
		now:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	accounts := testutil.NewAccounts()
	accounts.Put(model.Account{ID: 1, Username: "player"})
	f.results = testutil.NewResults(accounts)
	clock := func() time.Time { return f.now }
	f.svc = NewSurveyService(survey.NewEngine(survey.DefaultPools, clock), f.progress, f.results, f.feed, testLog)
	return f
}

func TestSurveyFlowMedium(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture()

	p, err := f.svc.Setup(ctx, "sess", "medium_time")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if p.Difficulty != model.TierMedium || p.CurrentQuestion != 0 || len(p.Answers) != 0 {
		t.Fatalf("progress = %+v, want fresh medium survey", p)
	}

	view, err := f.svc.CurrentQuestion(ctx, "sess")
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	if view.Index != 0 || view.Total != 5 {
		t.Errorf("view = %d/%d, want 0/5", view.Index, view.Total)
	}
	if view.StartTimestamp != float64(f.now.Unix()) {
		t.Errorf("StartTimestamp = %v, want %v", view.StartTimestamp, float64(f.now.Unix()))
	}

	// Key is [0,3,1,3,0]; get the first two right then miss the rest.
	answers := []string{"0", "3", "0", "", "abc"}
	var last *SubmitResult
	for i, a := range answers {
		f.now = f.now.Add(10 * time.Second)
		last, err = f.svc.SubmitAnswer(ctx, "sess", 1, a)
		if err != nil {
			t.Fatalf("SubmitAnswer(%d): %v", i, err)
		}
		if i < len(answers)-1 {
			if last.Completed() || last.Next.Index != i+1 {
				t.Fatalf("after answer %d: %+v, want next index %d", i, last, i+1)
			}
		}
	}

	if !last.Completed() {
		t.Fatal("survey should be complete")
	}
	res := last.Result
	if res.Score != 2 || res.MaxScore != 5 || res.Difficulty != model.TierMedium {
		t.Errorf("result = %+v, want 2/5 medium", res)
	}
	if res.TimeTaken != 50 {
		t.Errorf("TimeTaken = %v, want 50", res.TimeTaken)
	}
	if f.results.Len() != 1 {
		t.Errorf("persisted results = %d, want 1", f.results.Len())
	}
	if len(f.feed.Published) != 1 {
		t.Errorf("published results = %d, want 1", len(f.feed.Published))
	}

	if _, err := f.svc.CurrentQuestion(ctx, "sess"); !errors.Is(err, ErrNoSurvey) {
		t.Errorf("CurrentQuestion after completion = %v, want ErrNoSurvey", err)
	}
	if _, err := f.svc.SubmitAnswer(ctx, "sess", 1, "0"); !errors.Is(err, ErrNoSurvey) {
		t.Errorf("SubmitAnswer after completion = %v, want ErrNoSurvey", err)
	}
	if f.results.Len() != 1 {
		t.Errorf("extra submission persisted a result")
	}

	listed, err := f.svc.Results(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].Username != "player" {
		t.Errorf("Results = %+v, want one result for player", listed)
	}
}

func TestSurveyEasyAllCorrect(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture()

	if _, err := f.svc.Setup(ctx, "sess", "low_time"); err != nil {
		t.Fatal(err)
	}
	var last *SubmitResult
	for i, q := range survey.DefaultPools[model.TierEasy] {
		var err error
		last, err = f.svc.SubmitAnswer(ctx, "sess", 1, " "+strconv.Itoa(q.Answer)+" ")
		if err != nil {
			t.Fatalf("SubmitAnswer(%d): %v", i, err)
		}
	}
	if !last.Completed() || last.Result.Score != 10 || last.Result.MaxScore != 10 {
		t.Errorf("result = %+v, want 10/10", last.Result)
	}
}

func TestSurveyUnknownGamingTimeFallsBackToEasy(t *testing.T) {
	f := newSurveyFixture()
	p, err := f.svc.Setup(context.Background(), "sess", "all_the_time")
	if err != nil {
		t.Fatal(err)
	}
	if p.Difficulty != model.TierEasy {
		t.Errorf("Difficulty = %q, want easy", p.Difficulty)
	}
}

func TestSurveySetupRestarts(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture()

	if _, err := f.svc.Setup(ctx, "sess", "high_time"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.SubmitAnswer(ctx, "sess", 1, "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Setup(ctx, "sess", "low_time"); err != nil {
		t.Fatal(err)
	}
	view, err := f.svc.CurrentQuestion(ctx, "sess")
	if err != nil {
		t.Fatal(err)
	}
	if view.Index != 0 || view.Difficulty != model.TierEasy {
		t.Errorf("view = %+v, want fresh easy survey", view)
	}
}

func TestSurveyWithoutSetup(t *testing.T) {
	f := newSurveyFixture()
	if _, err := f.svc.CurrentQuestion(context.Background(), "nobody"); !errors.Is(err, ErrNoSurvey) {
		t.Errorf("CurrentQuestion = %v, want ErrNoSurvey", err)
	}
}

func TestSurveyStaleProgress(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture()

	stale := &model.SurveyProgress{Difficulty: model.TierHard, StartTime: f.now, CurrentQuestion: 5, Answers: []int{0, 0, 0, 0, 0}}
	if err := f.progress.Save(ctx, "sess", stale); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.CurrentQuestion(ctx, "sess"); !errors.Is(err, ErrSurveyComplete) {
		t.Errorf("CurrentQuestion = %v, want ErrSurveyComplete", err)
	}
	if _, err := f.svc.SubmitAnswer(ctx, "sess", 1, "0"); !errors.Is(err, ErrSurveyComplete) {
		t.Errorf("SubmitAnswer = %v, want ErrSurveyComplete", err)
	}
	if f.results.Len() != 0 {
		t.Error("stale progress must not persist a result")
	}
}

func TestSurveyPersistFailureKeepsProgress(t *testing.T) {
	ctx := context.Background()
	f := newSurveyFixture()

	if _, err := f.svc.Setup(ctx, "sess", "high_time"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if _, err := f.svc.SubmitAnswer(ctx, "sess", 1, "0"); err != nil {
			t.Fatal(err)
		}
	}

	f.results.Fail = true
	if _, err := f.svc.SubmitAnswer(ctx, "sess", 1, "0"); err == nil {
		t.Fatal("expected persist error")
	}
	if len(f.feed.Published) != 0 {
		t.Error("failed result must not be published")
	}

	view, err := f.svc.CurrentQuestion(ctx, "sess")
	if err != nil {
		t.Fatalf("CurrentQuestion after failure: %v", err)
	}
	if view.Index != 4 {
		t.Errorf("Index = %d, want 4 (last answer can be retried)", view.Index)
	}
}
