package model

import "time"

// Tier selects a question pool.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// GamingTime is the self-reported experience category chosen before a survey.
type GamingTime string

const (
	GamingTimeLow    GamingTime = "low_time"
	GamingTimeMedium GamingTime = "medium_time"
	GamingTimeHigh   GamingTime = "high_time"
)

// AllGamingTimes lists the categories offered by the setup form.
var AllGamingTimes = []GamingTime{GamingTimeLow, GamingTimeMedium, GamingTimeHigh}

// Question is a single multiple-choice question with exactly four options.
type Question struct {
	Prompt  string    `json:"q"`
	Options [4]string `json:"options"`
	Answer  int       `json:"-"`
}

// NoAnswer is recorded for omitted or unparsable answers. It never scores.
const NoAnswer = -1

// SurveyProgress is the per-session state of an in-flight survey.
// It is stored as opaque JSON keyed by session id.
type SurveyProgress struct {
	Difficulty      Tier      `json:"difficulty"`
	StartTime       time.Time `json:"start_time"`
	CurrentQuestion int       `json:"current_question"`
	Answers         []int     `json:"answers"`
}

// SurveyOutcome is what the engine emits when the last answer is submitted.
type SurveyOutcome struct {
	Difficulty Tier    `json:"difficulty"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	TimeTaken  float64 `json:"time_taken"`
}

// SetupSurveyRequest is the payload for starting a survey.
type SetupSurveyRequest struct {
	GamingTime string `json:"gaming_time" form:"gaming_time"`
}

// SurveyQuestionView is what the survey page shows for the current question.
type SurveyQuestionView struct {
	Question       Question `json:"question"`
	Index          int      `json:"index"`
	Total          int      `json:"total"`
	Difficulty     Tier     `json:"difficulty"`
	StartTimestamp float64  `json:"start_timestamp"`
}
