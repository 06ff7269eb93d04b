package model

import "time"

// Result is the immutable record of one completed survey.
type Result struct {
	ID         int       `json:"id"`
	AccountID  int       `json:"account_id"`
	Username   string    `json:"username,omitempty"`
	Difficulty Tier      `json:"difficulty"`
	Score      int       `json:"score"`
	MaxScore   int       `json:"max_score"`
	TimeTaken  float64   `json:"time_taken"`
	DateTaken  time.Time `json:"date_taken"`
}
