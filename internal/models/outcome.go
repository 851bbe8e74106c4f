package models

// AttemptOutcome summarizes one credential run against a target.
// Password is empty unless Succeeded is true.
type AttemptOutcome struct {
	Target        Target `json:"target"`
	Password      string `json:"password,omitempty"`
	Succeeded     bool   `json:"succeeded"`
	Tried         int    `json:"tried"`
	ElapsedMillis int64  `json:"elapsed_millis"`
}
