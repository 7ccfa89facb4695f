package advisor

// Recommendation is the structured result of one recommendation turn,
// parsed from the model's JSON reply.
//
// When NeedsClarification is set, the remaining fields are not relied
// upon. Empty Titles with NeedsClarification unset is the degraded
// "couldn't pick" case, not an error.
type Recommendation struct {
	Titles                []string `json:"titles"`
	Pitch                 string   `json:"pitch"`
	Reasons               []string `json:"reasons"`
	NeedsClarification    bool     `json:"needs_clarification"`
	ClarificationQuestion string   `json:"clarification_question"`
}
