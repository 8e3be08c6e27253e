package models

// Hospital is a nearby-hospital row attached to prediction responses. Not
// persisted; the service ships a static list.
type Hospital struct {
	Name          string  `json:"name"`
	Distance      string  `json:"distance"`
	EstimatedWait string  `json:"estimated_wait"`
	Rating        float64 `json:"rating"`
	AIRecommended bool    `json:"ai_recommended"`
}
