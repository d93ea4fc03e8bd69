package httpapi

// checkRequest is the spam-check request body
type checkRequest struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// checkResponse is the spam-check success body
type checkResponse struct {
	Success       bool     `json:"success"`
	IsSpam        bool     `json:"is_spam"`
	Confidence    float64  `json:"confidence"`
	Score         float64  `json:"score"`
	Category      string   `json:"category"`
	Reasons       []string `json:"reasons"`
	MessageLength int      `json:"message_length"`
	WordCount     int      `json:"word_count"`
	Type          string   `json:"type"`
	ProcessingID  string   `json:"processing_id,omitempty"`
}

// errorResponse is the shape of every failed request
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// healthResponse is the liveness probe body
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Success bool   `json:"success"`
}

// ruleInfo summarizes one catalog rule for introspection
type ruleInfo struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	Reason   string  `json:"reason"`
	Probe    string  `json:"probe,omitempty"`
}

// rulesResponse lists the active catalog
type rulesResponse struct {
	Success bool       `json:"success"`
	Version string     `json:"version"`
	Count   int        `json:"count"`
	Rules   []ruleInfo `json:"rules"`
}
