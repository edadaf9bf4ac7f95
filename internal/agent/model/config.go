package model

// ================ Config ================

// NLUModelConfig configures the intent-extraction model call.
type NLUModelConfig struct {
	Model       string  `envconfig:"NLU_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"NLU_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"NLU_TEMPERATURE" default:"0.0"`
	TimeoutSec  int     `envconfig:"NLU_TIMEOUT_SEC" default:"30"`
}

// ConversationConfig configures transcript retention and how much of it
// is fed back into the NLU prompt.
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"24h"`
	MaxTurns int    `envconfig:"CONVERSATION_NLU_MAX_TURNS" default:"6"`
}

// EngineConfig configures the dialogue engine itself.
type EngineConfig struct {
	// CandidateLimit caps how many entries an update/delete filter fetches.
	CandidateLimit int `envconfig:"ENGINE_CANDIDATE_LIMIT" default:"100"`
	// ListLimit caps how many entries a plain listing shows.
	ListLimit int `envconfig:"ENGINE_LIST_LIMIT" default:"10"`
	// ContextEntries is how many recent ledger rows are attached to the
	// NLU prompt as resource context.
	ContextEntries int `envconfig:"ENGINE_CONTEXT_ENTRIES" default:"3"`
}
