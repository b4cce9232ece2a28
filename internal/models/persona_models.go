package models

import "time"

// PersonaRecord is the persisted artifact of one completed generation job.
type PersonaRecord struct {
	GenerationID string           `json:"generation_id"`
	Username     string           `json:"username"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Persona      string           `json:"persona"`
	Posts        []RedditPost     `json:"posts"`
	Comments     []RedditComment  `json:"comments"`
	Sentiment    SentimentProfile `json:"sentiment_data"`
	UsedFallback bool             `json:"used_fallback"`
	ModelName    string           `json:"model_name,omitempty"`
}

// PersonaEvent is the payload published to Kafka when a job completes.
type PersonaEvent struct {
	GenerationID string    `json:"generation_id"`
	Username     string    `json:"username"`
	ArtifactRef  string    `json:"artifact_ref"`
	UsedFallback bool      `json:"used_fallback"`
	CompletedAt  time.Time `json:"completed_at"`
}
