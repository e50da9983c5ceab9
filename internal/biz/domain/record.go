package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceTwitter is the platform tag written into execution records.
const SourceTwitter = "twitter"

// RecordID returns the deterministic dedup key for a tweet/agent pair. The
// same pair always maps to the same ID, which is what makes the existence
// check an idempotence gate across process restarts.
func RecordID(tweetID, agentID string) string {
	sum := sha256.Sum256([]byte(tweetID + ":" + agentID))
	return hex.EncodeToString(sum[:16])
}

// ExecutionRecord is the persisted audit row written after acting on (or
// declining) a tweet. At most one record exists per tweet per agent.
type ExecutionRecord struct {
	ID        string    `json:"id"`
	TweetID   string    `json:"tweet_id"`
	AgentID   string    `json:"agent_id"`
	Text      string    `json:"text"`    // source tweet text
	URL       string    `json:"url"`     // permalink
	Source    string    `json:"source"`  // platform tag
	Actions   []string  `json:"actions"` // action names actually executed
	CreatedAt time.Time `json:"created_at"`
}

// NewExecutionRecord builds the audit record for a tweet. CreatedAt carries
// the tweet's original timestamp, not the time of execution.
func NewExecutionRecord(t Tweet, agentID string, actions []string) *ExecutionRecord {
	return &ExecutionRecord{
		ID:        RecordID(t.ID, agentID),
		TweetID:   t.ID,
		AgentID:   agentID,
		Text:      t.Text,
		URL:       t.URL(),
		Source:    SourceTwitter,
		Actions:   actions,
		CreatedAt: t.CreatedAt,
	}
}
