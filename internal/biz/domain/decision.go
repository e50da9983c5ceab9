package domain

// Action names as they appear in execution records and logs.
const (
	ActionLike    = "like"
	ActionRetweet = "retweet"
	ActionQuote   = "quote"
	ActionReply   = "reply"
)

// Decision is the multi-label action intent for one tweet. The four flags
// are independent; any combination may be true at once. Rationale is logged
// and never used for control flow.
type Decision struct {
	Like      bool
	Retweet   bool
	Quote     bool
	Reply     bool
	Rationale string
}

// ActionCount returns the number of requested actions
func (d Decision) ActionCount() int {
	count := 0
	for _, set := range []bool{d.Like, d.Retweet, d.Quote, d.Reply} {
		if set {
			count++
		}
	}
	return count
}

// Actions returns the names of the requested actions in execution order
func (d Decision) Actions() []string {
	var names []string
	if d.Like {
		names = append(names, ActionLike)
	}
	if d.Retweet {
		names = append(names, ActionRetweet)
	}
	if d.Quote {
		names = append(names, ActionQuote)
	}
	if d.Reply {
		names = append(names, ActionReply)
	}
	return names
}

// Decided pairs a tweet with its decision
type Decided struct {
	Tweet    Tweet
	Decision Decision
}
