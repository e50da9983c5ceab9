package mcpserver

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AgentMCPServer provides MCP tools for operating the agent from an MCP host
type AgentMCPServer struct {
	server *mcp.Server
}

// RecordSummary is one execution record as exposed over MCP
type RecordSummary struct {
	TweetID    string   `json:"tweet_id"`
	URL        string   `json:"url"`
	Text       string   `json:"text"`
	Actions    []string `json:"actions"`
	RecordedAt string   `json:"recorded_at"`
}

// AgentStatus describes the running agent
type AgentStatus struct {
	AgentID     string `json:"agent_id"`
	Character   string `json:"character"`
	SearchQuery string `json:"search_query"`
	RecordCount int    `json:"record_count"`
}

// PostTweetCallback posts a standalone tweet and returns the new tweet ID
type PostTweetCallback func(ctx context.Context, text string) (string, error)

// SearchCallback runs a recent search and returns matching tweet texts
type SearchCallback func(ctx context.Context, query string, maxResults int) ([]RecordSummary, error)

// RecentRecordsCallback returns the most recent execution records
type RecentRecordsCallback func(ctx context.Context, limit int) ([]RecordSummary, error)

// StatusCallback returns the agent status
type StatusCallback func(ctx context.Context) (*AgentStatus, error)

// Callbacks holds the callback functions for MCP tools
type Callbacks struct {
	PostTweet     PostTweetCallback
	Search        SearchCallback
	RecentRecords RecentRecordsCallback
	Status        StatusCallback
}

var (
	globalCallbacks *Callbacks
	serverMu        sync.Mutex
)

// NewServer creates a new agent MCP server
func NewServer(callbacks *Callbacks) *AgentMCPServer {
	serverMu.Lock()
	defer serverMu.Unlock()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wren-tools",
		Version: "v1.0.0",
	}, nil)

	s := &AgentMCPServer{server: server}
	globalCallbacks = callbacks

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all agent MCP tools
func (s *AgentMCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "wren_post_tweet",
		Description: "Post a standalone tweet as the agent. The text is posted verbatim, max 280 characters.",
	}, handlePostTweet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "wren_search_tweets",
		Description: "Run a recent search against the platform and return matching tweets. Uses the platform's search query syntax.",
	}, handleSearchTweets)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "wren_recent_records",
		Description: "Get the agent's most recent execution records: which tweets it acted on and which actions it took.",
	}, handleRecentRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "wren_agent_status",
		Description: "Get the agent's identity, character, search query, and total record count.",
	}, handleAgentStatus)
}

// PostTweetInput is the input for post_tweet tool
type PostTweetInput struct {
	Text string `json:"text" jsonschema:"description=The tweet text to post, max 280 characters"`
}

// PostTweetOutput is the output for post_tweet tool
type PostTweetOutput struct {
	TweetID string `json:"tweet_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func handlePostTweet(ctx context.Context, req *mcp.CallToolRequest, input PostTweetInput) (*mcp.CallToolResult, PostTweetOutput, error) {
	if globalCallbacks == nil || globalCallbacks.PostTweet == nil {
		return nil, PostTweetOutput{Error: "callback not configured"}, nil
	}
	if input.Text == "" {
		return nil, PostTweetOutput{Error: "text is required"}, nil
	}

	id, err := globalCallbacks.PostTweet(ctx, input.Text)
	if err != nil {
		return nil, PostTweetOutput{Error: err.Error()}, nil
	}

	return nil, PostTweetOutput{TweetID: id}, nil
}

// SearchTweetsInput is the input for search_tweets tool
type SearchTweetsInput struct {
	Query      string `json:"query" jsonschema:"description=The search query in the platform's query syntax"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=Maximum number of tweets to return (default 10)"`
}

// SearchTweetsOutput contains the matching tweets
type SearchTweetsOutput struct {
	Tweets []RecordSummary `json:"tweets"`
	Error  string          `json:"error,omitempty"`
}

func handleSearchTweets(ctx context.Context, req *mcp.CallToolRequest, input SearchTweetsInput) (*mcp.CallToolResult, SearchTweetsOutput, error) {
	if globalCallbacks == nil || globalCallbacks.Search == nil {
		return nil, SearchTweetsOutput{Error: "callback not configured"}, nil
	}
	if input.Query == "" {
		return nil, SearchTweetsOutput{Error: "query is required"}, nil
	}

	limit := input.MaxResults
	if limit <= 0 {
		limit = 10
	}

	tweets, err := globalCallbacks.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchTweetsOutput{Error: err.Error()}, nil
	}

	return nil, SearchTweetsOutput{Tweets: tweets}, nil
}

// RecentRecordsInput specifies how many records to retrieve
type RecentRecordsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Maximum number of records to retrieve (default 20)"`
}

// RecentRecordsOutput contains recent execution records
type RecentRecordsOutput struct {
	Records []RecordSummary `json:"records"`
	Error   string          `json:"error,omitempty"`
}

func handleRecentRecords(ctx context.Context, req *mcp.CallToolRequest, input RecentRecordsInput) (*mcp.CallToolResult, RecentRecordsOutput, error) {
	if globalCallbacks == nil || globalCallbacks.RecentRecords == nil {
		return nil, RecentRecordsOutput{Error: "callback not configured"}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	records, err := globalCallbacks.RecentRecords(ctx, limit)
	if err != nil {
		return nil, RecentRecordsOutput{Error: err.Error()}, nil
	}

	return nil, RecentRecordsOutput{Records: records}, nil
}

// AgentStatusInput is empty - no input needed
type AgentStatusInput struct{}

// AgentStatusOutput contains the agent status
type AgentStatusOutput struct {
	Status *AgentStatus `json:"status,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func handleAgentStatus(ctx context.Context, req *mcp.CallToolRequest, input AgentStatusInput) (*mcp.CallToolResult, AgentStatusOutput, error) {
	if globalCallbacks == nil || globalCallbacks.Status == nil {
		return nil, AgentStatusOutput{Error: "callback not configured"}, nil
	}

	status, err := globalCallbacks.Status(ctx)
	if err != nil {
		return nil, AgentStatusOutput{Error: err.Error()}, nil
	}

	return nil, AgentStatusOutput{Status: status}, nil
}

// Run starts the MCP server with stdio transport
func (s *AgentMCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// GetServer returns the underlying MCP server
func (s *AgentMCPServer) GetServer() *mcp.Server {
	return s.server
}
