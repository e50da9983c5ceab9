package data

import (
	"github.com/wrenlabs/wren/internal/biz/repo"
	"github.com/wrenlabs/wren/llm"
	"github.com/wrenlabs/wren/xapi"
)

// Repositories contains all repositories
type Repositories struct {
	Platform repo.PlatformRepo
	Model    repo.ModelRepo
	Records  repo.RecordRepo
	Cache    repo.CacheRepo

	store *Store
}

// NewRepositories creates all repositories
func NewRepositories(
	xClient *xapi.Client,
	queue *xapi.RequestQueue,
	llmClient *llm.Client,
	dbPath string,
	decisionPrompt string,
	replyPrompt string,
) (*Repositories, error) {
	store, err := NewStore(dbPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Platform: NewXRepo(xClient, queue),
		Model:    NewModelRepo(llmClient, decisionPrompt, replyPrompt),
		Records:  store,
		Cache:    store,
		store:    store,
	}, nil
}

// Close releases repository resources
func (r *Repositories) Close() error {
	return r.store.Close()
}
