package assistant

import (
	"fmt"
	"os"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider describes one routable model. Credentials are never stored
// here; they are resolved from the environment at initialization.
type Provider struct {
	Name string
	Type string
}

// Registry manages the assistant's routable models.
type Registry struct {
	providers map[string]*Provider
	instances map[string]llms.Model
	mu        sync.RWMutex
}

// NewRegistry creates a registry with the supported providers.
func NewRegistry() *Registry {
	return &Registry{
		providers: map[string]*Provider{
			"openai": {Name: "gpt-4-turbo-preview", Type: "openai"},
			"ollama": {Name: "llama3", Type: "ollama"},
		},
		instances: make(map[string]llms.Model),
	}
}

// Register adds or replaces a provider entry.
func (r *Registry) Register(id string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = &p
	delete(r.instances, id)
}

// GetModel returns an initialized model instance, caching it for reuse.
func (r *Registry) GetModel(id string) (llms.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if model, exists := r.instances[id]; exists {
		return model, nil
	}

	provider, exists := r.providers[id]
	if !exists {
		return nil, fmt.Errorf("unknown model: %s", id)
	}

	model, err := r.initializeModel(provider)
	if err != nil {
		return nil, err
	}

	r.instances[id] = model
	return model, nil
}

func (r *Registry) initializeModel(provider *Provider) (llms.Model, error) {
	switch provider.Type {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		llm, err := openai.New(
			openai.WithModel(provider.Name),
			openai.WithToken(apiKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI model: %w", err)
		}
		return llm, nil
	case "ollama":
		llm, err := ollama.New(ollama.WithModel(provider.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama model: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported model type: %s", provider.Type)
	}
}
