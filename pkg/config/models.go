package config

// default model identifiers, used when no user override is supplied.
// read-only process-wide fallbacks; never reassigned at runtime.
const (
	// DefaultModel is the general-purpose model.
	DefaultModel = "qwen3-coder-next"
	// DefaultFastModel is the fast-tier model for lightweight requests.
	DefaultFastModel = "qwen3-coder-next"
	// DefaultEmbeddingModel is the embedding model.
	DefaultEmbeddingModel = "text-embedding-v4"
)

// Models holds the model identifier for each logical role.
type Models struct {
	General   string // general-purpose model
	Fast      string // fast-tier model
	Embedding string // embedding model
}

// resolved fills every empty role from its default constant.
func (m Models) resolved() Models {
	if m.General == "" {
		m.General = DefaultModel
	}
	if m.Fast == "" {
		m.Fast = DefaultFastModel
	}
	if m.Embedding == "" {
		m.Embedding = DefaultEmbeddingModel
	}
	return m
}
