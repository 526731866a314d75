package campaign

// Metadata is the off-chain campaign document referenced by a campaign's
// ipfs hash.
type Metadata struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	BannerImage string           `json:"banner_image"`
	Modules     []ModuleMetadata `json:"modules"`
}

type ModuleMetadata struct {
	Id          uint8  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentUrl  string `json:"content_url"`
	Duration    string `json:"duration"`
	Quiz        *Quiz  `json:"quiz,omitempty"`
}

// Quiz is published with the hash of the correct answers only.
type Quiz struct {
	Questions         []QuizQuestion `json:"questions"`
	CorrectAnswerHash string         `json:"correct_answer_hash,omitempty"`
}

type QuizQuestion struct {
	Id      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`

	// CorrectAnswerIndex is never serialized.
	CorrectAnswerIndex int `json:"-"`
}

// PlaceholderMetadata stands in for metadata that could not be fetched.
func PlaceholderMetadata() *Metadata {
	return &Metadata{
		Title:   "Loading...",
		Modules: []ModuleMetadata{},
	}
}

// IsPlaceholder reports whether m is the stand-in for unresolved metadata.
func (m *Metadata) IsPlaceholder() bool {
	return m.Title == "Loading..." && len(m.Description) == 0 && len(m.BannerImage) == 0 && len(m.Modules) == 0
}
