package model

// Parser backends
const (
	ParserHugot  = "hugot"
	ParserGoogle = "google"
)

// Embedding backends
const (
	EmbedderHugot  = "hugot"
	EmbedderOpenAI = "openai"
)

// Opinion scoring modes for aspect-opinion pairs
const (
	OpinionScorePlaceholder = "placeholder"
	OpinionScoreLexicon     = "lexicon"
)

// Config represents the configuration of an analyzer
type Config struct {
	// Model download directory
	ModelDir string `json:"model_dir" yaml:"model_dir" mapstructure:"model_dir"`

	// Part-of-speech tagging model
	POSModel     string `json:"pos_model" yaml:"pos_model" mapstructure:"pos_model"`
	POSModelFile string `json:"pos_model_file,omitempty" yaml:"pos_model_file,omitempty" mapstructure:"pos_model_file"`

	// Sentence embedding model
	EmbeddingModel     string `json:"embedding_model" yaml:"embedding_model" mapstructure:"embedding_model"`
	EmbeddingModelFile string `json:"embedding_model_file,omitempty" yaml:"embedding_model_file,omitempty" mapstructure:"embedding_model_file"`

	// Sentiment classification model
	ClassifierModel     string `json:"classifier_model" yaml:"classifier_model" mapstructure:"classifier_model"`
	ClassifierModelFile string `json:"classifier_model_file,omitempty" yaml:"classifier_model_file,omitempty" mapstructure:"classifier_model_file"`

	// Backends
	Parser   string `json:"parser" yaml:"parser" mapstructure:"parser"`       // hugot or google
	Embedder string `json:"embedder" yaml:"embedder" mapstructure:"embedder"` // hugot or openai

	// Remote APIs
	OpenAIModel       string  `json:"openai_model,omitempty" yaml:"openai_model,omitempty" mapstructure:"openai_model"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Analysis: opinion scoring is placeholder or lexicon, concurrency bounds parallel batch documents
	OpinionScoring string `json:"opinion_scoring" yaml:"opinion_scoring" mapstructure:"opinion_scoring"`
	Concurrency    int    `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		ModelDir:            "./models",
		POSModel:            "vblagoje/bert-english-uncased-finetuned-pos",
		POSModelFile:        "onnx/model.onnx",
		EmbeddingModel:      "sentence-transformers/all-MiniLM-L6-v2",
		EmbeddingModelFile:  "onnx/model.onnx",
		ClassifierModel:     "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english",
		ClassifierModelFile: "model.onnx",
		Parser:              ParserHugot,
		Embedder:            EmbedderHugot,
		OpenAIModel:         "text-embedding-3-small",
		RequestsPerSecond:   5,
		OpinionScoring:      OpinionScorePlaceholder,
		Concurrency:         1,
	}
}
