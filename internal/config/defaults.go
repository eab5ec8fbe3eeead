package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Gemini.APIKeyEnv == "" {
		cfg.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Gemini.EmbeddingModel == "" {
		cfg.Gemini.EmbeddingModel = "models/embedding-001"
	}
	if cfg.Gemini.EmbeddingDimensions == 0 {
		cfg.Gemini.EmbeddingDimensions = 768
	}
	if cfg.Gemini.EmbeddingMaxChars == 0 {
		cfg.Gemini.EmbeddingMaxChars = 8000
	}
	if cfg.Gemini.EmbeddingCacheSize == 0 {
		cfg.Gemini.EmbeddingCacheSize = 10000
	}
	if len(cfg.Gemini.PreferredModels) == 0 {
		cfg.Gemini.PreferredModels = []string{
			"gemini-1.5-flash",
			"gemini-1.5-flash-latest",
			"gemini-1.5-pro",
			"gemini-1.5-pro-latest",
		}
	}
	if cfg.Gemini.Temperature == 0 {
		cfg.Gemini.Temperature = 0.7
	}
	if cfg.Gemini.TopP == 0 {
		cfg.Gemini.TopP = 0.9
	}
	if cfg.Gemini.MaxOutputTokens == 0 {
		cfg.Gemini.MaxOutputTokens = 2048
	}
	if cfg.Gemini.Attempts == 0 {
		cfg.Gemini.Attempts = 3
	}
	if cfg.Gemini.TimeoutSeconds == 0 {
		cfg.Gemini.TimeoutSeconds = 30
	}
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 500
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = 100
	}
	if cfg.Chunking.MinChars == 0 {
		cfg.Chunking.MinChars = 80
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 5
	}
	if cfg.Search.ContextTop == 0 {
		cfg.Search.ContextTop = 3
	}
	if cfg.Export.Tool == "" {
		cfg.Export.Tool = "DOC STUDIO"
	}
	if cfg.Export.Version == "" {
		cfg.Export.Version = "1.0"
	}
	if cfg.Export.Creator == "" {
		cfg.Export.Creator = "Doc Studio"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".pdf", ".docx", ".xlsx", ".pptx", ".txt"}
	}
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}
