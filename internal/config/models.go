package config

// ThresholdsConfig holds the score cut points between risk categories
type ThresholdsConfig struct {
	Low    float64
	Medium float64
	High   float64
}

// StructuralConfig holds the trigger thresholds for structural rules
type StructuralConfig struct {
	CapsRatio       float64
	CapsMinLength   int
	MaxExclamations int
	MaxLinks        int
	MaxNumbers      int
	MaxContacts     int
	ShortTextLength int
	LongTextLength  int
}

// EngineConfig represents the configuration for the scoring engine
type EngineConfig struct {
	ScoreCap       int
	NormalizationK float64
	MaxReasons     int
	Mitigation     bool
	Thresholds     ThresholdsConfig
	Structural     StructuralConfig
}

// HTTPConfig represents the configuration for the HTTP API frontend
type HTTPConfig struct {
	ListenAddress string
	MinTextLength int
	MaxTextLength int
}

// SMTPHeadersConfig holds the header names stamped onto filtered mail
type SMTPHeadersConfig struct {
	Flag     string
	Score    string
	Category string
	Reasons  string
}

// SMTPConfig represents the configuration for the SMTP proxy frontend
type SMTPConfig struct {
	ListenAddress      string
	UpstreamAddress    string
	BlockSpam          bool
	RewriteSubject     bool
	SubjectPrefix      string
	Headers            SMTPHeadersConfig
	WhitelistedDomains []string
}

// GetEngine returns the engine configuration
func (c *Config) GetEngine() EngineConfig {
	return EngineConfig{
		ScoreCap:       c.GetInt("engine.score_cap"),
		NormalizationK: c.GetFloat64("engine.normalization_k"),
		MaxReasons:     c.GetInt("engine.max_reasons"),
		Mitigation:     c.GetBool("engine.mitigation"),
		Thresholds: ThresholdsConfig{
			Low:    c.GetFloat64("engine.thresholds.low"),
			Medium: c.GetFloat64("engine.thresholds.medium"),
			High:   c.GetFloat64("engine.thresholds.high"),
		},
		Structural: StructuralConfig{
			CapsRatio:       c.GetFloat64("engine.structural.caps_ratio"),
			CapsMinLength:   c.GetInt("engine.structural.caps_min_length"),
			MaxExclamations: c.GetInt("engine.structural.max_exclamations"),
			MaxLinks:        c.GetInt("engine.structural.max_links"),
			MaxNumbers:      c.GetInt("engine.structural.max_numbers"),
			MaxContacts:     c.GetInt("engine.structural.max_contacts"),
			ShortTextLength: c.GetInt("engine.structural.short_text_length"),
			LongTextLength:  c.GetInt("engine.structural.long_text_length"),
		},
	}
}

// GetHTTP returns the HTTP frontend configuration
func (c *Config) GetHTTP() HTTPConfig {
	return HTTPConfig{
		ListenAddress: c.GetString("server.http.listen_address"),
		MinTextLength: c.GetInt("api.min_text_length"),
		MaxTextLength: c.GetInt("api.max_text_length"),
	}
}

// GetSMTP returns the SMTP frontend configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		ListenAddress:   c.GetString("server.smtp.listen_address"),
		UpstreamAddress: c.GetString("server.smtp.upstream_address"),
		BlockSpam:       c.GetBool("server.smtp.block_spam"),
		RewriteSubject:  c.GetBool("server.smtp.rewrite_subject"),
		SubjectPrefix:   c.GetString("server.smtp.subject_prefix"),
		Headers: SMTPHeadersConfig{
			Flag:     c.GetString("server.smtp.headers.flag"),
			Score:    c.GetString("server.smtp.headers.score"),
			Category: c.GetString("server.smtp.headers.category"),
			Reasons:  c.GetString("server.smtp.headers.reasons"),
		},
		WhitelistedDomains: c.GetStringSlice("server.smtp.whitelisted_domains"),
	}
}
