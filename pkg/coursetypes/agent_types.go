package coursetypes

// AgentProfile is the static descriptor of one agent mode: its system
// instruction, sampling temperature, whether replies stream incrementally,
// and whether output is schema-constrained JSON. The four profiles are
// immutable and defined at process start.
type AgentProfile struct {
	Mode         Mode    `yaml:"mode"`
	SystemPrompt string  `yaml:"system_prompt"`
	Temperature  float32 `yaml:"temperature"`
	Streaming    bool    `yaml:"streaming"`
	JSONOutput   bool    `yaml:"json_output"`
}
