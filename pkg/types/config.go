package types

// RenderConfig holds settings for the batch diagram renderer.
type RenderConfig struct {
	// Tool is the renderer binary invoked once per diagram file
	// (default "mmdc").
	Tool string `json:"tool" yaml:"tool"`

	// PDFFit asks the renderer to scale the PDF page to the diagram.
	PDFFit bool `json:"pdf_fit" yaml:"pdf_fit"`

	// Strict makes batch conversion report a nonzero exit status when any
	// file fails. The default keeps the historical behavior of always
	// exiting zero.
	Strict bool `json:"strict" yaml:"strict"`
}

// DiagramConfig holds settings for diagram source generation.
type DiagramConfig struct {
	// OutDir is the directory where generated diagram sources are written
	// (default "mermaid").
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// HistoryConfig holds settings for conversion run history.
type HistoryConfig struct {
	// Enabled turns run recording on. Off by default; conversion never
	// depends on the history store.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file holding past runs.
	Path string `json:"path" yaml:"path"`
}

// Config groups all tool configuration.
type Config struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	Diagram DiagramConfig `json:"diagram" yaml:"diagram"`
	History HistoryConfig `json:"history" yaml:"history"`
}
