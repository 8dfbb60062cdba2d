package debug

// SessionStartData opens a trace.
type SessionStartData struct {
	Schema int `json:"schema"`
	PID    int `json:"pid"`
}

// SessionEndData closes a trace.
type SessionEndData struct {
	Renders   int64 `json:"renders"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

// RenderStartData contains information about the start of a render operation.
type RenderStartData struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BufferLen   int    `json:"buffer_len"`
	Style       string `json:"style"`
	Frame       string `json:"frame"`
	BlockW      int    `json:"block_w"`
	BlockH      int    `json:"block_h"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	BitOrder    string `json:"bit_order"`
	Alignment   string `json:"alignment"`
	Positioning string `json:"positioning"`
}

// RowData contains information about one emitted content row.
type RowData struct {
	Row    int `json:"row"`
	PixelY int `json:"pixel_y"`
	Line   int `json:"line"`
	Glyphs int `json:"glyphs"`
	Set    int `json:"set_blocks"`
}

// RenderEndData contains information about the end of a render operation.
type RenderEndData struct {
	TotalLines   int   `json:"total_lines"`
	TotalGlyphs  int   `json:"total_glyphs"`
	ElapsedMs    int64 `json:"elapsed_ms"`
	BytesWritten int   `json:"bytes_written"`
	Flushed      bool  `json:"flushed"`
}

// ErrorData contains error information.
type ErrorData struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
