package api

// RuntimeData describes one external process run (compiler or fixture program).
type RuntimeData struct {
	Stdin    string `json:"in"`
	Stdout   string `json:"out"`
	Stderr   string `json:"err"`
	ExitCode int64  `json:"exit"`

	WallMillis int64 `json:"wall_ms"`

	ExitSignal *int64 `json:"signal"`
	TimedOut   bool   `json:"timed_out"`
}
