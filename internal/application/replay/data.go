// Package replay records and plays back UI input so a session can be rerun tick for tick.
package replay

// FrameInput records input state for a single tick
type FrameInput struct {
	F  int  `json:"f"`           // Tick number
	MX int  `json:"mx"`          // MouseX
	MY int  `json:"my"`          // MouseY
	P  bool `json:"p,omitempty"` // Pressed
	D  bool `json:"d,omitempty"` // Down
	R  bool `json:"r,omitempty"` // Released
	B  bool `json:"b,omitempty"` // Back
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
