package api

import (
	"time"
)

// SessionCreateRequest represents a request to analyze a disassembly file.
type SessionCreateRequest struct {
	Path string `json:"path"` // Path to a disassembly listing readable by the server
}

// SessionCreateResponse represents the response from creating a session.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStatusResponse summarizes a completed session's top-line metrics.
type SessionStatusResponse struct {
	SessionID            string `json:"sessionId"`
	Filename             string `json:"filename"`
	OriginalBundleCount  int    `json:"originalBundleCount"`
	OptimizedBundleCount int    `json:"optimizedBundleCount"`
	BundleReduction      int    `json:"bundleReduction"`
	MergedPairs          int    `json:"mergedPairs"`
}

// BundleInfo is the wire representation of one packed bundle.
type BundleInfo struct {
	OriginAddress uint32              `json:"originAddress"`
	ValidCount    int                 `json:"validCount"`
	Instructions  []InstructionInfo   `json:"instructions"`
}

// InstructionInfo is the wire representation of one decoded instruction.
type InstructionInfo struct {
	Address     uint32 `json:"address"`
	Encoding    string `json:"encoding"`
	Mnemonic    string `json:"mnemonic"`
	Operands    string `json:"operands"`
	Category    string `json:"category"`
	IsPadding   bool   `json:"isPadding"`
}

// BundlesResponse represents a list of bundles, either original or
// optimized depending on the "which" query parameter.
type BundlesResponse struct {
	Bundles []BundleInfo `json:"bundles"`
}

// ReportRequest selects the report rendering format.
type ReportRequest struct {
	Format  string `json:"format,omitempty"`  // text, json, csv
	Verbose bool   `json:"verbose,omitempty"` // include category histogram
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse represents a simple success response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Event represents a WebSocket event envelope.
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// ProgressEvent represents one pipeline-step progress notification.
type ProgressEvent struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}
