package models

import "time"

// Pipeline event types
const (
	PipelineEventStart    = "pipeline_start"
	PipelineEventLog      = "log"
	PipelineEventProgress = "progress"
	PipelineEventComplete = "pipeline_complete"
)

// Stage statuses carried by log events
const (
	StageStatusRunning   = "running"
	StageStatusCompleted = "completed"
)

// Stage is a fixed phase of the simulated ETL pipeline
type Stage struct {
	ID          string  `json:"id" toml:"id"`
	Name        string  `json:"name" toml:"name"`
	MinDuration float64 `json:"min_duration" toml:"min_duration"` // seconds
	MaxDuration float64 `json:"max_duration" toml:"max_duration"` // seconds
}

// StageMetrics is the synthetic throughput snapshot attached to progress ticks
type StageMetrics struct {
	RowsProcessed    int     `json:"rows_processed"`
	RowsFailed       int     `json:"rows_failed"`
	BytesTransferred int     `json:"bytes_transferred"`
	CPUUsage         float64 `json:"cpu_usage"`
	MemoryUsage      float64 `json:"memory_usage"`
	Throughput       float64 `json:"throughput"` // rows/s
}

// PipelineEvent is any record emitted by the pipeline feed; unused fields are omitted
type PipelineEvent struct {
	Type      string        `json:"type"`
	RunID     string        `json:"run_id"`
	Stage     string        `json:"stage,omitempty"`
	StageName string        `json:"stage_name,omitempty"`
	Status    string        `json:"status,omitempty"`
	Level     string        `json:"level,omitempty"`
	Message   string        `json:"message,omitempty"`
	Progress  float64       `json:"progress,omitempty"`
	Metrics   *StageMetrics `json:"metrics,omitempty"`
	TotalRows int           `json:"total_rows,omitempty"`
	Stages    []Stage       `json:"stages,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// PipelineInfo describes the simulated pipeline for the /pipeline endpoint
type PipelineInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Schedule    string  `json:"schedule"`
	Stages      []Stage `json:"stages"`
	Stream      string  `json:"stream"` // endpoint of the live run feed
}
