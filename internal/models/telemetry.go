package models

import "time"

// MetricsSnapshot represents one tick of the fake system monitor
type MetricsSnapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	CPU        float64   `json:"cpu"`         // Percentage 0-100
	Memory     float64   `json:"memory"`      // Percentage 0-100
	GPU        float64   `json:"gpu"`         // Percentage 0-100
	DiskIO     float64   `json:"disk_io"`     // MB/s
	NetworkIn  float64   `json:"network_in"`  // Mbps
	NetworkOut float64   `json:"network_out"` // Mbps
	LatencyMs  float64   `json:"latency_ms"`
	ErrorRate  float64   `json:"error_rate"` // Percentage 0-5
}

// Training record types
const (
	TrainingTypeEpoch    = "epoch"
	TrainingTypeComplete = "complete"
)

// TrainingEpoch represents the metrics reported at the end of one training epoch
type TrainingEpoch struct {
	Type         string  `json:"type"`
	Epoch        int     `json:"epoch"` // 1..TotalEpochs
	TotalEpochs  int     `json:"total_epochs"`
	Loss         float64 `json:"loss"`
	Accuracy     float64 `json:"accuracy"`
	ValLoss      float64 `json:"val_loss"`
	ValAccuracy  float64 `json:"val_accuracy"`
	LearningRate float64 `json:"learning_rate"`
}

// TrainingComplete is emitted once after the last epoch of a run
type TrainingComplete struct {
	Type             string  `json:"type"`
	Message          string  `json:"message"`
	TotalEpochs      int     `json:"total_epochs"`
	FinalLoss        float64 `json:"final_loss"`
	FinalAccuracy    float64 `json:"final_accuracy"`
	FinalValAccuracy float64 `json:"final_val_accuracy"`
}

// Prediction represents one point of the live regression feed
type Prediction struct {
	X           float64   `json:"x"`
	YTrue       float64   `json:"y_true"`
	YPred       float64   `json:"y_pred"`
	Uncertainty float64   `json:"uncertainty"` // Always >= 0
	Confidence  float64   `json:"confidence"`  // 1 - uncertainty
	Timestamp   time.Time `json:"timestamp"`
}

// MatrixLine is one falling column of the matrix rain animation
type MatrixLine struct {
	Type   string  `json:"type"`
	Column int     `json:"column"`
	Chars  string  `json:"chars"`
	Speed  float64 `json:"speed"`
}

// HackMessage is one step of the scripted intrusion sequence
type HackMessage struct {
	Type     string  `json:"type"`
	Step     int     `json:"step"` // 1-based position in the sequence
	Total    int     `json:"total"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"` // Percentage 0-100
	Status   string  `json:"status"`
}

// Point3D is a single particle of a point cloud frame
type Point3D struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Hue  float64 `json:"hue"`  // Degrees 0-360
	Size float64 `json:"size"`
}

// PointCloudFrame is one frame of the 3D particle stream
type PointCloudFrame struct {
	Type   string    `json:"type"`
	T      float64   `json:"t"`
	Count  int       `json:"count"`
	Points []Point3D `json:"points"`
}
