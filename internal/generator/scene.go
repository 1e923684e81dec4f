package generator

import (
	"math"
	"math/rand/v2"
	"strings"

	"portfolio-backend/internal/models"
)

const (
	// MatrixColumns is the width of the matrix rain screen
	MatrixColumns = 80
	// CloudPoints is the number of particles per 3D frame
	CloudPoints = 100
	// CloudTimeStep advances the spiral between frames
	CloudTimeStep = 0.05
)

// Half-width katakana plus digits
var matrixGlyphs = []rune("ｦｧｨｩｪｫｬｭｮｯｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789")

// MatrixLine samples one falling column
func MatrixLine(rng *rand.Rand) models.MatrixLine {
	n := IntBetween(rng, 5, 20)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteRune(matrixGlyphs[rng.IntN(len(matrixGlyphs))])
	}
	return models.MatrixLine{
		Type:   "matrix",
		Column: rng.IntN(MatrixColumns),
		Chars:  b.String(),
		Speed:  Round(Uniform(rng, 0.5, 2), 2),
	}
}

var hackSequence = []string{
	"Initializing connection to mainframe...",
	"Scanning open ports on 10.0.13.37...",
	"Port 22 open. Attempting handshake...",
	"Bypassing firewall rules...",
	"Injecting payload into kernel buffer...",
	"Decrypting RSA-4096 keys...",
	"Brute forcing admin credentials...",
	"Escalating privileges to root...",
	"Downloading classified datasets...",
	"Covering tracks in system logs...",
	"ACCESS GRANTED. Welcome, operator.",
}

// HackSequenceLength is the number of messages in one pass of the sequence
func HackSequenceLength() int {
	return len(hackSequence)
}

// HackMessage returns message step (0-based) of the scripted sequence.
// Steps past the end wrap around.
func HackMessage(step int) models.HackMessage {
	total := len(hackSequence)
	idx := ((step % total) + total) % total
	status := "in_progress"
	if idx == total-1 {
		status = "access_granted"
	}
	return models.HackMessage{
		Type:     "hack",
		Step:     idx + 1,
		Total:    total,
		Message:  hackSequence[idx],
		Progress: Round(float64(idx+1)/float64(total)*100, 1),
		Status:   status,
	}
}

// Hue folds deg into [0, 360) at two decimals
func Hue(deg float64) float64 {
	h := Round(math.Mod(deg, 360), 2)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		return 0
	}
	return h
}

// PointCloud computes the parametric spiral at time t
func PointCloud(t float64, n int) models.PointCloudFrame {
	points := make([]models.Point3D, n)
	for i := 0; i < n; i++ {
		fi := float64(i)
		angle := t + fi*0.1
		radius := 2 + math.Sin(0.5*t+0.2*fi)
		points[i] = models.Point3D{
			X:    Round(radius*math.Cos(angle), 4),
			Y:    Round(radius*math.Sin(angle), 4),
			Z:    Round(math.Sin(0.3*t+0.1*fi)*2, 4),
			Hue:  Hue(t*20 + fi*3.6),
			Size: Round(2+math.Sin(2*t+0.5*fi), 4),
		}
	}
	return models.PointCloudFrame{
		Type:   "pointcloud",
		T:      Round(t, 4),
		Count:  n,
		Points: points,
	}
}
