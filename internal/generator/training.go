package generator

import (
	"math"
	"math/rand/v2"

	"portfolio-backend/internal/models"
)

const (
	baseLearningRate = 0.001
	lrDecayFactor    = 0.95
	lrDecayEvery     = 10 // epochs
	maxAccuracy      = 0.98
)

// LearningRate returns the step-decayed rate for an epoch, rounded to 6 places
func LearningRate(epoch int) float64 {
	return Round(baseLearningRate*math.Pow(lrDecayFactor, float64(epoch/lrDecayEvery)), 6)
}

// TrainingEpoch generates the metrics for epoch (1-based) out of total.
// Loss decays and accuracy saturates along fixed curves; only the noise is random.
func TrainingEpoch(rng *rand.Rand, epoch, total int) models.TrainingEpoch {
	if total <= 0 {
		total = 1
	}
	progress := float64(epoch) / float64(total)

	loss := 2.5*math.Exp(-3*progress) + 0.1 + Uniform(rng, -0.05, 0.05)
	accuracy := math.Min(maxAccuracy, 0.5+0.48*(1-math.Exp(-4*progress))+Uniform(rng, -0.02, 0.02))
	valLoss := loss * (1 + 0.1*rng.Float64())
	valAccuracy := accuracy * (0.95 + 0.05*rng.Float64())

	return models.TrainingEpoch{
		Type:         models.TrainingTypeEpoch,
		Epoch:        epoch,
		TotalEpochs:  total,
		Loss:         Round(loss, 4),
		Accuracy:     Round(accuracy, 4),
		ValLoss:      Round(valLoss, 4),
		ValAccuracy:  Round(valAccuracy, 4),
		LearningRate: LearningRate(epoch),
	}
}

// TrainingSummary builds the completion record from the last epoch of a run
func TrainingSummary(last models.TrainingEpoch) models.TrainingComplete {
	return models.TrainingComplete{
		Type:             models.TrainingTypeComplete,
		Message:          "Training completed!",
		TotalEpochs:      last.TotalEpochs,
		FinalLoss:        last.Loss,
		FinalAccuracy:    last.Accuracy,
		FinalValAccuracy: last.ValAccuracy,
	}
}
