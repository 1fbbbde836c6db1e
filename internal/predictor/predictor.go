// Package predictor loads trained model artifacts and prepares feature
// vectors for them. The model itself is opaque to the pipeline: anything
// that turns a scaled vector into a price works.
package predictor

// Scaler transforms a raw feature row into the model's input space.
type Scaler interface {
	Transform(raw []float64) ([]float64, error)
}

// Model produces a price prediction from a scaled feature vector.
type Model interface {
	Predict(scaled []float64) (float64, error)
}
