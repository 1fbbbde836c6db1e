package model

// Metadata describes a trained model artifact. It is written by the
// training side and consumed read-only; Features is the ordered list of
// columns the model expects, which drives input preparation.
type Metadata struct {
	ModelName      string   `json:"model_name"`
	TestRMSE       float64  `json:"test_rmse"`
	TestR2         float64  `json:"test_r2"`
	Features       []string `json:"features"`
	TrainingDate   string   `json:"training_date"`
	TrainDateRange []string `json:"train_date_range"`
	TestDateRange  []string `json:"test_date_range"`
}
