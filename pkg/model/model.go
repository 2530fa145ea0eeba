package model

import "gonum.org/v1/gonum/mat"

// Classifier maps the rows of a feature matrix to integer class labels.
// Missing features are NaN.
type Classifier interface {
	Fit(X mat.Matrix, y []int) error
	Predict(X mat.Matrix) []int
}

var (
	_ Classifier = (*DecisionTreeClassifier)(nil)
	_ Classifier = (*RandomForest)(nil)
)
