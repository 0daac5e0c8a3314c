package analysis

import "context"

// Classifier is the model backend consulted to classify one feature
// description. Implementations return the raw reply text, which is expected
// to be a JSON object with the three result keys.
type Classifier interface {
	Classify(ctx context.Context, description string) (string, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, description string) (string, error)

func (f ClassifierFunc) Classify(ctx context.Context, description string) (string, error) {
	return f(ctx, description)
}
