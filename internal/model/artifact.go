package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/unimindapp/unimind-backend/internal/features"
)

// Artifact is the exported form of the trained scikit-learn pipeline:
// feature order, optional standard-scaler statistics, and the logistic
// regression weights. The file is produced by the training job and consumed
// here as an opaque blob of parameters.
type Artifact struct {
	ModelType    string    `json:"model_type"`
	Features     []string  `json:"features"`
	ScalerMean   []float64 `json:"scaler_mean,omitempty"`
	ScalerScale  []float64 `json:"scaler_scale,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    float64   `json:"threshold,omitempty"`
}

type artifactClassifier struct {
	art Artifact
}

// Load reads a model artifact from a local path or a gs://bucket/key object
// and validates its shape. The returned classifier is immutable and safe for
// concurrent use.
func Load(ctx context.Context, path, credentialsFile string) (Classifier, error) {
	raw, err := readArtifact(ctx, path, credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %q: %w", path, err)
	}

	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("decode model artifact %q: %w", path, err)
	}
	if err := validateArtifact(&art); err != nil {
		return nil, fmt.Errorf("invalid model artifact %q: %w", path, err)
	}
	return &artifactClassifier{art: art}, nil
}

func validateArtifact(art *Artifact) error {
	if art.ModelType != "" && art.ModelType != "logistic_regression" {
		return fmt.Errorf("unsupported model_type %q", art.ModelType)
	}
	n := len(art.Features)
	if n == 0 {
		return fmt.Errorf("artifact declares no features")
	}
	// The artifact must score exactly the survey schema, in training order.
	// Rejecting a stale or permuted feature list here beats mis-scoring
	// every request later.
	if n != len(features.FieldOrder) {
		return fmt.Errorf("artifact declares %d features, want %d", n, len(features.FieldOrder))
	}
	for i, name := range art.Features {
		if name != features.FieldOrder[i] {
			return fmt.Errorf("artifact feature[%d] is %q, want %q", i, name, features.FieldOrder[i])
		}
	}
	if len(art.Coefficients) != n {
		return fmt.Errorf("coefficients length %d does not match %d features", len(art.Coefficients), n)
	}
	if len(art.ScalerMean) != 0 && len(art.ScalerMean) != n {
		return fmt.Errorf("scaler_mean length %d does not match %d features", len(art.ScalerMean), n)
	}
	if len(art.ScalerScale) != 0 && len(art.ScalerScale) != n {
		return fmt.Errorf("scaler_scale length %d does not match %d features", len(art.ScalerScale), n)
	}
	for i, s := range art.ScalerScale {
		if s == 0 {
			return fmt.Errorf("scaler_scale[%d] is zero", i)
		}
	}
	if art.Threshold == 0 {
		art.Threshold = 0.5
	}
	if art.Threshold < 0 || art.Threshold > 1 {
		return fmt.Errorf("threshold %v out of range", art.Threshold)
	}
	return nil
}

func (c *artifactClassifier) NumFeatures() int { return len(c.art.Features) }

func (c *artifactClassifier) Predict(_ context.Context, vec []float64) (*Output, error) {
	if len(vec) != len(c.art.Features) {
		return nil, fmt.Errorf("expected %d features, got %d", len(c.art.Features), len(vec))
	}

	z := c.art.Intercept
	for i, x := range vec {
		if len(c.art.ScalerMean) > 0 {
			x = (x - c.art.ScalerMean[i]) / c.art.ScalerScale[i]
		}
		z += c.art.Coefficients[i] * x
	}

	p := 1.0 / (1.0 + math.Exp(-z))
	out := &Output{
		ProbPositive: p,
		ProbNegative: 1.0 - p,
	}
	if p >= c.art.Threshold {
		out.Class = 1
	}
	return out, nil
}

func readArtifact(ctx context.Context, path, credentialsFile string) ([]byte, error) {
	bucket, key, ok := splitGCSPath(path)
	if !ok {
		return os.ReadFile(path)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var client *storage.Client
	var err error
	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile), option.WithScopes(storage.ScopeReadOnly))
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadOnly))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func splitGCSPath(path string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(path, "gs://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
