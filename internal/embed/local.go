package embed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/ppiankov/gnosia/internal/model"
)

// defaultLocalModel is a small sentence-transformer that works well for
// short claim texts and runs comfortably on CPU.
const defaultLocalModel = "sentence-transformers/all-MiniLM-L6-v2"

// LocalEmbedder implements Embedder with an ONNX model running in-process.
// No network calls after the model is loaded, which makes it the provider
// of choice for air-gapped batch runs.
type LocalEmbedder struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	model    string
}

// NewLocalEmbedder loads an ONNX feature-extraction model. If cfg.ModelPath
// is empty the default model is downloaded into ~/.gnosia/models on first
// use. Call Close when done to release the ONNX runtime session.
func NewLocalEmbedder(cfg model.EmbeddingConfig) (*LocalEmbedder, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultLocalModel
	}

	modelPath := cfg.ModelPath
	if modelPath == "" {
		dir, err := defaultModelDir()
		if err != nil {
			return nil, err
		}

		slog.Debug("downloading embedding model", slog.String("model", modelName), slog.String("dir", dir))
		downloaded, err := hugot.DownloadModel(modelName, dir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("download model %s: %w", modelName, err)
		}
		modelPath = downloaded
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("initialize onnx session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "gnosiaEmbeddingPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("initialize embedding pipeline: %w", err)
	}

	return &LocalEmbedder{
		session:  session,
		pipeline: pipeline,
		model:    modelName,
	}, nil
}

// Model returns the embedding model identifier
func (e *LocalEmbedder) Model() string {
	return e.model
}

// Embed returns normalized vectors for the given texts
func (e *LocalEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := e.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("run embedding pipeline: %w", err)
	}

	if len(output.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(output.Embeddings))
	}

	vectors := make([][]float64, len(output.Embeddings))
	for i, emb := range output.Embeddings {
		vectors[i] = toFloat64(emb)
	}

	return vectors, nil
}

// Close releases the ONNX runtime session.
func (e *LocalEmbedder) Close() error {
	return e.session.Destroy()
}

func defaultModelDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home dir: %w", err)
	}
	dir := home + "/.gnosia/models"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create model dir: %w", err)
	}
	return dir, nil
}
