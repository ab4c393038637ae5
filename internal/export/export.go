// Package export writes search results to object storage.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/pageza/recipes-service/internal/query"
	"github.com/pageza/recipes-service/internal/types"
)

// ObjectPutter is the part of the S3 client the exporter uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Searcher runs recipe searches.
type Searcher interface {
	SearchRecipes(ctx context.Context, filters query.Filters) ([]types.RecipeResponse, error)
}

// Snapshot is the document written to the bucket.
type Snapshot struct {
	ExportedAt time.Time              `json:"exportedAt"`
	Criteria   string                 `json:"criteria"`
	Count      int                    `json:"count"`
	Recipes    []types.RecipeResponse `json:"recipes"`
}

type Exporter struct {
	client ObjectPutter
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

func NewExporter(client ObjectPutter, bucket string, logger *zap.Logger) *Exporter {
	return &Exporter{
		client: client,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// Export runs the search and uploads the result. An empty key gets a timestamped name.
// It returns the object key.
func (e *Exporter) Export(ctx context.Context, recipes Searcher, filters query.Filters, key string) (string, error) {
	found, err := recipes.SearchRecipes(ctx, filters)
	if err != nil {
		return "", fmt.Errorf("failed to search recipes: %w", err)
	}

	now := e.now().UTC()
	if key == "" {
		key = fmt.Sprintf("exports/recipes-%s.json", now.Format("20060102T150405Z"))
	}

	body, err := json.MarshalIndent(Snapshot{
		ExportedAt: now,
		Criteria:   query.Build(filters).String(),
		Count:      len(found),
		Recipes:    found,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export to s3://%s/%s: %w", e.bucket, key, err)
	}

	e.logger.Info("Exported recipes",
		zap.String("bucket", e.bucket),
		zap.String("key", key),
		zap.Int("count", len(found)))
	return key, nil
}
