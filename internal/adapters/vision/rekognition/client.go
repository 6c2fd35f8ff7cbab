// Package rekognition implementa vision.LabelExtractor y vision.FoodIdentifier con AWS Rekognition.
package rekognition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

var (
	ErrNotConfigured = errors.New("rekognition not configured")
	ErrUpstream      = errors.New("rekognition upstream error")
	ErrEmptyImage    = errors.New("empty image")
)

// API es el subconjunto del cliente de Rekognition que se usa (reemplazable en tests).
type API interface {
	DetectText(ctx context.Context, in *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

type Config struct {
	Region string

	MaxLabels     int32   // default 20
	MinConfidence float32 // default 70
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.Region) != ""
}

type Client struct {
	api API
	cfg Config
}

// New carga credenciales con la cadena por defecto del SDK (env, perfil, rol).
func New(ctx context.Context, cfg Config) (*Client, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPI(rekognition.NewFromConfig(awsCfg), cfg), nil
}

func NewWithAPI(api API, cfg Config) *Client {
	if cfg.MaxLabels <= 0 {
		cfg.MaxLabels = 20
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 70
	}
	return &Client{api: api, cfg: cfg}
}

// detectLines devuelve solo las detecciones de tipo LINE, en orden.
func (c *Client) detectLines(ctx context.Context, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	out, err := c.api.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	lines := make([]string, 0, len(out.TextDetections))
	for _, d := range out.TextDetections {
		if d.Type != types.TextTypesLine {
			continue
		}
		lines = append(lines, aws.ToString(d.DetectedText))
	}
	return lines, nil
}

func (c *Client) detectLabels(ctx context.Context, image []byte) ([]string, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	out, err := c.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(c.cfg.MaxLabels),
		MinConfidence: aws.Float32(c.cfg.MinConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}
