package detector

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/mealsnap/backend/internal/domain"
)

// labelAPI is the slice of the Rekognition client this detector needs
type labelAPI interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Rekognition detects foods with AWS Rekognition label detection.
// Like the HTTP client it never fails: errors fall back to the default list.
type Rekognition struct {
	api           labelAPI
	minConfidence float32 // Rekognition scale, 0-100
	maxLabels     int32
	fallback      []domain.Detection
}

// genericLabels are Rekognition labels too broad to be useful as foods
var genericLabels = map[string]bool{
	"food":       true,
	"meal":       true,
	"dish":       true,
	"plate":      true,
	"cutlery":    true,
	"lunch":      true,
	"dinner":     true,
	"breakfast":  true,
	"brunch":     true,
	"produce":    true,
	"platter":    true,
	"bowl":       true,
	"table":      true,
	"tableware":  true,
	"restaurant": true,
}

// NewRekognition builds the detector using the default AWS credential chain.
// Region and credentials come from the environment.
func NewRekognition(ctx context.Context, minConfidence float64, maxLabels int) (*Rekognition, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newRekognitionWithAPI(rekognition.NewFromConfig(cfg), minConfidence, maxLabels), nil
}

func newRekognitionWithAPI(api labelAPI, minConfidence float64, maxLabels int) *Rekognition {
	if minConfidence <= 0 || minConfidence > 100 {
		minConfidence = 75
	}
	if maxLabels <= 0 {
		maxLabels = 10
	}
	return &Rekognition{
		api:           api,
		minConfidence: float32(minConfidence),
		maxLabels:     int32(maxLabels),
		fallback:      DefaultFallback(),
	}
}

// SetFallback replaces the fallback detection list. The slice is copied.
func (d *Rekognition) SetFallback(detections []domain.Detection) {
	d.fallback = append([]domain.Detection(nil), detections...)
}

// Detect implements domain.Detector
func (d *Rekognition) Detect(ctx context.Context, imageB64 string) []domain.Detection {
	detections, err := d.fetch(ctx, imageB64)
	if err != nil {
		log.Printf("[REKOGNITION] using fallback detections: %v", err)
		return append([]domain.Detection(nil), d.fallback...)
	}
	return detections
}

func (d *Rekognition) fetch(ctx context.Context, imageB64 string) ([]domain.Detection, error) {
	raw, err := DecodeImage(imageB64)
	if err != nil {
		return nil, err
	}

	out, err := d.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: raw},
		MaxLabels:     aws.Int32(d.maxLabels),
		MinConfidence: aws.Float32(d.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectorUnavailable, err)
	}

	detections := labelsToDetections(out.Labels)
	if len(detections) == 0 {
		return nil, fmt.Errorf("%w: no usable food labels", domain.ErrMalformedDetection)
	}

	return detections, nil
}

// labelsToDetections converts Rekognition labels into detections. A label
// with bounding box instances yields one detection per instance, using the
// box area as the area ratio. A label without instances yields a single
// detection with zero area, which lands in the smallest portion bucket.
func labelsToDetections(labels []types.Label) []domain.Detection {
	var detections []domain.Detection
	for _, label := range labels {
		name := aws.ToString(label.Name)
		if name == "" || genericLabels[strings.ToLower(name)] {
			continue
		}

		if len(label.Instances) == 0 {
			detections = append(detections, domain.Detection{
				FoodLabel:  name,
				Confidence: float64(aws.ToFloat32(label.Confidence)) / 100,
				AreaRatio:  0,
			})
			continue
		}

		for _, inst := range label.Instances {
			conf := aws.ToFloat32(inst.Confidence)
			if conf == 0 {
				conf = aws.ToFloat32(label.Confidence)
			}
			detections = append(detections, domain.Detection{
				FoodLabel:  name,
				Confidence: float64(conf) / 100,
				AreaRatio:  boxArea(inst.BoundingBox),
			})
		}
	}
	return detections
}

// boxArea approximates the fraction of the image a bounding box covers.
// Rekognition reports box dimensions already normalized to [0, 1].
func boxArea(box *types.BoundingBox) float64 {
	if box == nil {
		return 0
	}
	w := float64(aws.ToFloat32(box.Width))
	h := float64(aws.ToFloat32(box.Height))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	area := w * h
	if area > 1 {
		area = 1
	}
	return area
}

// DecodeImage turns a base64 payload, optionally carrying a data URI prefix
// like "data:image/jpeg;base64,", into raw image bytes
func DecodeImage(imageB64 string) ([]byte, error) {
	s := strings.TrimSpace(imageB64)
	if s == "" {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidImage)
	}

	if idx := strings.Index(s, ","); idx >= 0 && strings.Contains(s[:idx], "base64") {
		s = s[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidImage)
	}

	return raw, nil
}
