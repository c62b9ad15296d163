package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/boardgame-journal/config"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageHostConfig holds the settings of the bucket uploaded images are stored in.
type ImageHostConfig struct {
	Bucket        string
	Region        string
	Folder        string
	PublicBaseURL string
}

// ImageHostConfigFromMap reads IMAGE_BUCKET, AWS_REGION, IMAGE_UPLOAD_FOLDER and
// IMAGE_PUBLIC_BASE_URL.
func ImageHostConfigFromMap(cfg map[string]string) ImageHostConfig {
	return ImageHostConfig{
		Bucket:        config.GetString(cfg, "IMAGE_BUCKET", ""),
		Region:        config.GetString(cfg, "AWS_REGION", ""),
		Folder:        config.GetString(cfg, "IMAGE_UPLOAD_FOLDER", ""),
		PublicBaseURL: config.GetString(cfg, "IMAGE_PUBLIC_BASE_URL", ""),
	}
}

// IsReady reports whether uploads can be attempted. It does not touch the network.
func (c ImageHostConfig) IsReady() bool {
	return c.Bucket != "" && c.Region != ""
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageUploadOptions are the per-upload overrides. Empty values fall back to the
// host configuration.
type ImageUploadOptions struct {
	Folder   string
	PublicID string
	Tags     []string
}

type ImageHost struct {
	cfg    ImageHostConfig
	logger zerolog.Logger

	mu        sync.Mutex
	client    objectPutter
	newClient func(ctx context.Context) (objectPutter, error)
}

func NewImageHost(cfg ImageHostConfig) *ImageHost {
	host := &ImageHost{
		cfg:    cfg,
		logger: log.With().Str("component", "imageHost").Logger(),
	}
	host.newClient = host.defaultClient
	return host
}

func (h *ImageHost) IsReady() bool {
	return h.cfg.IsReady()
}

func (h *ImageHost) defaultClient(ctx context.Context) (objectPutter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(h.cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// s3Client creates the client on first use and returns the same one afterwards.
// A failed attempt is not kept, so the next upload tries again.
func (h *ImageHost) s3Client(ctx context.Context) (objectPutter, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client != nil {
		return h.client, nil
	}
	client, err := h.newClient(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to create S3 client")
		return nil, err
	}
	h.client = client
	return client, nil
}

// Upload stores data as an image under folder/publicId and returns where it can be
// fetched from. Data that does not decode as a gif, jpeg, png, webp, bmp or tiff
// image is rejected.
func (h *ImageHost) Upload(ctx context.Context, data []byte, opts ImageUploadOptions) (*models.UploadedImage, error) {
	if !h.IsReady() {
		return nil, errs.NewServiceUnavailableError("Image hosting")
	}
	if len(data) == 0 {
		return nil, errs.NewMissingRequiredFieldError("file")
	}

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errs.NewInvalidFieldError("file", "not a supported image")
	}

	key := h.objectKey(opts)

	client, err := h.s3Client(ctx)
	if err != nil {
		return nil, errs.NewImageUploadError(err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(h.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + format),
	}
	if len(opts.Tags) > 0 {
		input.Metadata = map[string]string{"tags": strings.Join(opts.Tags, ",")}
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return nil, errs.NewImageUploadError(err)
	}

	h.logger.Info().Str("key", key).Str("format", format).Msg("Uploaded image")

	return &models.UploadedImage{
		PublicID: key,
		URL:      h.publicURL(key),
		Width:    imgCfg.Width,
		Height:   imgCfg.Height,
		Format:   format,
	}, nil
}

func (h *ImageHost) objectKey(opts ImageUploadOptions) string {
	folder := strings.Trim(strings.TrimSpace(opts.Folder), "/")
	if folder == "" {
		folder = strings.Trim(h.cfg.Folder, "/")
	}
	publicID := strings.Trim(strings.TrimSpace(opts.PublicID), "/")
	if publicID == "" {
		publicID = uuid.NewString()
	}
	if folder == "" {
		return publicID
	}
	return path.Join(folder, publicID)
}

func (h *ImageHost) publicURL(key string) string {
	if h.cfg.PublicBaseURL != "" {
		return strings.TrimRight(h.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.cfg.Bucket, h.cfg.Region, key)
}

// SplitTags splits a comma or newline separated tag field, dropping blanks.
func SplitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' })
	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		if tag := strings.TrimSpace(field); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
