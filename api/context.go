package api

import (
	"context"
)

type keyType string

const (
	uploaderKey keyType = "uploader"
)

// ctxWithUploader records who was authorized to upload
func ctxWithUploader(ctx context.Context, uploader string) context.Context {
	return context.WithValue(ctx, uploaderKey, uploader)
}

// ctxGetUploader returns the authorized uploader, or "" for open upload routes
func ctxGetUploader(ctx context.Context) string {
	uploader, _ := ctx.Value(uploaderKey).(string)
	return uploader
}
