package storage

import "context"

// Provider names, trả về cho client trong field "source"
const (
	ProviderImgur = "imgur"
	ProviderMinIO = "minio"
	ProviderLocal = "local"
)

// ObjectStore là một nơi lưu ảnh và trả về public URL
type ObjectStore interface {
	Name() string
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
