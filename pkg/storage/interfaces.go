package storage

import "io"

type BlobStorage interface {
	Upload(key string, reader io.Reader, contentType string) error
	Delete(key string) error
	PublicURL(key string) string
}
