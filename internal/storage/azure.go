// internal/storage/azure.go
package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	"animal-finder-api-server/config"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/pkg/errors"
)

type AzureUploader struct {
	client    *azblob.Client
	container string
}

func NewAzureUploader(cfg config.AzureConfig) (*AzureUploader, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create blob storage client")
	}

	return &AzureUploader{client: client, container: cfg.Container}, nil
}

// Upload streams the object into the container and returns the blob URL.
func (a *AzureUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	if _, err := a.client.UploadStream(ctx, a.container, key, body, opts); err != nil {
		return "", errors.Wrap(err, "failed to upload blob")
	}

	return strings.TrimSuffix(a.client.URL(), "/") + "/" + a.container + "/" + url.PathEscape(key), nil
}
