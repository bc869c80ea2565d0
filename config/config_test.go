package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Store:      StoreConfig{Driver: DriverMemory, Collection: "animals"},
		Storage:    StorageConfig{Provider: ProviderS3},
		S3:         S3Config{Bucket: "pictures", Region: "us-east-1"},
		Pagination: PaginationConfig{DefaultLimit: 50, MaxLimit: 500},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "mongo without uri", mutate: func(c *Config) { c.Store.Driver = DriverMongo }, wantErr: true},
		{name: "mongo with uri", mutate: func(c *Config) {
			c.Store.Driver = DriverMongo
			c.Mongo.URI = "mongodb://localhost:27017"
		}},
		{name: "firestore", mutate: func(c *Config) { c.Store.Driver = DriverFirestore }},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "postgres" }, wantErr: true},
		{name: "blank collection", mutate: func(c *Config) { c.Store.Collection = " " }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) { c.S3.Bucket = "" }, wantErr: true},
		{name: "azure incomplete", mutate: func(c *Config) { c.Storage.Provider = ProviderAzure }, wantErr: true},
		{name: "azure", mutate: func(c *Config) {
			c.Storage.Provider = ProviderAzure
			c.Azure = AzureConfig{ConnectionString: "UseDevelopmentStorage=true", Container: "pictures"}
		}},
		{name: "unknown provider", mutate: func(c *Config) { c.Storage.Provider = "gcs" }, wantErr: true},
		{name: "default above max", mutate: func(c *Config) { c.Pagination.DefaultLimit = 600 }, wantErr: true},
		{name: "zero limit", mutate: func(c *Config) { c.Pagination.MaxLimit = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		ServerConfig{AllowedOrigins: " https://a.example, ,https://b.example"}.Origins())
	assert.Empty(t, ServerConfig{}.Origins())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
store:
  driver: memory
s3:
  bucket: from-file
pagination:
  defaultLimit: 20
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("S3_BUCKET_NAME", "from-env")
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
	t.Setenv("PAGINATION_MAX_LIMIT", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "from-env", cfg.S3.Bucket)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 500, cfg.Pagination.MaxLimit)
	assert.Equal(t, "animals", cfg.Store.Collection)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_PROVIDER", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("S3_BUCKET_NAME", "bucket")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, ProviderS3, cfg.Storage.Provider)
}
