// config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	AllowedOrigins string `mapstructure:"allowedOrigins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Driver     string `mapstructure:"driver"`
	Collection string `mapstructure:"collection"`
	Seed       bool   `mapstructure:"seed"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type FirebaseConfig struct {
	ProjectID       string `mapstructure:"projectID"`
	ServiceAccount  string `mapstructure:"serviceAccount"`
	CredentialsFile string `mapstructure:"credentialsFile"`
}

type StorageConfig struct {
	Provider string `mapstructure:"provider"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type AzureConfig struct {
	ConnectionString string `mapstructure:"connectionString"`
	Container        string `mapstructure:"container"`
}

type PaginationConfig struct {
	DefaultLimit int `mapstructure:"defaultLimit"`
	MaxLimit     int `mapstructure:"maxLimit"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"maxBytes"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Store      StoreConfig      `mapstructure:"store"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Firebase   FirebaseConfig   `mapstructure:"firebase"`
	Storage    StorageConfig    `mapstructure:"storage"`
	S3         S3Config         `mapstructure:"s3"`
	Azure      AzureConfig      `mapstructure:"azure"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Upload     UploadConfig     `mapstructure:"upload"`
}

// Store drivers and storage providers.
const (
	DriverMongo     = "mongo"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"

	ProviderS3    = "s3"
	ProviderAzure = "azure"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":              "PORT",
	"server.allowedOrigins":    "ALLOWED_ORIGINS",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
	"store.driver":             "STORE_DRIVER",
	"store.collection":         "STORE_COLLECTION",
	"store.seed":               "STORE_SEED",
	"mongo.uri":                "MONGO_URI",
	"mongo.dbName":             "MONGO_DBNAME",
	"firebase.projectID":       "FIREBASE_PROJECT_ID",
	"firebase.serviceAccount":  "FIREBASE_SERVICE_ACCOUNT",
	"firebase.credentialsFile": "FIREBASE_CREDENTIALS_FILE",
	"storage.provider":         "STORAGE_PROVIDER",
	"s3.bucket":                "S3_BUCKET_NAME",
	"s3.region":                "S3_REGION",
	"s3.accessKeyID":           "AWS_ACCESS_KEY_ID",
	"s3.secretAccessKey":       "AWS_SECRET_ACCESS_KEY",
	"s3.cloudFrontDomain":      "S3_CLOUDFRONT_DOMAIN",
	"azure.connectionString":   "AZURE_STORAGE_CONNECTION_STRING",
	"azure.container":          "AZURE_STORAGE_CONTAINER",
	"pagination.defaultLimit":  "PAGINATION_DEFAULT_LIMIT",
	"pagination.maxLimit":      "PAGINATION_MAX_LIMIT",
	"upload.maxBytes":          "UPLOAD_MAX_BYTES",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.allowedOrigins", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.collection", "animals")
	v.SetDefault("store.seed", false)
	v.SetDefault("mongo.dbName", "animals")
	v.SetDefault("storage.provider", ProviderS3)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("pagination.defaultLimit", 50)
	v.SetDefault("pagination.maxLimit", 500)
	v.SetDefault("upload.maxBytes", 10<<20)
}

// LoadConfig reads config.yaml from path (optional) and overrides it with
// environment variables, after loading a .env file if one exists.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return
		}
	}

	err = v.ReadInConfig()
	if err != nil {
		// Only a missing file is tolerated; environment variables alone are enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate checks the settings required by the selected driver and provider.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri (MONGO_URI) is required for the %s driver", DriverMongo)
		}
	case DriverFirestore, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if strings.TrimSpace(c.Store.Collection) == "" {
		return fmt.Errorf("store.collection must not be empty")
	}

	switch c.Storage.Provider {
	case ProviderS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket (S3_BUCKET_NAME) is required for the %s provider", ProviderS3)
		}
	case ProviderAzure:
		if c.Azure.ConnectionString == "" || c.Azure.Container == "" {
			return fmt.Errorf("azure.connectionString and azure.container are required for the %s provider", ProviderAzure)
		}
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}

	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < 1 {
		return fmt.Errorf("pagination limits must be positive")
	}
	if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("pagination.defaultLimit cannot exceed pagination.maxLimit")
	}
	return nil
}

// Origins splits the comma-separated origin list.
func (c ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
