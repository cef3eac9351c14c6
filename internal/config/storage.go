package config

type StorageConfig struct {
	Provider string // local, s3, mongo
	Local    *LocalStorageConfig
	AWS      *AWSStorageConfig
}

type LocalStorageConfig struct {
	BasePath string
	BaseURL  string
}

type AWSStorageConfig struct {
	Region    string
	Bucket    string
	CDNDomain string
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider: getEnv("STORAGE_PROVIDER", "local"),
		Local: &LocalStorageConfig{
			BasePath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
			BaseURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:8080/uploads"),
		},
		AWS: &AWSStorageConfig{
			Region:    getEnv("AWS_S3_REGION", "us-east-1"),
			Bucket:    getEnv("AWS_S3_BUCKET", ""),
			CDNDomain: getEnv("AWS_CLOUDFRONT_DOMAIN", ""),
		},
	}
}
