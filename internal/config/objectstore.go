package config

import "os"

// ObjectStoreConfig configures the S3-compatible bucket holding guest
// KYC documents.  The bucket is private; documents are served to staff
// through short-lived presigned URLs.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LoadObjectStoreConfig reads the S3_* environment variables.  An empty
// endpoint disables document upload; handlers report the feature as
// unavailable rather than failing at startup.
func LoadObjectStoreConfig() ObjectStoreConfig {
	return ObjectStoreConfig{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Bucket:    getenv("S3_BUCKET", "guest-ids"),
		UseSSL:    envBool("S3_USE_SSL", false),
	}
}
