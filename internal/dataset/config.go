package dataset

import (
	"net/http"
	"time"
)

type Config struct {
	SourceURL   string
	LoadTimeout time.Duration
	HTTPClient  *http.Client
	S3Client    ObjectGetter
	S3Region    string
	S3Endpoint  string
	// Static S3 credentials. Both empty means the default credential chain.
	S3AccessKey string
	S3SecretKey string
}
