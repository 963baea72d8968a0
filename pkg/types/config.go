package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"5001"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// CORS
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Attachment storage. Backend is "local" or "s3".
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"local"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	S3KeyPrefix    string `envconfig:"S3_KEY_PREFIX" default:"attachments"`
}
