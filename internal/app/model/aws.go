package model

// This is only for the configuration, not implementing AWS handler logic.

type AwsConfig struct {
	Profile      string `yaml:"profile"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix,omitempty"`
	StorageClass string `yaml:"storage_class,omitempty"`
}

// GetStorageClass returns the configured storage class or STANDARD.
func (a *AwsConfig) GetStorageClass() string {
	if a.StorageClass == "" {
		return "STANDARD"
	}
	return a.StorageClass
}

// Enabled reports whether publishing to S3 is configured at all.
func (a *AwsConfig) Enabled() bool {
	return a.Bucket != ""
}
