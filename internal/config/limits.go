package config

// Name length limits, enforced by request validation
const (
	MaxFolderNameLength  = 255
	MaxProductNameLength = 255
	MaxConfigNameLength  = 255
)

// MaxAssetSize is the upload ceiling for a single GLB binary (100MB)
const MaxAssetSize = 100 << 20
