// Package store provides namespaced key-value persistence that survives
// power loss. Callers open a namespace, read or write named values, and
// close it again around each access group; a Close after writes must either
// land completely or leave the previous contents intact.
package store

// Store opens named value buckets.
type Store interface {
	Open(namespace string) (Bucket, error)
}

// Bucket reads and writes named values within one namespace. Get methods
// return the supplied default when the key is absent or malformed.
type Bucket interface {
	GetInt(key string, def int) int
	PutInt(key string, v int) error
	GetString(key, def string) string
	PutString(key, v string) error

	// Close flushes pending writes and releases the bucket.
	Close() error
}

// Namespaces and keys shared by the node and the console.
const (
	NSCalibration = "calibration"
	NSWifi        = "wifi-config"
	NSCredentials = "network-credentials"

	KeyDry = "dry_value"
	KeyWet = "wet_value"

	KeySSID = "ssid"
	KeyPSK  = "psk"

	// KeyEndpoint holds the remote delivery endpoint; its presence is the
	// "device is configured" signal the dispatcher checks.
	KeyEndpoint = "endpoint"
)
