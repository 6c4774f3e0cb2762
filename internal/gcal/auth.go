package gcal

import (
	"encoding/base64"
	"fmt"
	"os"
)

// LoadServiceAccount returns the service-account JSON key, preferring the
// base64 env form over the key file on disk.
func LoadServiceAccount(b64, file string) ([]byte, error) {
	if b64 != "" {
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode service account key: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}
	return data, nil
}
