package instance

import "os"

// GetID returns the process instance identifier used in log fields. Platform
// dyno names win over the host name.
func GetID() string {
	for _, key := range []string{"DYNO", "STOREFRONT_INSTANCE_ID", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
