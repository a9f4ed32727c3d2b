package util

// ShortID returns a shortened version of a container or image ID, safe for any length
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// GetImageFriendlyName tries to find a human-readable name from image labels
func GetImageFriendlyName(labels map[string]string) string {
	if labels == nil {
		return ""
	}

	// Priority list of labels to check
	keys := []string{
		"org.opencontainers.image.title",
		"org.label-schema.name",
		"com.docker.compose.service",
		"name",
	}

	for _, key := range keys {
		if val, ok := labels[key]; ok && val != "" {
			return val
		}
	}
	return ""
}
