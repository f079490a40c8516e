package cloud

// TagsMap flattens raw tags into a map. Later duplicates of a key overwrite earlier ones.
func TagsMap(tags []Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		result[tag.Key] = tag.Value
	}
	return result
}

// TagsFromMap converts a metadata map into raw tags.
func TagsFromMap(metadata map[string]string) []Tag {
	result := make([]Tag, 0, len(metadata))
	for k, v := range metadata {
		result = append(result, Tag{Key: k, Value: v})
	}
	return result
}

// TagValue returns the value of the first tag with the given key.
func TagValue(tags []Tag, key string) (string, bool) {
	for _, tag := range tags {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}
