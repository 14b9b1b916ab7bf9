package flower

// ExtractTypes returns the distinct types of records in order of first
// appearance. Records without types are skipped.
func ExtractTypes[R any](records []R, typesOf func(R) []string) []string {
	seen := make(map[string]struct{})
	types := []string{}
	for _, r := range records {
		for _, t := range typesOf(r) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	return types
}
