package utilcss

// expandApply returns the class names contributed by aliases among
// requested, in request order. Expanded names are not looked up again, so
// an alias listing another alias does not pull in the second one's classes.
func expandApply(requested []string, apply map[string][]string) []string {
	var expanded []string
	for _, name := range requested {
		if classes, ok := apply[name]; ok {
			expanded = append(expanded, classes...)
		}
	}
	return expanded
}
