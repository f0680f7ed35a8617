package domain

// SanitizeResource maps a resource address to a filesystem-safe key by
// replacing every non-alphanumeric byte with an underscore. History keys and
// rendered chart filenames must agree on this mapping, so it is part of the
// public contract.
func SanitizeResource(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			out[i] = c
		} else {
			out[i] = '_'
		}
	}
	return string(out)
}
