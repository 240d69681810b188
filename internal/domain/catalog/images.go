package catalog

// Some historical image URLs carry a trailing ":<digits>" revision marker
// left behind by an old importer. Read paths strip it before the URL
// reaches a client.

func stripRevisionSuffix(url string) string {
	i := len(url) - 1
	digits := 0
	for i >= 0 && url[i] >= '0' && url[i] <= '9' {
		i--
		digits++
	}
	if digits == 0 || i < 0 || url[i] != ':' {
		return url
	}
	// A ":<digits>" tail directly after the host is a port, not a marker.
	if !hasPath(url[:i]) {
		return url
	}
	return url[:i]
}

// hasPath reports whether s contains a path component beyond the
// "scheme://host" prefix.
func hasPath(s string) bool {
	slashes := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			slashes++
			if slashes > 2 {
				return true
			}
		}
	}
	return false
}

func cleanImageURLs(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = stripRevisionSuffix(u)
	}
	return out
}
