package display

import "net/url"

// Links at or under this many characters are displayed as-is.
const maxLinkLength = 60

// TruncateLink produces a compact representation of a URL for display,
// preserving the scheme and host so users can still judge where a link goes.
// Anything that does not parse as an absolute URL with a host is treated as an
// opaque string and elided in the middle. Never fails, whatever the input.
func TruncateLink(rawUrl string) string {
	runes := []rune(rawUrl)
	if len(runes) <= maxLinkLength {
		return rawUrl
	}

	u, err := url.Parse(rawUrl)
	if err != nil || !u.IsAbs() || u.Host == "" {
		// Not a URL we can pick apart; keep the head and tail of the raw string.
		return string(runes[:30]) + "..." + string(runes[len(runes)-20:])
	}

	path := u.Path
	if len([]rune(path)) > 5 {
		path = string([]rune(path)[:5]) + "..."
	}

	fragment := ""
	if u.Fragment != "" {
		f := []rune(u.Fragment)
		head := f
		if len(f) > 8 {
			head = f[:8]
		}
		tail := f
		if len(f) > 4 {
			tail = f[len(f)-4:]
		}
		fragment = "#" + string(head) + "..." + string(tail)
	}

	return u.Scheme + "://" + u.Host + path + fragment
}
