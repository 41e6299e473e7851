package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ValidateShareUrl validates a URL provided by the user and returns it in
// canonical form. Only this deployment's own share links are accepted; the QR
// endpoint must not become a generic QR generator for arbitrary destinations.
func ValidateShareUrl(baseUrl, userUrl string) (string, error) {
	if userUrl == "" {
		return "", errors.New("missing url")
	}

	base, err := url.Parse(baseUrl)
	if err != nil || base.Host == "" {
		return "", fmt.Errorf("invalid base url %q", baseUrl)
	}

	u, err := url.Parse(userUrl)
	if err != nil {
		return "", errors.New("invalid url")
	}

	if u.Scheme != base.Scheme || u.Host != base.Host {
		return "", errors.New("url does not belong to this service")
	}

	linkID, ok := strings.CutPrefix(u.Path, "/view/")
	if !ok || linkID == "" {
		return "", errors.New("not a share link")
	}
	if _, err := uuid.Parse(linkID); err != nil {
		return "", errors.New("invalid link id")
	}

	return base.Scheme + "://" + base.Host + "/view/" + linkID, nil
}
