package netutil

import (
	"net"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// ValidateHttpUrl validates an endpoint URL with an http or https scheme.
// Nothing is fetched or resolved.
func ValidateHttpUrl(value string, requireSecureConnection bool) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}

	if requireSecureConnection && parsed.Scheme != "https" {
		return errors.New("url scheme must be https")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}

	host := parsed.Hostname()
	if len(host) == 0 {
		return errors.New("host component missing")
	}
	if net.ParseIP(host) == nil {
		if err := ValidateDomainName(host); err != nil {
			return errors.Wrap(err, "host is not a valid domain name")
		}
	}

	if port := parsed.Port(); len(port) > 0 {
		if err := validatePort(port); err != nil {
			return err
		}
	}

	if parsed.User != nil {
		return errors.New("url must not carry credentials")
	}
	return nil
}

func validatePort(value string) error {
	port, err := strconv.ParseUint(value, 10, 16)
	if err != nil || port == 0 {
		return errors.Errorf("invalid port %q", value)
	}
	return nil
}
