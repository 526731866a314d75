package netutil

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

const (
	maxDomainNameSize = 253
)

// ValidateDomainName validates a host name under IDNA registration rules. A
// single trailing dot, as in a fully qualified name, is accepted.
func ValidateDomainName(value string) error {
	value = strings.TrimSuffix(value, ".")
	if len(value) == 0 {
		return errors.New("domain name is empty")
	}
	if len(value) > maxDomainNameSize {
		return errors.New("domain name length exceeds limit")
	}
	if _, err := idna.Registration.ToASCII(value); err != nil {
		return errors.Wrap(err, "domain name is invalid")
	}
	return nil
}
