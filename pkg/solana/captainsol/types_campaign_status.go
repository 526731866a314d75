package captainsol

import (
	"strings"

	"github.com/pkg/errors"
)

// CampaignStatus mirrors the on-chain enum. Its Borsh encoding is the
// variant index.
type CampaignStatus uint8

const (
	CampaignStatusActive CampaignStatus = iota
	CampaignStatusExpired
	CampaignStatusClosed
)

var ErrUnknownCampaignStatus = errors.New("unknown campaign status")

func (s CampaignStatus) IsValid() bool {
	return s <= CampaignStatusClosed
}

func (s CampaignStatus) String() string {
	switch s {
	case CampaignStatusActive:
		return "Active"
	case CampaignStatusExpired:
		return "Expired"
	case CampaignStatusClosed:
		return "Closed"
	}
	return "Unknown"
}

// ParseCampaignStatus accepts the variant name in any case, which covers both
// the IDL's camelCase keys and display strings.
func ParseCampaignStatus(value string) (CampaignStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return CampaignStatusActive, nil
	case "expired":
		return CampaignStatusExpired, nil
	case "closed":
		return CampaignStatusClosed, nil
	}
	return 0, errors.Wrap(ErrUnknownCampaignStatus, value)
}

func (s CampaignStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrUnknownCampaignStatus
	}
	return []byte(strings.ToLower(s.String())), nil
}

func (s *CampaignStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseCampaignStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
