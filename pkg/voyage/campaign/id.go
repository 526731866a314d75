package campaign

import "time"

// GenerateCampaignId returns a campaign id from the current time in
// milliseconds. Ids only need to be unique per creator.
func GenerateCampaignId() uint64 {
	return uint64(time.Now().UnixMilli())
}
