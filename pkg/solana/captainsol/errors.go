package captainsol

import (
	"fmt"
)

// ProgramError is a custom error code returned by the program. Anchor offsets
// user defined codes by 6000.
type ProgramError uint32

const (
	ErrorInvalidTimeRange ProgramError = iota + 6000
	ErrorCampaignNotActive
	ErrorUnauthorizedCreator
	ErrorInvalidPlatformWallet
	ErrorModuleAlreadyCompleted
	ErrorNftLimitReached
	ErrorNftAlreadyMinted
	ErrorInsufficientFunds
	ErrorInvalidIpfsHash
	ErrorCampaignNotExpired
	ErrorParticipantNotRegistered
	ErrorInvalidModule
	ErrorIncompleteModules
	ErrorCampaignExpired
)

var programErrorMessages = map[ProgramError]string{
	ErrorInvalidTimeRange:         "End time must be after start time",
	ErrorCampaignNotActive:        "Campaign is not active or has expired",
	ErrorUnauthorizedCreator:      "Only the campaign creator can perform this action",
	ErrorInvalidPlatformWallet:    "Invalid platform wallet address provided",
	ErrorModuleAlreadyCompleted:   "This module has already been completed",
	ErrorNftLimitReached:          "NFT limit has been reached for this campaign",
	ErrorNftAlreadyMinted:         "Participant has already minted an NFT for this campaign",
	ErrorInsufficientFunds:        "Insufficient funds to create campaign (requires 10 SOL)",
	ErrorInvalidIpfsHash:          "Invalid IPFS hash format",
	ErrorCampaignNotExpired:       "Campaign has not expired yet",
	ErrorParticipantNotRegistered: "Participant is not registered for this campaign",
	ErrorInvalidModule:            "Module does not belong to this campaign",
	ErrorIncompleteModules:        "Not all modules have been completed",
	ErrorCampaignExpired:          "Campaign has expired and is no longer accepting actions",
}

// GetProgramError maps a custom error code to a known program error.
func GetProgramError(code uint32) (ProgramError, bool) {
	err := ProgramError(code)
	_, ok := programErrorMessages[err]
	return err, ok
}

func (e ProgramError) Error() string {
	if msg, ok := programErrorMessages[e]; ok {
		return msg
	}
	return fmt.Sprintf("unknown program error %d", uint32(e))
}
