package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRoundResultMessage returns a headline and summary for a finished round
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetGameResultMessage returns a headline and summary for a finished game
	GetGameResultMessage(ctx context.Context, input *GetGameResultMessageInput) (*GetGameResultMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
