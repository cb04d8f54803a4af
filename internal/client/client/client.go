package client

import (
	"context"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
)

type Client interface {
	Health(ctx context.Context) error
	VerifyUsername(ctx context.Context, username string) (*models.LoginResult, error)
	GetProfile(ctx context.Context) (*models.Session, error)
	VerifyAttestation(ctx context.Context) (*models.AttestationResult, error)
	SubmitProposal(ctx context.Context, content string) (*models.ProposalResult, error)
	GetLeaderboard(ctx context.Context) (*models.Leaderboard, error)

	Token() string
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// TokenStore is the durable home of the bearer token.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}
