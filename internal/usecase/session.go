package usecase

import (
	"context"
	"fmt"
	"time"

	"pizza-service/internal/data/entity"
	"pizza-service/internal/data/repository"
	"pizza-service/pkg/utils"
)

// sessionIssuer signs a token for a user and records it in the session registry.
type sessionIssuer struct {
	sessions repository.SessionRepository
	tokens   *utils.JWTManager
}

func (i *sessionIssuer) issue(ctx context.Context, user *entity.User) (string, error) {
	token, tokenID, err := i.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	session := &entity.Session{
		TokenID:  tokenID,
		UserID:   user.ID,
		IssuedAt: time.Now(),
	}
	if client, ok := utils.GetClientInfo(ctx); ok {
		session.UserAgent = nonEmpty(client.UserAgent)
		session.IPAddress = nonEmpty(client.IPAddress)
	}
	if err := i.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}

	return token, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
