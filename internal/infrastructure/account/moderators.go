package account

import (
	"context"
	"strings"

	"github.com/riskibarqy/lft-board/internal/domain/user"
)

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

// ModeratorVerifier marks principals whose user id is on the moderator list.
type ModeratorVerifier struct {
	next       TokenVerifier
	moderators map[string]struct{}
}

func WithModerators(next TokenVerifier, userIDs []string) *ModeratorVerifier {
	set := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return &ModeratorVerifier{next: next, moderators: set}
}

func (v *ModeratorVerifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	principal, err := v.next.VerifyAccessToken(ctx, token)
	if err != nil {
		return user.Principal{}, err
	}
	_, principal.IsModerator = v.moderators[principal.UserID]
	return principal, nil
}
