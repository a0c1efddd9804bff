package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/Stembetevo/fairplay/internal/domain/user"
	"github.com/Stembetevo/fairplay/internal/usecase"
)

// StaticVerifier accepts any non-empty token and uses it as the user id.
// Development and the memory driver only; never run it against real traffic.
type StaticVerifier struct{}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{}
}

func (*StaticVerifier) Verify(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: empty token", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: token, Username: token}, nil
}
