package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Invite codes are 5 characters drawn uniformly from an alphabet that
// drops the visually ambiguous symbols 0, O, 1, I and L. Uniqueness is
// not guaranteed by entropy alone; GenerateUniqueInviteCode retries
// against the leagues table.
const (
	inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 5

	maxInviteCodeAttempts = 10
)

// GenerateInviteCode produces one random 5-character code.
func GenerateInviteCode() (string, error) {
	max := big.NewInt(int64(len(inviteCodeAlphabet)))

	var b strings.Builder
	b.Grow(inviteCodeLength)
	for i := 0; i < inviteCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random symbol: %w", err)
		}
		b.WriteByte(inviteCodeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// ValidateInviteCode checks structure only: exactly 5 characters, all
// from the generation alphabet, case-insensitive. Existence is a
// separate lookup.
func ValidateInviteCode(code string) bool {
	if len(code) != inviteCodeLength {
		return false
	}
	for _, c := range strings.ToUpper(code) {
		if !strings.ContainsRune(inviteCodeAlphabet, c) {
			return false
		}
	}
	return true
}

// generateUniqueInviteCode draws codes until one is absent from the
// leagues table, giving up after the attempt budget. With a keyspace of
// 31^5 a collision streak that long means something is wrong.
func generateUniqueInviteCode(ctx context.Context, leagues LeagueStore) (string, error) {
	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		code, err := GenerateInviteCode()
		if err != nil {
			return "", err
		}

		exists, err := leagues.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique invite code after %d attempts", maxInviteCodeAttempts)
}
