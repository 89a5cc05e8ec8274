package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.Len(t, code, 5)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(inviteCodeAlphabet, c),
				"code %s contains %q outside the alphabet", code, c)
		}
		// none of the ambiguous symbols may ever appear
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "L")
	}
}

func TestGeneratedCodeRoundTripsThroughValidation(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.True(t, ValidateInviteCode(code), "generated code %s failed validation", code)
		assert.True(t, ValidateInviteCode(strings.ToLower(code)), "validation must be case-insensitive")
	}
}

func TestValidateInviteCode_Rejections(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"too short", "ABCD"},
		{"too long", "ABCDEF"},
		{"empty", ""},
		{"ambiguous zero", "AB0CD"},
		{"ambiguous oh", "ABOCD"},
		{"ambiguous one", "AB1CD"},
		{"ambiguous eye", "ABICD"},
		{"ambiguous ell", "ABLCD"},
		{"punctuation", "AB-CD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, ValidateInviteCode(tc.code))
		})
	}
}

func TestGenerateUniqueInviteCode_RetriesOnCollision(t *testing.T) {
	leagues := new(MockLeagueStore)
	// first two draws collide, third is free
	leagues.On("InviteCodeExists", mock.Anything, mock.Anything).Return(true, nil).Twice()
	leagues.On("InviteCodeExists", mock.Anything, mock.Anything).Return(false, nil).Once()

	code, err := generateUniqueInviteCode(context.Background(), leagues)
	require.NoError(t, err)
	assert.True(t, ValidateInviteCode(code))
	leagues.AssertExpectations(t)
}

func TestGenerateUniqueInviteCode_GivesUpAfterBudget(t *testing.T) {
	leagues := new(MockLeagueStore)
	leagues.On("InviteCodeExists", mock.Anything, mock.Anything).Return(true, nil)

	_, err := generateUniqueInviteCode(context.Background(), leagues)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 attempts")
	leagues.AssertNumberOfCalls(t, "InviteCodeExists", maxInviteCodeAttempts)
}
