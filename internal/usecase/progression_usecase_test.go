package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivn/internal/domain/entity"
	"drivn/pkg/errors"
)

func TestXPThreshold(t *testing.T) {
	assert.Equal(t, 0, XPThreshold(1))
	assert.Equal(t, 100, XPThreshold(2))
	assert.Equal(t, 300, XPThreshold(3))
	assert.Equal(t, 600, XPThreshold(4))
	assert.Equal(t, 1000, XPThreshold(5))
	assert.Equal(t, 0, XPThreshold(0))
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{-50, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{599, 3},
		{600, 4},
		{1000, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LevelForXP(tc.xp), "LevelForXP(%d)", tc.xp)
	}
}

func TestProgressForXP(t *testing.T) {
	progress := ProgressForXP(350)
	assert.Equal(t, 3, progress.Level)
	assert.Equal(t, 350, progress.XP)
	assert.Equal(t, 50, progress.XPInto)
	assert.Equal(t, 250, progress.XPToNext)

	atBoundary := ProgressForXP(100)
	assert.Equal(t, 2, atBoundary.Level)
	assert.Equal(t, 0, atBoundary.XPInto)
	assert.Equal(t, 200, atBoundary.XPToNext)

	negative := ProgressForXP(-10)
	assert.Equal(t, 1, negative.Level)
	assert.Equal(t, 0, negative.XP)
}

func TestUserProgress(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Username: "gearhead", XP: 450},
	}}
	uc := NewProgressionUseCase(userRepo)

	got, err := uc.UserProgress(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "gearhead", got.User.Username)
	assert.Equal(t, 3, got.Progress.Level)

	_, err = uc.UserProgress(context.Background(), "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
