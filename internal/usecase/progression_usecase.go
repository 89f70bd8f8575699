package usecase

import (
	"context"

	"drivn/internal/domain/entity"
	"drivn/internal/domain/repository"
)

// XP thresholds are triangular: level n starts at 100 * n * (n-1) / 2, so
// each level costs 100 XP more than the previous one.
const xpLevelStep = 100

type LevelProgress struct {
	Level    int `json:"level"`
	XP       int `json:"xp"`
	XPInto   int `json:"xp_into_level"`
	XPToNext int `json:"xp_to_next_level"`
}

// LevelForXP derives the level reached with the given XP total.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for xp >= XPThreshold(level+1) {
		level++
	}
	return level
}

// XPThreshold returns the XP total at which the given level starts.
func XPThreshold(level int) int {
	if level <= 1 {
		return 0
	}
	return xpLevelStep * level * (level - 1) / 2
}

func ProgressForXP(xp int) LevelProgress {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	floor := XPThreshold(level)
	ceil := XPThreshold(level + 1)
	return LevelProgress{
		Level:    level,
		XP:       xp,
		XPInto:   xp - floor,
		XPToNext: ceil - xp,
	}
}

type ProgressionUseCase struct {
	userRepo repository.UserRepository
}

func NewProgressionUseCase(userRepo repository.UserRepository) *ProgressionUseCase {
	return &ProgressionUseCase{
		userRepo: userRepo,
	}
}

type UserProgressResponse struct {
	User     *entity.User  `json:"user"`
	Progress LevelProgress `json:"progress"`
}

func (uc *ProgressionUseCase) UserProgress(ctx context.Context, userID string) (*UserProgressResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserProgressResponse{
		User:     user,
		Progress: ProgressForXP(user.XP),
	}, nil
}
