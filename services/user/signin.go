package user

import (
	"context"
	"fmt"
	"time"

	"lendvault/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateUser verifies credentials, rotates the stored token hash and
// returns a fresh session. One active session per user: signing in invalidates
// the previous token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, userRec.Role, 24*time.Hour)
	if err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(userRec.ID, bson.M{"token_hash": tokenHash}); err != nil {
		utils.GetLogger().Error("AuthenticateUser: failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	cacheAuthToken(userRec.ID, tokenHash)

	return &AuthResponse{
		ID:    userRec.ID,
		Token: token,
		Name:  userRec.Name,
		Email: userRec.Email,
		Role:  userRec.Role,
	}, nil
}

// RevokeAuthToken clears the stored token hash and the cached copy.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"token_hash": ""}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	dropCachedAuthToken(userID)
	return nil
}

// cacheAuthToken writes the token hash into the auth cache DB so the auth
// middleware can skip the Mongo lookup. Cache failures are non-fatal.
func cacheAuthToken(userID, tokenHash string) {
	authCache := utils.AuthCacheClient
	if authCache == nil {
		return
	}
	ctx := context.Background()
	if err := authCache.Set(ctx, utils.AuthCachePrefix+userID, tokenHash, time.Hour).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache auth token", zap.Error(err))
	}
}

func dropCachedAuthToken(userID string) {
	authCache := utils.AuthCacheClient
	if authCache == nil {
		return
	}
	if err := authCache.Del(context.Background(), utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to clear cached auth token", zap.Error(err))
	}
}
