// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/constants"
)

// # Redis Session Repository

/*
RedisSessionRepository implements [SessionRepository].

Layout:
  - auth:session:<hash>          JSON [Session], expires with the session
  - auth:user_sessions:<userID>  set of live hashes, used by RevokeAll
*/
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSession + userID
}

/*
Create stores the session and indexes it under its owner.

Parameters:
  - context: context.Context
  - tokenHash: string
  - session: *Session
  - ttl: time.Duration

Returns:
  - error: Serialisation or Redis failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: failed to encode session: %w", err)
	}

	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey(tokenHash), payload, ttl)
	pipe.SAdd(context, userSessionsKey(session.UserID), tokenHash)
	pipe.Expire(context, userSessionsKey(session.UserID), ttl)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to store session: %w", err)
	}
	return nil
}

// Find returns the live session for tokenHash. Expired and revoked sessions
// are simply absent and report NOT_FOUND.
func (repository *RedisSessionRepository) Find(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis: failed to read session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis: failed to decode session: %w", err)
	}
	return session, nil
}

// Revoke deletes the session for tokenHash and drops it from the owner's index.
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.Find(context, tokenHash)
	if apperr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey(tokenHash))
	pipe.SRem(context, userSessionsKey(session.UserID), tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAll deletes every session indexed under userID.
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	hashes, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis: failed to list sessions: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, userSessionsKey(userID))

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis: failed to revoke sessions: %w", err)
	}
	return nil
}
