// Copyright (c) 2026 NotesAI. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cevheri/noteai/internal/platform/apperr"
	"github.com/cevheri/noteai/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// # Key Layout
//
//   - auth:session:<id>            JSON session, native TTL = remaining lifetime
//   - auth:user_sessions:<userID>  SET of session ids owned by the user
//   - auth:session_index           ZSET "userID|sessionID" scored by expiry (unix seconds)
//
// The index is pruned lazily by CountActiveUsers.
type RedisSessionRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, now: time.Now}
}

func sessionKey(id string) string { return constants.RedisPrefixSession + id }

func userSessionsKey(userID string) string { return constants.RedisPrefixUserSessions + userID }

func indexMember(userID, id string) string { return userID + "|" + id }

/*
Create stores the session with a TTL equal to its remaining lifetime.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	ttl := session.ExpiresAt.Sub(repository.now())
	if ttl <= 0 {
		return nil
	}

	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey(session.ID), payload, ttl)
	pipe.SAdd(context, userSessionsKey(session.UserID), session.ID)
	pipe.ZAdd(context, constants.RedisKeySessionIndex, redis.Z{
		Score:  float64(session.ExpiresAt.Unix()),
		Member: indexMember(session.UserID, session.ID),
	})

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}
	return nil
}

/*
FindByID loads a session.

Description: Returns apperr.NotFound if the key is absent (deleted or evicted).

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Session: Hydrated session
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByID(context context.Context, id string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}
	return session, nil
}

/*
Delete removes a session and its index entries.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, id string) error {
	session, err := repository.FindByID(context, id)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil
		}
		return err
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey(id))
	pipe.SRem(context, userSessionsKey(session.UserID), id)
	pipe.ZRem(context, constants.RedisKeySessionIndex, indexMember(session.UserID, id))

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

/*
DeleteByUser removes every session owned by userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (repository *RedisSessionRepository) DeleteByUser(context context.Context, userID string) error {
	ids, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_user_sessions_get_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(context, sessionKey(id))
		pipe.ZRem(context, constants.RedisKeySessionIndex, indexMember(userID, id))
	}
	pipe.Del(context, userSessionsKey(userID))

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_user_sessions_delete_failed: %w", err)
	}
	return nil
}

/*
CountActiveUsers counts distinct users in the index with an expiry after now.

Parameters:
  - context: context.Context
  - now: time.Time

Returns:
  - int: Distinct users
  - error: Execution failures
*/
func (repository *RedisSessionRepository) CountActiveUsers(context context.Context, now time.Time) (int, error) {
	cutoff := strconv.FormatInt(now.Unix(), 10)

	// 1. Drop entries that expired (score <= now)
	if err := repository.client.ZRemRangeByScore(context, constants.RedisKeySessionIndex, "-inf", cutoff).Err(); err != nil {
		return 0, fmt.Errorf("redis_session_index_prune_failed: %w", err)
	}

	// 2. Collect the remaining members and de-duplicate by user
	members, err := repository.client.ZRangeByScore(context, constants.RedisKeySessionIndex, &redis.ZRangeBy{
		Min: "(" + cutoff,
		Max: "+inf",
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_session_index_range_failed: %w", err)
	}

	users := make(map[string]struct{}, len(members))
	for _, member := range members {
		userID, _, _ := strings.Cut(member, "|")
		users[userID] = struct{}{}
	}
	return len(users), nil
}
