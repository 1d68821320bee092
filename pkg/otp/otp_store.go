// Package otp keeps one-time verification codes in redis. Each code lives
// under a purpose-tagged key with a TTL, is consumed by an atomic
// compare-and-delete and is dropped after too many wrong guesses.
package otp

import (
	"context"
	"cookbook-backend/domain"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeReset    Purpose = "reset"

	codeLength = 6

	fieldDigest   = "digest"
	fieldAttempts = "attempts"
)

// consumeScript deletes KEYS[1] when its digest equals ARGV[1]. A mismatch
// bumps the attempts field and deletes the entry once it reaches ARGV[2].
// Returns -1 when the key is missing, 0 on mismatch, 1 when consumed and
// -2 when the attempts are used up.
var consumeScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], 'digest')
if not v then
	return -1
end
if v == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
local n = redis.call('HINCRBY', KEYS[1], 'attempts', 1)
if n >= tonumber(ARGV[2]) then
	redis.call('DEL', KEYS[1])
	return -2
end
return 0
`)

type (
	Store interface {
		// Issue creates a fresh code for (purpose, email), replacing any
		// previous one. It fails with domain.ErrOTPRateLimited when called
		// again within the resend window.
		Issue(ctx context.Context, purpose Purpose, email string) (string, error)
		// Verify consumes the code. A wrong code leaves the stored one intact
		// until MaxVerifyAttempts wrong codes have been tried.
		Verify(ctx context.Context, purpose Purpose, email, code string) error
		// Release drops the code and the resend guard for (purpose, email),
		// e.g. when the code could not be delivered.
		Release(ctx context.Context, purpose Purpose, email string) error
		TTL() time.Duration
	}

	Options struct {
		KeyPrefix         string
		CodeTTL           time.Duration
		ResendAfter       time.Duration
		MaxVerifyAttempts int
	}

	redisStore struct {
		client            redis.UniversalClient
		keyPrefix         string
		codeTTL           time.Duration
		resendAfter       time.Duration
		maxVerifyAttempts int
	}
)

func DefaultOptions() Options {
	return Options{
		KeyPrefix:         "cookbook:otp",
		CodeTTL:           5 * time.Minute,
		ResendAfter:       time.Minute,
		MaxVerifyAttempts: 5,
	}
}

func NewRedisStore(client redis.UniversalClient, opts Options) Store {
	def := DefaultOptions()
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = def.KeyPrefix
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = def.CodeTTL
	}
	if opts.ResendAfter < 0 {
		opts.ResendAfter = 0
	}
	if opts.MaxVerifyAttempts <= 0 {
		opts.MaxVerifyAttempts = def.MaxVerifyAttempts
	}
	return &redisStore{
		client:            client,
		keyPrefix:         opts.KeyPrefix,
		codeTTL:           opts.CodeTTL,
		resendAfter:       opts.ResendAfter,
		maxVerifyAttempts: opts.MaxVerifyAttempts,
	}
}

func (s *redisStore) TTL() time.Duration {
	return s.codeTTL
}

func (s *redisStore) Issue(ctx context.Context, purpose Purpose, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", domain.BadRequest("email is required")
	}

	if s.resendAfter > 0 {
		allowed, err := s.client.SetNX(ctx, s.resendKey(purpose, email), "1", s.resendAfter).Result()
		if err != nil {
			return "", fmt.Errorf("otp resend guard: %w", err)
		}
		if !allowed {
			return "", domain.ErrOTPRateLimited
		}
	}

	code, err := generateNumericCode(codeLength)
	if err != nil {
		s.releaseResend(ctx, purpose, email)
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	key := s.codeKey(purpose, email)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldDigest, digest(code), fieldAttempts, 0)
		pipe.Expire(ctx, key, s.codeTTL)
		return nil
	})
	if err != nil {
		s.releaseResend(ctx, purpose, email)
		return "", fmt.Errorf("store otp code: %w", err)
	}
	return code, nil
}

func (s *redisStore) Verify(ctx context.Context, purpose Purpose, email, code string) error {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.ErrOTPInvalid
	}

	res, err := consumeScript.Run(ctx, s.client, []string{s.codeKey(purpose, email)}, digest(code), s.maxVerifyAttempts).Int()
	if err != nil {
		return fmt.Errorf("verify otp code: %w", err)
	}
	switch res {
	case 1:
		return nil
	case 0:
		return domain.ErrOTPInvalid
	case -2:
		return domain.ErrOTPAttemptsExceeded
	default:
		return domain.ErrOTPExpired
	}
}

func (s *redisStore) Release(ctx context.Context, purpose Purpose, email string) error {
	email = normalizeEmail(email)
	keys := []string{s.codeKey(purpose, email), s.resendKey(purpose, email)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("release otp code: %w", err)
	}
	return nil
}

func (s *redisStore) releaseResend(ctx context.Context, purpose Purpose, email string) {
	if s.resendAfter > 0 {
		_ = s.client.Del(ctx, s.resendKey(purpose, email)).Err()
	}
}

func (s *redisStore) codeKey(purpose Purpose, email string) string {
	return fmt.Sprintf("%s:%s:%s", s.keyPrefix, purpose, email)
}

func (s *redisStore) resendKey(purpose Purpose, email string) string {
	return fmt.Sprintf("%s:resend:%s:%s", s.keyPrefix, purpose, email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func digest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func generateNumericCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

