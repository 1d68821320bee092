package otp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cookbook-backend/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts Options) (*miniredis.Miniredis, Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, opts)
}

func TestIssueAndVerify(t *testing.T) {
	mr, store := newTestStore(t, Options{ResendAfter: -1})
	ctx := context.Background()

	code, err := store.Issue(ctx, PurposeRegister, "Cook@Example.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.True(t, mr.Exists("cookbook:otp:register:cook@example.com"))

	stored := mr.HGet("cookbook:otp:register:cook@example.com", "digest")
	assert.NotEmpty(t, stored)
	assert.NotEqual(t, code, stored, "the raw code must not be stored")

	require.NoError(t, store.Verify(ctx, PurposeRegister, "cook@example.com", code))
	assert.False(t, mr.Exists("cookbook:otp:register:cook@example.com"))

	assert.ErrorIs(t, store.Verify(ctx, PurposeRegister, "cook@example.com", code), domain.ErrOTPExpired)
}

func TestVerify_WrongCodeKeepsEntry(t *testing.T) {
	mr, store := newTestStore(t, Options{ResendAfter: -1})
	ctx := context.Background()

	code, err := store.Issue(ctx, PurposeRegister, "cook@example.com")
	require.NoError(t, err)

	wrong := wrongCode(code)
	assert.ErrorIs(t, store.Verify(ctx, PurposeRegister, "cook@example.com", wrong), domain.ErrOTPInvalid)
	assert.True(t, mr.Exists("cookbook:otp:register:cook@example.com"))

	assert.NoError(t, store.Verify(ctx, PurposeRegister, "cook@example.com", code))
}

func TestPurposesDoNotCollide(t *testing.T) {
	_, store := newTestStore(t, Options{ResendAfter: -1})
	ctx := context.Background()

	registerCode, err := store.Issue(ctx, PurposeRegister, "cook@example.com")
	require.NoError(t, err)
	resetCode, err := store.Issue(ctx, PurposeReset, "cook@example.com")
	require.NoError(t, err)

	require.NoError(t, store.Verify(ctx, PurposeReset, "cook@example.com", resetCode))
	require.NoError(t, store.Verify(ctx, PurposeRegister, "cook@example.com", registerCode))
}

func TestCodeExpires(t *testing.T) {
	mr, store := newTestStore(t, Options{CodeTTL: time.Minute, ResendAfter: -1})
	ctx := context.Background()

	code, err := store.Issue(ctx, PurposeReset, "cook@example.com")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", code), domain.ErrOTPExpired)
}

func TestIssue_ResendThrottle(t *testing.T) {
	mr, store := newTestStore(t, Options{ResendAfter: time.Minute})
	ctx := context.Background()

	_, err := store.Issue(ctx, PurposeRegister, "cook@example.com")
	require.NoError(t, err)

	_, err = store.Issue(ctx, PurposeRegister, "cook@example.com")
	assert.ErrorIs(t, err, domain.ErrOTPRateLimited)

	mr.FastForward(61 * time.Second)
	_, err = store.Issue(ctx, PurposeRegister, "cook@example.com")
	assert.NoError(t, err)
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestVerify_TooManyWrongCodesDropsEntry(t *testing.T) {
	mr, store := newTestStore(t, Options{ResendAfter: -1, MaxVerifyAttempts: 3})
	ctx := context.Background()
	key := "cookbook:otp:reset:cook@example.com"

	code, err := store.Issue(ctx, PurposeReset, "cook@example.com")
	require.NoError(t, err)
	wrong := wrongCode(code)

	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", wrong), domain.ErrOTPInvalid)
	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", wrong), domain.ErrOTPInvalid)
	assert.Equal(t, "2", mr.HGet(key, "attempts"))

	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", wrong), domain.ErrOTPAttemptsExceeded)
	assert.False(t, mr.Exists(key))

	// the real code is useless once the entry is gone
	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", code), domain.ErrOTPExpired)
}

func TestVerify_GuessingDoesNotOutlastTheCap(t *testing.T) {
	_, store := newTestStore(t, Options{ResendAfter: -1})
	ctx := context.Background()

	code, err := store.Issue(ctx, PurposeReset, "cook@example.com")
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		guess := fmt.Sprintf("%06d", i)
		if guess == code {
			continue
		}
		_ = store.Verify(ctx, PurposeReset, "cook@example.com", guess)
	}
	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", code), domain.ErrOTPExpired)
}

func TestIssue_ReplacesAttemptCounter(t *testing.T) {
	mr, store := newTestStore(t, Options{ResendAfter: -1})
	ctx := context.Background()
	key := "cookbook:otp:register:cook@example.com"

	first, err := store.Issue(ctx, PurposeRegister, "cook@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, store.Verify(ctx, PurposeRegister, "cook@example.com", wrongCode(first)), domain.ErrOTPInvalid)

	second, err := store.Issue(ctx, PurposeRegister, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, "0", mr.HGet(key, "attempts"))
	assert.Greater(t, mr.TTL(key), time.Duration(0))
	assert.NoError(t, store.Verify(ctx, PurposeRegister, "cook@example.com", second))
}

func TestRelease_ClearsCodeAndResendGuard(t *testing.T) {
	mr, store := newTestStore(t, Options{ResendAfter: time.Minute})
	ctx := context.Background()

	code, err := store.Issue(ctx, PurposeReset, "Cook@Example.com")
	require.NoError(t, err)

	require.NoError(t, store.Release(ctx, PurposeReset, "cook@example.com"))
	assert.False(t, mr.Exists("cookbook:otp:reset:cook@example.com"))
	assert.False(t, mr.Exists("cookbook:otp:resend:reset:cook@example.com"))
	assert.ErrorIs(t, store.Verify(ctx, PurposeReset, "cook@example.com", code), domain.ErrOTPExpired)

	_, err = store.Issue(ctx, PurposeReset, "cook@example.com")
	assert.NoError(t, err)
}
