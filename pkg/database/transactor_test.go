package database_test

import (
	"context"
	"errors"
	"testing"

	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"
	"cookbook-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTransaction_CommitsOnSuccess(t *testing.T) {
	db := testutil.NewDB(t)
	tr := database.NewTransactor(db)
	ctx := context.Background()

	err := tr.WithinTransaction(ctx, func(ctx context.Context) error {
		assert.True(t, database.InTransaction(ctx))
		return database.Conn(ctx, db).Create(&entities.User{Email: "a@example.com", FullName: "A", Password: "x"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	tr := database.NewTransactor(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tr.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := database.Conn(ctx, db).Create(&entities.User{Email: "a@example.com", FullName: "A", Password: "x"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithinTransaction_NestedJoinsOuter(t *testing.T) {
	db := testutil.NewDB(t)
	tr := database.NewTransactor(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := tr.WithinTransaction(ctx, func(ctx context.Context) error {
		inner := tr.WithinTransaction(ctx, func(ctx context.Context) error {
			return database.Conn(ctx, db).Create(&entities.User{Email: "b@example.com", FullName: "B", Password: "x"}).Error
		})
		if inner != nil {
			return inner
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "inner write must roll back with the outer transaction")
}
