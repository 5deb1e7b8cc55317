package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	calls   int
	deleted int64
}

func (f *fakeDeleter) DeleteExpired() (int64, error) {
	f.calls++
	return f.deleted, nil
}

func TestRunCleanup(t *testing.T) {
	tokens := NewTokenService(testSecret, 50*time.Millisecond)
	bl := NewBlacklist(tokens)

	token, err := tokens.Issue(1, "user", "alice")
	require.NoError(t, err)
	require.True(t, bl.Add(token))
	time.Sleep(80 * time.Millisecond)

	deleter := &fakeDeleter{deleted: 3}
	svc := NewCleanupService(deleter, bl, time.Minute)

	svc.runCleanup()

	assert.Equal(t, 1, deleter.calls)
	assert.Equal(t, 0, bl.Len(), "过期黑名单条目应被清扫")
}
