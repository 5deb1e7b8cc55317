package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamflix/internal/model"
)

// fakeUserStore 内存用户存储
type fakeUserStore struct {
	users     map[string]*model.User
	passwords map[string]string
}

func newFakeUserStore(emails ...string) *fakeUserStore {
	s := &fakeUserStore{
		users:     make(map[string]*model.User),
		passwords: make(map[string]string),
	}
	for i, email := range emails {
		s.users[email] = &model.User{ID: i + 1, Email: email}
	}
	return s
}

func (s *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	return s.users[email], nil
}

func (s *fakeUserStore) UpdatePasswordByEmail(email, newPassword string) (int64, error) {
	if _, ok := s.users[email]; !ok {
		return 0, nil
	}
	s.passwords[email] = newPassword
	return 1, nil
}

// fakeCodeStore 内存验证码存储，过期判定与查询层一致
type fakeCodeStore struct {
	records []*model.PasswordReset
	ttl     time.Duration
	nextID  int
}

func newFakeCodeStore(ttl time.Duration) *fakeCodeStore {
	return &fakeCodeStore{ttl: ttl}
}

func (s *fakeCodeStore) Create(email, code string) (*model.PasswordReset, error) {
	s.nextID++
	record := &model.PasswordReset{
		ID:        s.nextID,
		Email:     email,
		Code:      code,
		Type:      "password_reset",
		CreatedAt: time.Now(),
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *fakeCodeStore) FindValid(email, code string) (*model.PasswordReset, error) {
	cutoff := time.Now().Add(-s.ttl)
	for _, r := range s.records {
		if r.Email == email && r.Code == code && r.CreatedAt.After(cutoff) {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeCodeStore) DeleteByEmail(email string) error {
	kept := s.records[:0]
	for _, r := range s.records {
		if r.Email != email {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return nil
}

func (s *fakeCodeStore) TTL() time.Duration { return s.ttl }

func (s *fakeCodeStore) countByEmail(email string) int {
	n := 0
	for _, r := range s.records {
		if r.Email == email {
			n++
		}
	}
	return n
}

// fakeMailer 记录发出的邮件
type fakeMailer struct {
	sentTo    []string
	sentCodes []string
	fail      bool
}

func (m *fakeMailer) SendResetCode(toEmail, code string, ttl time.Duration) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sentTo = append(m.sentTo, toEmail)
	m.sentCodes = append(m.sentCodes, code)
	return nil
}

func newResetFixture(ttl time.Duration) (*ResetService, *fakeUserStore, *fakeCodeStore, *fakeMailer) {
	users := newFakeUserStore("alice@example.com")
	codes := newFakeCodeStore(ttl)
	mailer := &fakeMailer{}
	svc := NewResetService(users, codes, mailer, NopAudit{})
	return svc, users, codes, mailer
}

func TestResetRequestUnknownEmail(t *testing.T) {
	svc, _, codes, mailer := newResetFixture(10 * time.Minute)

	_, err := svc.Request("nobody@example.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
	assert.Empty(t, codes.records)
	assert.Empty(t, mailer.sentTo)
}

func TestResetRequestGeneratesSixDigitCode(t *testing.T) {
	svc, _, codes, mailer := newResetFixture(10 * time.Minute)

	masked, err := svc.Request("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a***e@example.com", masked)

	require.Len(t, mailer.sentCodes, 1)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), mailer.sentCodes[0])
	assert.Equal(t, 1, codes.countByEmail("alice@example.com"))
}

func TestResetRequestReplacesOldCode(t *testing.T) {
	svc, _, codes, mailer := newResetFixture(10 * time.Minute)

	_, err := svc.Request("alice@example.com")
	require.NoError(t, err)
	first := mailer.sentCodes[0]

	_, err = svc.Request("alice@example.com")
	require.NoError(t, err)
	second := mailer.sentCodes[1]

	// 单邮箱同一时刻至多一个有效码
	assert.Equal(t, 1, codes.countByEmail("alice@example.com"))

	valid, _, err := svc.Probe("alice@example.com", first)
	require.NoError(t, err)
	assert.False(t, valid, "旧码应被新码作废")

	valid, _, err = svc.Probe("alice@example.com", second)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestResetRequestMailFailure(t *testing.T) {
	svc, _, _, mailer := newResetFixture(10 * time.Minute)
	mailer.fail = true

	_, err := svc.Request("alice@example.com")
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestResetProbeDoesNotConsume(t *testing.T) {
	svc, _, _, mailer := newResetFixture(10 * time.Minute)

	_, err := svc.Request("alice@example.com")
	require.NoError(t, err)
	code := mailer.sentCodes[0]

	// 多次校验均有效
	for i := 0; i < 3; i++ {
		valid, timeLeft, err := svc.Probe("alice@example.com", code)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Greater(t, timeLeft, 9*time.Minute)
	}

	// 错误的码无效
	valid, _, err := svc.Probe("alice@example.com", "000000")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestResetProbeExpiredCode(t *testing.T) {
	svc, _, codes, mailer := newResetFixture(10 * time.Minute)

	_, err := svc.Request("alice@example.com")
	require.NoError(t, err)

	// 人为把记录创建时间拨到 TTL 之前
	codes.records[0].CreatedAt = time.Now().Add(-11 * time.Minute)

	valid, _, err := svc.Probe("alice@example.com", mailer.sentCodes[0])
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestResetConsume(t *testing.T) {
	svc, users, codes, mailer := newResetFixture(10 * time.Minute)

	_, err := svc.Request("alice@example.com")
	require.NoError(t, err)
	code := mailer.sentCodes[0]

	err = svc.Consume("alice@example.com", code, "new-password")
	require.NoError(t, err)
	assert.Equal(t, "new-password", users.passwords["alice@example.com"])

	// 消耗后该邮箱全部验证码被删除，单次使用
	assert.Equal(t, 0, codes.countByEmail("alice@example.com"))
	err = svc.Consume("alice@example.com", code, "another-password")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestResetConsumeInvalidCode(t *testing.T) {
	svc, users, _, _ := newResetFixture(10 * time.Minute)

	_, err := svc.Request("alice@example.com")
	require.NoError(t, err)

	err = svc.Consume("alice@example.com", "000000", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Empty(t, users.passwords)
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"alice@example.com": "a***e@example.com",
		"ab@example.com":    "a***@example.com",
		"a@example.com":     "a***@example.com",
		"no-at-sign":        "no-at-sign",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in))
	}
}
