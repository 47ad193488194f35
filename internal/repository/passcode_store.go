package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrPasscodeNotFound signals a missing or expired passcode.
var ErrPasscodeNotFound = errors.New("passcode not found")

// PasscodeStore keeps short-lived login passcodes keyed by phone number.
type PasscodeStore interface {
	Save(ctx context.Context, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
}

type passcodeStore struct {
	client *redis.Client
}

// NewPasscodeStore returns a Redis-backed implementation.
func NewPasscodeStore(client *redis.Client) PasscodeStore {
	return &passcodeStore{client: client}
}

func passcodeKey(phone string) string {
	return "passcode:" + phone
}

func (s *passcodeStore) Save(ctx context.Context, phone, code string, ttl time.Duration) error {
	return s.client.Set(ctx, passcodeKey(phone), code, ttl).Err()
}

func (s *passcodeStore) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, passcodeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrPasscodeNotFound
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *passcodeStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, passcodeKey(phone)).Err()
}
