package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/pkg/kv"
)

// Durable store keys owned by the session.
const (
	KeyCurrentUser = "currentUser"
	KeyLogin       = "login"
)

const (
	nullMarker = "null"
	loginTrue  = "true"
	loginFalse = "false"
)

// EncodeIdentity serializes the user to JSON and applies standard base64 so the
// identity can be stored as plain text and decoded later without re-authenticating.
func EncodeIdentity(user *users.User) (string, error) {
	if user == nil {
		return "", errors.New("identity is required")
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeIdentity reverses EncodeIdentity. Absent, null-marked, undecodable or
// id-less values all yield (nil, false).
func DecodeIdentity(raw string) (*users.User, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == nullMarker {
		return nil, false
	}
	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	var user *users.User
	if err := json.Unmarshal(payload, &user); err != nil || user == nil || user.ID == 0 {
		return nil, false
	}
	return user, true
}

// ReadIdentity is the storage-backed read of the active identity. A nil user
// means nobody is logged in; the error is reserved for storage failures.
func ReadIdentity(ctx context.Context, store kv.Store) (*users.User, error) {
	raw, err := store.Get(ctx, KeyCurrentUser)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", KeyCurrentUser, err)
	}
	user, ok := DecodeIdentity(raw)
	if !ok {
		return nil, nil
	}
	return user, nil
}
