package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stashbin/stashbin/internal/cache"
	"github.com/stashbin/stashbin/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Session token cache keys are namespaced so the cache can be shared with
// other concerns without collisions.
const tokenKeyPrefix = "auth_"

var (
	ErrMalformedCredential = errors.New("malformed basic auth credential")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMissingToken        = errors.New("missing token")
	ErrInvalidToken        = errors.New("invalid or expired token")
)

// AuthService owns the session lifecycle: it is the only component that
// translates a credential or token into a user identity. Token validity is
// delegated entirely to the cache's TTL, so there is no clock handling or
// garbage collection here.
type AuthService struct {
	userRepository repository.UserRepository
	tokens         cache.Cache
	tokenExpiry    time.Duration
}

func NewAuthService(userRepository repository.UserRepository, tokens cache.Cache, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
		tokenExpiry:    tokenExpiry,
	}
}

// Login verifies a Basic auth header and issues a fresh session token mapped
// to the user id for the configured expiry.
//
// Unknown email and wrong password both return ErrInvalidCredentials so the
// caller cannot enumerate accounts.
func (s *AuthService) Login(authorization string) (string, error) {
	email, password, err := decodeBasicAuth(authorization)
	if err != nil {
		return "", err
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	err = s.tokens.Set(tokenKeyPrefix+token, user.ID, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// Resolve returns the user id a token was issued for. The lookup has no side
// effect and does not renew the TTL. A token that was never issued, has
// expired, or was revoked all report ErrInvalidToken.
func (s *AuthService) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	userID, err := s.tokens.Get(tokenKeyPrefix + token)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to look up token: %w", err)
	}

	return userID, nil
}

// Revoke invalidates a token. Revoking a token that is no longer valid fails
// with ErrInvalidToken, so repeated logout reports already-logged-out.
func (s *AuthService) Revoke(token string) error {
	_, err := s.Resolve(token)
	if err != nil {
		return err
	}

	err = s.tokens.Delete(tokenKeyPrefix + token)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}

// decodeBasicAuth parses "Basic base64(email:password)". Both parts must be
// non-empty.
func decodeBasicAuth(authorization string) (string, string, error) {
	const scheme = "Basic "

	if !strings.HasPrefix(authorization, scheme) {
		return "", "", ErrMalformedCredential
	}

	decoded, err := base64.StdEncoding.DecodeString(authorization[len(scheme):])
	if err != nil {
		return "", "", ErrMalformedCredential
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", ErrMalformedCredential
	}

	return email, password, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
