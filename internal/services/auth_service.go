package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"courseforge/internal/store"
	"courseforge/internal/testutils"
	"courseforge/pkg/coursetypes"
)

// AuthService provides prototype account handling. Credentials live in their
// own blob and are never exposed beyond a yes/no authentication answer; the
// rest of the application only ever sees the minimal User record.
type AuthService struct {
	initialized   bool
	ctx           coursetypes.Context
	kv            store.KVStore
	notifications *NotificationService
}

// NewAuthService creates a new AuthService backed by the given store.
func NewAuthService(ctx coursetypes.Context, kv store.KVStore, notifications *NotificationService) *AuthService {
	return &AuthService{ctx: ctx, kv: kv, notifications: notifications}
}

// Name returns the service name "auth" for registration.
func (a *AuthService) Name() string {
	return "auth"
}

// Initialize restores the persisted current-user record, if any.
func (a *AuthService) Initialize() error {
	a.initialized = true

	data, ok, err := a.kv.Get(store.CurrentUserKey)
	if err != nil {
		return fmt.Errorf("failed to load current user: %w", err)
	}
	if !ok {
		return nil
	}

	var user coursetypes.User
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("failed to revive current user: %w", err)
	}
	a.ctx.SetCurrentUser(&user)
	return nil
}

// CurrentUser returns the authenticated user, or nil when logged out.
func (a *AuthService) CurrentUser() *coursetypes.User {
	return a.ctx.GetCurrentUser()
}

// Register creates a new account and logs it in. Returns false when the
// email is already taken.
func (a *AuthService) Register(name, email, password string) (bool, error) {
	if !a.initialized {
		return false, fmt.Errorf("auth service not initialized")
	}

	credentials, err := a.loadCredentials()
	if err != nil {
		return false, err
	}

	for _, c := range credentials {
		if c.Email == email {
			_ = a.notifications.Notify("Email already exists", coursetypes.NotifyError)
			return false, nil
		}
	}

	credential := coursetypes.Credential{
		ID:           testutils.GenerateUUID(a.ctx),
		Name:         name,
		Email:        email,
		PasswordHash: hashPassword(password),
	}
	credentials = append(credentials, credential)
	if err := a.saveCredentials(credentials); err != nil {
		return false, err
	}

	user := &coursetypes.User{ID: credential.ID, Name: name, Email: email}
	if err := a.setCurrentUser(user); err != nil {
		return false, err
	}

	_ = a.notifications.Notify("Account created successfully", coursetypes.NotifySuccess)
	return true, nil
}

// Login authenticates against the stored credential list. Returns false on
// unknown email or wrong password.
func (a *AuthService) Login(email, password string) (bool, error) {
	if !a.initialized {
		return false, fmt.Errorf("auth service not initialized")
	}

	credentials, err := a.loadCredentials()
	if err != nil {
		return false, err
	}

	for _, c := range credentials {
		if c.Email == email && c.PasswordHash == hashPassword(password) {
			user := &coursetypes.User{ID: c.ID, Name: c.Name, Email: c.Email}
			if err := a.setCurrentUser(user); err != nil {
				return false, err
			}
			_ = a.notifications.Notify(fmt.Sprintf("Welcome back, %s", user.Name), coursetypes.NotifySuccess)
			return true, nil
		}
	}

	_ = a.notifications.Notify("Invalid email or password", coursetypes.NotifyError)
	return false, nil
}

// Logout clears the authenticated user.
func (a *AuthService) Logout() error {
	if !a.initialized {
		return fmt.Errorf("auth service not initialized")
	}

	a.ctx.SetCurrentUser(nil)
	if err := a.kv.Delete(store.CurrentUserKey); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	_ = a.notifications.Notify("Logged out successfully", coursetypes.NotifyInfo)
	return nil
}

func (a *AuthService) setCurrentUser(user *coursetypes.User) error {
	a.ctx.SetCurrentUser(user)
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize current user: %w", err)
	}
	return a.kv.Set(store.CurrentUserKey, data)
}

func (a *AuthService) loadCredentials() ([]coursetypes.Credential, error) {
	data, ok, err := a.kv.Get(store.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var credentials []coursetypes.Credential
	if err := json.Unmarshal(data, &credentials); err != nil {
		return nil, fmt.Errorf("failed to revive credentials: %w", err)
	}
	return credentials, nil
}

func (a *AuthService) saveCredentials(credentials []coursetypes.Credential) error {
	data, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}
	return a.kv.Set(store.UsersKey, data)
}

// hashPassword digests a password for storage. This is a prototype scheme,
// not a hardened one.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
