package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/slayscreens/showdesk/internal/models"
	"github.com/slayscreens/showdesk/internal/store"
)

type Users struct {
	store  *store.Store[models.User]
	logger *zerolog.Logger
}

func NewUsers(s *store.Store[models.User], logger *zerolog.Logger) *Users {
	return &Users{store: s, logger: logger}
}

func (u *Users) List(ctx context.Context) ([]models.User, error) {
	return u.store.List(ctx)
}

func (u *Users) Get(ctx context.Context, id int64) (models.User, error) {
	return u.store.Get(ctx, id)
}

// Create adds a user. Admin-created accounts get the default password
// unless one is supplied; either way only the bcrypt hash is stored.
func (u *Users) Create(ctx context.Context, user models.User) (models.User, error) {
	password := user.Password
	if password == "" {
		password = models.DefaultUserPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hash)

	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	created, err := u.store.Add(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	u.logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("User created")
	return created, nil
}

// Update applies a partial update. The stored password hash and
// createdAt are retained unless the patch explicitly carries them; a
// plaintext password in the patch is re-hashed.
func (u *Users) Update(ctx context.Context, id int64, patch map[string]any) (models.User, error) {
	if raw, ok := patch["password"]; ok {
		password, _ := raw.(string)
		if password == "" {
			delete(patch, "password")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return models.User{}, err
			}
			patch["password"] = string(hash)
		}
	}
	return u.store.Update(ctx, id, patch)
}

// Delete removes a user. Deleting the record whose email matches the
// acting session's email is refused and the collection left unchanged.
func (u *Users) Delete(ctx context.Context, id int64, actorEmail string) error {
	user, err := u.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if actorEmail != "" && strings.EqualFold(user.Email, actorEmail) {
		return store.ErrSelfDelete
	}
	return u.store.Remove(ctx, id)
}

// FindByEmail is a helper for the auth layer; email is unique in
// practice, not enforced, so the first match wins.
func (u *Users) FindByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := u.store.List(ctx, func(rec models.User) bool {
		return strings.EqualFold(rec.Email, email)
	})
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, store.ErrNotFound
	}
	return users[0], nil
}
