package directory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignite/mailcore/internal/domain"
	"github.com/ignite/mailcore/internal/session"
	"github.com/ignite/mailcore/internal/store"
)

// Service implements account business logic over the record store.
type Service struct {
	store    store.Store
	sessions *session.Manager
}

// NewService creates a directory service backed by the given store. The
// session manager is updated on successful Register and Authenticate calls.
func NewService(st store.Store, sessions *session.Manager) *Service {
	return &Service{store: st, sessions: sessions}
}

// Register creates a new account and logs it in. The first account ever
// created becomes the admin; everyone after that is a regular user.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.PublicAccount, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	role := domain.RoleUser
	if len(accounts) == 0 {
		role = domain.RoleAdmin
	}

	acc, err := s.newAccount(email, password, name, role)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, acc); err != nil {
		return nil, err
	}
	if err := s.sessions.Establish(ctx, acc.ID); err != nil {
		return nil, err
	}

	log.Printf("[directory.Service] Registered account %s (%s)", acc.ID, role)
	pub := acc.Public()
	return &pub, nil
}

// Authenticate verifies credentials and logs the account in. An unknown
// email and a wrong password produce the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.PublicAccount, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		if err := s.sessions.Establish(ctx, a.ID); err != nil {
			return nil, err
		}
		pub := a.Public()
		return &pub, nil
	}
	return nil, ErrInvalidCredentials
}

// Create is the admin add-user path: an explicit role, no session change.
// Role gating (only admins may call this) belongs to the caller.
func (s *Service) Create(ctx context.Context, email, password, name string, role domain.Role) (*domain.PublicAccount, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	acc, err := s.newAccount(email, password, name, role)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, acc); err != nil {
		return nil, err
	}
	pub := acc.Public()
	return &pub, nil
}

// List returns every account, secrets redacted, in creation order.
func (s *Service) List(ctx context.Context) ([]domain.PublicAccount, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicAccount, len(accounts))
	for i, a := range accounts {
		out[i] = a.Public()
	}
	return out, nil
}

// Get returns a single account, redacted.
func (s *Service) Get(ctx context.Context, id string) (*domain.PublicAccount, error) {
	acc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := acc.Public()
	return &pub, nil
}

// Delete removes an account by id. The currently authenticated account
// cannot delete itself.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if current != nil && current.ID == id {
		return ErrSelfDeleteForbidden
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.store.Remove(ctx, store.CollectionAccounts, id)
}

// UpdateProfileInput holds the mutable profile fields. Zero-value strings
// leave the current value in place; a password change requires the current
// password.
type UpdateProfileInput struct {
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile edits an account's own profile. The whole update persists
// as a single record write, so a rejected password change mutates nothing.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.PublicAccount, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var acc *domain.Account
	for i := range accounts {
		if accounts[i].ID == id {
			acc = &accounts[i]
			break
		}
	}
	if acc == nil {
		return nil, ErrNotFound
	}

	if in.Email != "" && in.Email != acc.Email {
		for _, other := range accounts {
			if other.ID != id && other.Email == in.Email {
				return nil, ErrDuplicateEmail
			}
		}
		acc.Email = in.Email
	}
	if in.Name != "" {
		acc.Name = in.Name
	}
	if in.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return nil, ErrInvalidCredentials
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		acc.PasswordHash = string(hash)
	}

	if err := s.save(ctx, *acc); err != nil {
		return nil, err
	}
	pub := acc.Public()
	return &pub, nil
}

// Close deletes the caller's own account and, if the session pointed at it,
// logs out. This is the settings-page "delete my account" path; the admin
// path with the self-delete guard is Delete.
func (s *Service) Close(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	current, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, store.CollectionAccounts, id); err != nil {
		return err
	}
	if current != nil && current.ID == id {
		if err := s.sessions.Clear(ctx); err != nil {
			return err
		}
	}
	log.Printf("[directory.Service] Closed account %s", id)
	return nil
}

// RecordUsage bumps the informational counters on an account. Deltas are
// additive and must be non-negative; the counters never move backwards.
func (s *Service) RecordUsage(ctx context.Context, id string, emailsDelta, campaignsDelta int) error {
	if emailsDelta < 0 || campaignsDelta < 0 {
		return ErrNegativeDelta
	}
	acc, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	acc.EmailsSent += emailsDelta
	acc.CampaignsCount += campaignsDelta
	return s.save(ctx, acc)
}

func (s *Service) newAccount(email, password, name string, role domain.Role) (domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}
	return domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *Service) load(ctx context.Context) ([]domain.Account, error) {
	recs, err := s.store.List(ctx, store.CollectionAccounts)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(recs))
	for _, rec := range recs {
		var acc domain.Account
		if err := store.DecodeRecord(rec, &acc); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (s *Service) find(ctx context.Context, id string) (domain.Account, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Account{}, ErrNotFound
}

func (s *Service) save(ctx context.Context, acc domain.Account) error {
	rec, err := store.EncodeRecord(acc.ID, acc)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, store.CollectionAccounts, rec)
}
