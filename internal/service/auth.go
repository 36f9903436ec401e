package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/models"
	"github.com/holybond/holybond-v2/backend/internal/types"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTTL          = 24 * time.Hour
	revokedKeyPrefix  = "revoked_token:"
	defaultAdminEmail = "admin@holybond.in"
)

// AuthService handles registration, login, session tokens and the admin
// bootstrap. Logout revokes tokens in Redis until they expire; when Redis
// is not configured the revocation list is kept in process.
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
		revoked:   make(map[string]time.Time),
	}
}

// Register creates an account and its PENDING profile in one transaction
// and returns a session token (auto-login).
func (s *AuthService) Register(ctx context.Context, email, password string, draft *types.ProfileDraft) (*models.Account, *models.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateDraft(draft); err != nil {
		return nil, nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", err
	}

	now := time.Now()
	profile := &models.Profile{
		ID:                uuid.New(),
		Status:            models.ProfilePending,
		FullName:          draft.FullName,
		Gender:            draft.Gender,
		DOB:               draft.DOB,
		Denomination:      draft.Denomination,
		MotherTongue:      draft.MotherTongue,
		Country:           draft.Country,
		State:             draft.State,
		City:              draft.City,
		Education:         draft.Education,
		Profession:        draft.Profession,
		AboutMe:           draft.AboutMe,
		PartnerPreference: draft.PartnerPreference,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	account := &models.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		ProfileID:    profile.ID,
		CreatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return tx.Create(account).Error
	})
	if err != nil {
		return nil, nil, "", err
	}

	token, err := s.GenerateToken(account)
	if err != nil {
		return nil, nil, "", err
	}
	return account, profile, token, nil
}

// Login verifies credentials and returns a session token. Email matching
// is case-insensitive.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredential
	}

	token, err := s.GenerateToken(&account)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// Logout revokes the token until its natural expiry. Revoking an already
// revoked or expired token succeeds.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		// Already expired or never valid: nothing left to revoke.
		return nil
	}

	expiry := time.Now().Add(tokenTTL)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}

	if s.redis != nil {
		return s.redis.Set(ctx, revokedKeyPrefix+tokenString, "1", time.Until(expiry)).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenString] = expiry
	return nil
}

// GenerateToken signs a session token for the account.
func (s *AuthService) GenerateToken(account *models.Account) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: account.ID,
		ProfileID: account.ProfileID,
		Email:     account.Email,
		Role:      account.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token, rejecting revoked ones.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if s.isRevoked(tokenString) {
		return nil, ErrInvalidToken
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) isRevoked(tokenString string) bool {
	if s.redis != nil {
		n, err := s.redis.Exists(context.Background(), revokedKeyPrefix+tokenString).Result()
		if err != nil {
			log.Printf("Warning: revocation check failed: %v", err)
			return false
		}
		return n > 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.revoked[tokenString]
	if ok && time.Now().After(expiry) {
		delete(s.revoked, tokenString)
		return false
	}
	return ok
}

// GetAccountByID returns the account for the given id.
func (s *AuthService) GetAccountByID(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// SeedAdmin creates the singleton admin account with a pre-approved profile
// if it does not exist yet. Safe to call on every startup.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		email = defaultAdminEmail
	}
	email = strings.ToLower(email)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		profile := &models.Profile{
			ID:        uuid.New(),
			Status:    models.ProfileApproved,
			FullName:  "HolyBond Admin",
			Gender:    "Male",
			DOB:       "1990-01-01",
			Country:   "India",
			AboutMe:   "Admin account",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		account := &models.Account{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: string(hashedPassword),
			Role:         models.RoleAdmin,
			ProfileID:    profile.ID,
			CreatedAt:    now,
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		log.Printf("Seeded admin account %s", email)
		return nil
	})
}

func validateDraft(draft *types.ProfileDraft) error {
	if draft == nil {
		return ErrValidation
	}
	if strings.TrimSpace(draft.FullName) == "" || draft.Gender == "" {
		return ErrValidation
	}
	if _, err := time.Parse("2006-01-02", draft.DOB); err != nil {
		return ErrValidation
	}
	return nil
}
