package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pawhaven/adoption-api/internal/application/dto"
	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
	"github.com/pawhaven/adoption-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig token issuance settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase account use cases: signup, login, profile edit, password change.
//
// Methods return a dto.FieldErrors for form-level failures (every violated
// field reported together) and an error for everything else.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup validates the form, hashes the password with bcrypt, persists the
// user as a member and issues a token.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, dto.FieldErrors, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	fieldErrs := validateSignup(in)
	if !fieldErrs.Empty() {
		return nil, fieldErrs, nil
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, dto.FieldErrors{"email": msgEmailExists}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         entity.RoleMember,
		SavedPetIDs:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrEmailAlreadyExists {
			// Lost a signup race on the unique index.
			return nil, dto.FieldErrors{"email": msgEmailExists}, nil
		}
		return nil, nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, nil, err
	}
	return &dto.AuthResponse{Token: token, User: *toUserResponse(user)}, nil, nil
}

// Login verifies email/password and issues a token. Failures are reported as
// field errors, matching the signup form contract.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, dto.FieldErrors, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, dto.FieldErrors{"email": "no such email in db"}, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, dto.FieldErrors{"password": "incorrect password"}, nil
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, nil, err
	}
	return &dto.AuthResponse{Token: token, User: *toUserResponse(user)}, nil, nil
}

// UpdateProfile edits the caller's own profile. A changed email is checked for
// uniqueness and triggers a fresh token in the response.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, subjectID, targetID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, dto.FieldErrors, error) {
	if subjectID != targetID {
		return nil, nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}

	fieldErrs := dto.FieldErrors{}
	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			fieldErrs["firstName"] = "first name is empty"
		} else {
			user.FirstName = *in.FirstName
		}
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			fieldErrs["lastName"] = "last name is empty"
		} else {
			user.LastName = *in.LastName
		}
	}
	if in.Phone != nil {
		if !isValidPhone(*in.Phone) {
			fieldErrs["phone"] = msgInvalidPhone
		} else {
			user.Phone = *in.Phone
		}
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}

	emailChanged := false
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !isValidEmail(email) {
			fieldErrs["email"] = msgInvalidEmail
		} else if email != user.Email {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, nil, err
			}
			if other != nil {
				fieldErrs["email"] = msgEmailExists
			} else {
				user.Email = email
				emailChanged = true
			}
		}
	}
	if !fieldErrs.Empty() {
		return nil, fieldErrs, nil
	}

	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return nil, dto.FieldErrors{"email": msgEmailExists}, nil
		}
		return nil, nil, err
	}

	out := &dto.ProfileResponse{User: *toUserResponse(user)}
	if emailChanged {
		token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return nil, nil, err
		}
		out.Token = token
	}
	return out, nil, nil
}

// ChangePassword replaces the caller's own credential after verifying the old
// one against the stored hash.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, subjectID, targetID string, in dto.ChangePasswordRequest) (dto.FieldErrors, error) {
	if subjectID != targetID {
		return nil, domain.ErrForbidden
	}
	fieldErrs := validateNewPassword(in)
	if !fieldErrs.Empty() {
		return fieldErrs, nil
	}
	user, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return dto.FieldErrors{"oldPassword": "incorrect password"}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return nil, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	saved := u.SavedPetIDs
	if saved == nil {
		saved = []string{}
	}
	return &dto.UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		Bio:         u.Bio,
		Role:        u.Role,
		SavedPetIDs: saved,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
