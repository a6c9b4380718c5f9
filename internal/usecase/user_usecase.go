package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dcastillo/user-service/internal/domain/contract"
	"github.com/dcastillo/user-service/internal/domain/entity"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo    contract.IUserRepository
	hasher      contract.IHasher
	jwtService  JWTService
	mailService contract.IEmailService
	codeGen     contract.IActivationCodeGenerator
	logger      usecasecontract.IAppLogger
	config      usecasecontract.IConfigProvider
	validator   usecasecontract.IValidator
	userCache   contract.IUserCache
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	mailService contract.IEmailService,
	codeGen contract.IActivationCodeGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		mailService: mailService,
		codeGen:     codeGen,
		logger:      logger,
		config:      cfg,
		validator:   validator,
	}
}

// check if UserUsecase implements IUserUseCase at compile time
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// SetUserCache attaches an optional read-through cache for user lookups.
func (uc *UserUsecase) SetUserCache(cache contract.IUserCache) {
	uc.userCache = cache
}

// decodeBase64Password recovers the true plaintext from the wire encoding.
// The encoding is an application convention, not a security boundary.
func decodeBase64Password(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: password is not valid base64", entity.ErrValidation)
	}
	return string(decoded), nil
}

// Register handles user registration: duplicate check, credential hashing,
// record creation, activation code and best-effort notification dispatch.
func (uc *UserUsecase) Register(ctx context.Context, input usecasecontract.RegisterInput) (*entity.User, error) {
	if err := uc.validator.ValidateEmail(input.Email); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}
	if err := uc.validator.ValidateRole(input.Role); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}
	plainPassword, err := decodeBase64Password(input.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.validator.ValidatePasswordLength(plainPassword); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	// Best-effort pre-check; the repository's unique index on identification
	// is the real arbiter under concurrent registration.
	existing, err := uc.userRepo.GetUserByIdentification(ctx, input.Identification)
	if err != nil && !errors.Is(err, entity.ErrUserNotFound) {
		uc.logger.Errorf("failed to check for existing user by identification: %v", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrUserAlreadyExists
	}

	hashedPassword, err := uc.hasher.HashPassword(plainPassword)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}

	code, err := uc.codeGen.GenerateActivationCode()
	if err != nil {
		uc.logger.Errorf("failed to generate activation code: %v", err)
		return nil, fmt.Errorf("failed to register user")
	}

	var birthdate *time.Time
	if input.Birthdate != nil && *input.Birthdate != "" {
		parsed, err := parseBirthdate(*input.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
		}
		birthdate = &parsed
	}

	now := time.Now()
	user := &entity.User{
		Name:           input.Name,
		Address:        input.Address,
		Birthdate:      birthdate,
		Identification: input.Identification,
		Phone:          input.Phone,
		Email:          input.Email,
		PasswordHash:   hashedPassword,
		Role:           entity.UserRole(input.Role),
		FirstAccess:    false,
		Active:         false,
		ActivationCode: &code,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrUserAlreadyExists) {
			return nil, entity.ErrUserAlreadyExists
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if uc.config.GetSendActivationEmail() {
		uc.dispatchActivationEmail(user)
	}

	return user, nil
}

// dispatchActivationEmail sends the confirmation link in a detached goroutine.
// Notification failure never rolls back or fails the registration response.
func (uc *UserUsecase) dispatchActivationEmail(user *entity.User) {
	token, err := uc.jwtService.GenerateToken(user)
	if err != nil {
		uc.logger.Errorf("failed to issue activation token for user %d: %v", user.ID, err)
		return
	}
	link := fmt.Sprintf("%s/api/users/activate/%s", uc.config.GetAppBaseURL(), token)
	body := ActivationEmailBody(user.Name, link)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := uc.mailService.SendEmail(ctx, user.Email, activationEmailSubject, body); err != nil {
			uc.logger.Errorf("failed to send activation email to %s: %v", user.Email, err)
		}
	}()
}

// Authenticate verifies credentials and issues a bearer token.
func (uc *UserUsecase) Authenticate(ctx context.Context, identification, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByIdentification(ctx, identification)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, "", entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for authentication: %v", err)
		return nil, "", fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.Active {
		return nil, "", entity.ErrUserNotActivated
	}

	plainPassword, err := decodeBase64Password(password)
	if err != nil {
		// Malformed encoding counts as a verification failure, not a crash.
		return nil, "", entity.ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(plainPassword, user.PasswordHash); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user)
	if err != nil {
		uc.logger.Errorf("failed to generate token for user %d: %v", user.ID, err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	// firstAccess flips true exactly once; the write stays off the
	// response-critical path.
	if !user.FirstAccess {
		uc.markFirstAccess(user.ID)
	}

	return user, token, nil
}

// markFirstAccess persists the firstAccess flag in the background.
func (uc *UserUsecase) markFirstAccess(userID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := uc.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			uc.logger.Errorf("failed to load user %d for firstAccess update: %v", userID, err)
			return
		}
		if user.FirstAccess {
			return
		}
		user.FirstAccess = true
		if _, err := uc.userRepo.UpdateUser(ctx, user); err != nil {
			uc.logger.Errorf("failed to mark firstAccess for user %d: %v", userID, err)
			return
		}
		uc.invalidateCache(ctx, userID)
	}()
}

// Activate verifies an activation token, matches the embedded one-time code
// against the stored record and flips the record to active. The stored code
// is cleared on success, so a replayed token fails the code match.
func (uc *UserUsecase) Activate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.jwtService.VerifyToken(token)
	if err != nil {
		return nil, entity.ErrInvalidToken
	}

	user, err := uc.userRepo.GetUserByIdentification(ctx, claims.Identification)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for activation: %v", err)
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}

	if !activationCodesMatch(claims.ActivationCode, user.ActivationCode) {
		return nil, entity.ErrActivationCodeMismatch
	}

	user.Active = true
	user.ActivationCode = nil
	user.UpdatedAt = time.Now()
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.logger.Errorf("failed to activate user %d: %v", user.ID, err)
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	uc.invalidateCache(ctx, user.ID)

	return updated, nil
}

// activationCodesMatch compares the token's embedded code against the stored
// one numerically, as both travel as numeric strings.
func activationCodesMatch(claimed string, stored *string) bool {
	if stored == nil || claimed == "" {
		return false
	}
	claimedNum, err := strconv.ParseInt(strings.TrimSpace(claimed), 10, 64)
	if err != nil {
		return false
	}
	storedNum, err := strconv.ParseInt(strings.TrimSpace(*stored), 10, 64)
	if err != nil {
		return false
	}
	return claimedNum == storedNum
}

// ChangePassword verifies the current password before storing the new hash.
func (uc *UserUsecase) ChangePassword(ctx context.Context, userID int64, password, newPassword string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for password change: %v", err)
		return nil, fmt.Errorf("failed to change password: %w", err)
	}

	plainPassword, err := decodeBase64Password(password)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}
	plainNewPassword, err := decodeBase64Password(newPassword)
	if err != nil {
		return nil, err
	}
	if err := uc.validator.ValidatePasswordLength(plainNewPassword); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	if err := uc.hasher.ComparePasswordHash(plainPassword, user.PasswordHash); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	hashedPassword, err := uc.hasher.HashPassword(plainNewPassword)
	if err != nil {
		uc.logger.Errorf("failed to hash new password: %v", err)
		return nil, fmt.Errorf("failed to process password")
	}
	if err := uc.userRepo.UpdateUserPassword(ctx, user.ID, hashedPassword); err != nil {
		uc.logger.Errorf("failed to update password for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("failed to change password: %w", err)
	}
	user.PasswordHash = hashedPassword

	if !user.FirstAccess {
		user.FirstAccess = true
		user.UpdatedAt = time.Now()
		if _, err := uc.userRepo.UpdateUser(ctx, user); err != nil {
			uc.logger.Errorf("failed to mark firstAccess for user %d: %v", user.ID, err)
		}
	}
	uc.invalidateCache(ctx, user.ID)

	return user, nil
}

// GetAllUsers returns every stored user.
func (uc *UserUsecase) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	users, err := uc.userRepo.GetAllUsers(ctx)
	if err != nil {
		uc.logger.Errorf("failed to list users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a single user, consulting the cache when attached.
func (uc *UserUsecase) GetUserByID(ctx context.Context, userID int64) (*entity.User, error) {
	if uc.userCache != nil {
		if cached, ok, err := uc.userCache.GetUserByID(ctx, userID); err == nil && ok {
			return cached, nil
		}
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if uc.userCache != nil {
		if err := uc.userCache.SetUserByID(ctx, user); err != nil {
			uc.logger.Warnf("failed to cache user %d: %v", userID, err)
		}
	}
	return user, nil
}

// SearchUsersByName returns users whose name contains the given substring.
func (uc *UserUsecase) SearchUsersByName(ctx context.Context, name string) ([]entity.User, error) {
	users, err := uc.userRepo.SearchUsersByName(ctx, name)
	if err != nil {
		uc.logger.Errorf("failed to search users by name: %v", err)
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial patch to a user record. The password field is
// excluded by construction; credential changes go through ChangePassword.
func (uc *UserUsecase) UpdateUser(ctx context.Context, userID int64, updates map[string]interface{}) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for update: %v", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	delete(updates, "password")

	for k, v := range updates {
		switch k {
		case "name":
			if name, ok := v.(string); ok {
				user.Name = name
			}
		case "address":
			if address, ok := v.(string); ok {
				user.Address = &address
			}
		case "birthdate":
			if raw, ok := v.(string); ok {
				parsed, err := parseBirthdate(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
				}
				user.Birthdate = &parsed
			}
		case "identification":
			if identification, ok := v.(string); ok {
				user.Identification = identification
			}
		case "phone":
			if phone, ok := v.(string); ok {
				user.Phone = phone
			}
		case "email":
			if email, ok := v.(string); ok {
				if err := uc.validator.ValidateEmail(email); err != nil {
					return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
				}
				user.Email = email
			}
		case "rol":
			if role, ok := v.(string); ok {
				if err := uc.validator.ValidateRole(role); err != nil {
					return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
				}
				user.Role = entity.UserRole(role)
			}
		case "active":
			if active, ok := v.(bool); ok {
				user.Active = active
			}
		}
	}

	user.UpdatedAt = time.Now()
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, entity.ErrUserAlreadyExists) {
			return nil, entity.ErrUserAlreadyExists
		}
		uc.logger.Errorf("failed to update user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	uc.invalidateCache(ctx, userID)

	return updated, nil
}

// DeleteUser removes a user and returns the deleted record.
func (uc *UserUsecase) DeleteUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for deletion: %v", err)
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	if err := uc.userRepo.DeleteUser(ctx, userID); err != nil {
		uc.logger.Errorf("failed to delete user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	uc.invalidateCache(ctx, userID)

	return user, nil
}

func (uc *UserUsecase) invalidateCache(ctx context.Context, userID int64) {
	if uc.userCache == nil {
		return
	}
	if err := uc.userCache.InvalidateUser(ctx, userID); err != nil {
		uc.logger.Warnf("failed to invalidate cached user %d: %v", userID, err)
	}
}

// parseBirthdate accepts the date formats the client application sends.
func parseBirthdate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("birthdate %q is not a valid date", raw)
}
