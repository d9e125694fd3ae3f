package usecase

import (
	"artvista/internal/config"
	"artvista/internal/domain/model"
	"artvista/internal/repository"

	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//404 ユーザーが消えている
	ErrUserGone = errors.New("user not found")
	//競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// accesstokenの有効期限。refresh無しなので切れたら再ログイン
const accessTokenTTL = 7 * 24 * time.Hour

// bcryptのコスト
const bcryptCost = 10

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// 登録・ログインどちらも user + token を返す
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, ErrInternal
	}

	//ユーザー作成。emailは小文字で保存
	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
	}

	//保存（email重複はvalidatorで弾き済み、ここで出たらunique違反）
	if err := u.users.Create(ctx, user); err != nil {
		return nil, ErrConflict
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	return &AuthResponse{
		User:  toUserDTO(user),
		Token: token,
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthResponse, error) {
	//入力検証
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, err
	}

	//ユーザー取得
	//メール無しとパスワード不一致は同じ401にする（どちらが違うか漏らさない）
	user, err := u.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil || user == nil {
		return nil, ErrUnauthorized
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, ErrInternal
	}

	return &AuthResponse{
		User:  toUserDTO(user),
		Token: token,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if user == nil {
		return nil, ErrUserGone
	}

	return user, nil
}

// HS256で署名。claimsは {id, role}
func (u *AuthUsecase) issueToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(u.cfg.JWTSecret))
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
