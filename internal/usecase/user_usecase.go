package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
)

// TokenVerifier は所有者スコープのトークン検証。
// usecase間の依存を最小にするためTokenUsecase本体ではなくこれを注入する。
type TokenVerifier interface {
	VerifyForUser(ctx context.Context, id string, email string) bool
}

// UserUsecase はユーザーレコードのCRUD。
type UserUsecase struct {
	users    repository.UserRepository
	hasher   CredentialHasher
	verifier TokenVerifier
}

// DI
func NewUserUsecase(
	users repository.UserRepository,
	hasher CredentialHasher,
	verifier TokenVerifier,
) *UserUsecase {
	return &UserUsecase{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
	}
}

type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Address   string
}

type UpdateUserInput struct {
	FirstName string
	LastName  string
	Password  string
	Address   string
}

// SignUp は新規登録。5項目すべて必須。
// email重複の検出はストアの原子的Createに任せる（チェックしてから書く方式は
// 同時リクエストで競合するため使わない）。
func (u *UserUsecase) SignUp(ctx context.Context, in SignUpInput) error {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	address := strings.TrimSpace(in.Address)

	if firstName == "" || lastName == "" || email == "" || password == "" || address == "" {
		return fmt.Errorf("%w: missing required fields", ErrValidation)
	}

	user := model.User{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Address:        address,
		HashedPassword: u.hasher.Hash(password),
		Carts:          []model.CartRef{},
	}

	err := u.users.Create(ctx, user)
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: a user with that email already exists", ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("%w: could not create the new user", ErrStorage)
	}
	return nil
}

// Get はダイジェストを除いた外部向けビューを返す。
func (u *UserUsecase) Get(ctx context.Context, email string, tokenID string) (model.UserView, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return model.UserView{}, fmt.Errorf("%w: missing required field", ErrValidation)
	}

	if !u.verifier.VerifyForUser(ctx, tokenID, email) {
		return model.UserView{}, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.UserView{}, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return model.UserView{}, fmt.Errorf("%w: could not read the user", ErrStorage)
	}

	return user.View(), nil
}

// Update は渡された項目だけを反映する。最低1項目は必要。
func (u *UserUsecase) Update(ctx context.Context, email string, tokenID string, in UpdateUserInput) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: missing required field", ErrValidation)
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	password := strings.TrimSpace(in.Password)
	address := strings.TrimSpace(in.Address)

	if firstName == "" && lastName == "" && password == "" && address == "" {
		return fmt.Errorf("%w: missing fields to update", ErrValidation)
	}

	if !u.verifier.VerifyForUser(ctx, tokenID, email) {
		return fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: specified user does not exist", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: could not read the user", ErrStorage)
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if password != "" {
		user.HashedPassword = u.hasher.Hash(password)
	}
	if address != "" {
		user.Address = address
	}

	err = u.users.Update(ctx, user)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: specified user does not exist", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: could not update the user", ErrStorage)
	}
	return nil
}

// Delete はユーザーレコードを消す。
// 紐付くトークン・カートは消さない（カスケードしない）。
func (u *UserUsecase) Delete(ctx context.Context, email string, tokenID string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: missing required field", ErrValidation)
	}

	if !u.verifier.VerifyForUser(ctx, tokenID, email) {
		return fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	err := u.users.Delete(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: could not find the specified user", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: could not delete the specified user", ErrStorage)
	}
	return nil
}
