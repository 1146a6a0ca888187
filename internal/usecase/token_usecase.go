package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"

	"time"
)

// トークンの有効期限。発行・延長で同じ値を使う。
const tokenTTL = time.Hour

// TokenUsecase はセッショントークンの発行・検証・延長・失効。
type TokenUsecase struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	hasher CredentialHasher
	clock  Clock
}

// DI
func NewTokenUsecase(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	hasher CredentialHasher,
	clock Clock,
) *TokenUsecase {
	return &TokenUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		clock:  clock,
	}
}

// Issue はログイン。成功なら新しいトークン（expires = now + 1h）を返す。
func (u *TokenUsecase) Issue(ctx context.Context, email string, password string) (model.Token, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	// 必須チェック
	if email == "" || password == "" {
		return model.Token{}, fmt.Errorf("%w: missing required field(s)", ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Token{}, fmt.Errorf("%w: could not find the specified user", ErrInvalidCredentials)
	}
	if err != nil {
		return model.Token{}, fmt.Errorf("%w: could not look up the user", ErrStorage)
	}

	// 送られてきたパスワードをハッシュして保存値と比較
	if !digestEqual(u.hasher.Hash(password), user.HashedPassword) {
		return model.Token{}, fmt.Errorf("%w: password did not match the specified user's stored password", ErrInvalidCredentials)
	}

	id, err := newRecordID()
	if err != nil {
		return model.Token{}, fmt.Errorf("%w: could not generate a token id", ErrStorage)
	}

	token := model.Token{
		ID:      id,
		Email:   email,
		Expires: u.clock.Now().Add(tokenTTL).UnixMilli(),
	}

	if err := u.tokens.Create(ctx, token); err != nil {
		return model.Token{}, fmt.Errorf("%w: could not create the new token", ErrStorage)
	}

	return token, nil
}

// Get はトークンレコードをそのまま返す。
func (u *TokenUsecase) Get(ctx context.Context, id string) (model.Token, error) {
	id = strings.TrimSpace(id)
	if len(id) != model.TokenIDLength {
		return model.Token{}, fmt.Errorf("%w: missing required field, or field invalid", ErrValidation)
	}

	token, err := u.tokens.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Token{}, fmt.Errorf("%w: token", ErrNotFound)
	}
	if err != nil {
		return model.Token{}, fmt.Errorf("%w: could not read the token", ErrStorage)
	}

	return token, nil
}

// VerifyForUser はトークンがそのemailのユーザーとして有効かどうか。
// アクセス可否の判定なのでエラーは返さず常にboolだけ返す。
func (u *TokenUsecase) VerifyForUser(ctx context.Context, id string, email string) bool {
	token, ok := u.lookupValid(ctx, id)
	return ok && token.Email == email
}

// ValidateAny は所有者を問わずトークンが有効かどうか（menuなど向け）。
func (u *TokenUsecase) ValidateAny(ctx context.Context, id string) bool {
	_, ok := u.lookupValid(ctx, id)
	return ok
}

// Resolve は有効なトークンからemailを引く。カートエンジンが使う。
func (u *TokenUsecase) Resolve(ctx context.Context, id string) (string, bool) {
	token, ok := u.lookupValid(ctx, id)
	if !ok {
		return "", false
	}
	return token.Email, true
}

func (u *TokenUsecase) lookupValid(ctx context.Context, id string) (model.Token, bool) {
	if len(id) != model.TokenIDLength {
		return model.Token{}, false
	}

	token, err := u.tokens.FindByID(ctx, id)
	if err != nil {
		return model.Token{}, false
	}
	if token.ExpiredAt(u.clock.Now()) {
		return model.Token{}, false
	}

	return token, true
}

// Extend は期限を now + 1h に引き直す。
// 不在・期限切れはどちらもExpired扱い。
func (u *TokenUsecase) Extend(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if len(id) != model.TokenIDLength {
		return fmt.Errorf("%w: missing required field(s) or field(s) are invalid", ErrValidation)
	}

	token, err := u.tokens.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: the token has already expired, and cannot be extended", ErrExpired)
	}
	if err != nil {
		return fmt.Errorf("%w: could not read the token", ErrStorage)
	}

	if token.ExpiredAt(u.clock.Now()) {
		return fmt.Errorf("%w: the token has already expired, and cannot be extended", ErrExpired)
	}

	token.Expires = u.clock.Now().Add(tokenTTL).UnixMilli()

	if err := u.tokens.Update(ctx, token); err != nil {
		return fmt.Errorf("%w: could not update the token's expiration", ErrStorage)
	}
	return nil
}

// Revoke はトークンを明示的に削除する。
func (u *TokenUsecase) Revoke(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if len(id) != model.TokenIDLength {
		return fmt.Errorf("%w: missing required field", ErrValidation)
	}

	err := u.tokens.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: could not find the specified token", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: could not delete the specified token", ErrStorage)
	}
	return nil
}

// SweepExpired は期限切れトークンをまとめて消す。定期実行される。
func (u *TokenUsecase) SweepExpired(ctx context.Context) (int64, error) {
	return u.tokens.DeleteExpired(ctx, u.clock.Now())
}
