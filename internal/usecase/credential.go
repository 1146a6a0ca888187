package usecase

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// CredentialHasher はパスワードの一方向ダイジェスト。
// 同じ入力には常に同じ出力を返すこと（保存値との等値比較で照合するため）。
type CredentialHasher interface {
	Hash(password string) string
}

// argon2idのパラメータ
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Argon2Hasher はプロセス全体のシークレットをsaltにしたargon2id。
type Argon2Hasher struct {
	secret []byte
}

func NewArgon2Hasher(secret string) *Argon2Hasher {
	return &Argon2Hasher{secret: []byte(secret)}
}

func (h *Argon2Hasher) Hash(password string) string {
	sum := argon2.IDKey([]byte(password), h.secret, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(sum)
}

// digestEqual は保存済みダイジェストとの定数時間比較。
func digestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
