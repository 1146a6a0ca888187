package usecase

import "crypto/rand"

const (
	recordIDLength   = 20
	recordIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// newRecordID はトークン・カートに使う20文字のランダムIDを作る。
func newRecordID() (string, error) {
	buf := make([]byte, recordIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	for i := range buf {
		buf[i] = recordIDAlphabet[int(buf[i])%len(recordIDAlphabet)]
	}

	return string(buf), nil
}
