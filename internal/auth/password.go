// Package auth はパスワード認証、トークン発行・検証、セッション確認を提供する。
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost はパスワードハッシュの固定ワークファクタ。
const bcryptCost = 10

// HashPassword はパスワードをソルト付き一方向ハッシュに変換する。
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword は平文パスワードとハッシュの一致を検証する。
func VerifyPassword(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
