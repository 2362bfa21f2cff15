package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/cinelog/internal/model"
)

const (
	// sessionTokenTTL はrememberMe=false時のトークン有効期間。
	sessionTokenTTL = 24 * time.Hour
	// persistentTokenTTL はrememberMe=true時のトークン有効期間。
	// CookieのMaxAgeと一致させる。
	persistentTokenTTL = 7 * 24 * time.Hour
)

// Claims はセッショントークンが運ぶ署名済みアイデンティティペイロード。
// 永続化せず、リクエストごとにトークンから復元する。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec はHS256署名付きトークンの発行・検証を行う。
// 署名鍵はプロセス全体の設定で、起動時に存在が保証される。
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec はTokenCodecを生成する。
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Generate はユーザーIDとメールアドレスを署名して
// トークン文字列を発行する。有効期限はrememberMeに応じて24時間または7日。
func (c *TokenCodec) Generate(userID, email string, rememberMe bool) (string, error) {
	ttl := sessionTokenTTL
	if rememberMe {
		ttl = persistentTokenTTL
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify はトークンを検証してクレームを返す。
// 不正形式・署名不一致・期限切れのいずれも統一の
// INVALID_TOKENエラーとして返し、失敗理由を区別しない。
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, model.NewInvalidTokenError()
	}
	return claims, nil
}
