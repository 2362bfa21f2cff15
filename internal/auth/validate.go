package auth

import (
	"regexp"

	"github.com/hitoshi/cinelog/internal/model"
)

// maxNameLength は表示名の最大長。
const maxNameLength = 255

// maxPasswordBytes はパスワードの最大バイト長。
// bcryptは72バイトを超える入力を拒否するため、境界で弾く。
const maxPasswordBytes = 72

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	letterPattern  = regexp.MustCompile(`[A-Za-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// validPassword はパスワード強度ポリシーを検証する。
// 8文字以上、かつ{英字, 数字, 特殊文字}のうち2種類以上を含むこと。
// 複合規則はパターン照合で評価する（長さだけでは不十分）。
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	classes := 0
	if letterPattern.MatchString(password) {
		classes++
	}
	if digitPattern.MatchString(password) {
		classes++
	}
	if specialPattern.MatchString(password) {
		classes++
	}
	return classes >= 2
}

// ValidateSignupInput はサインアップ入力を検証する。
// 問題がない場合はnilを返す。
func ValidateSignupInput(email, password, name string) *model.ValidationError {
	var fields []model.FieldError

	if !emailPattern.MatchString(email) {
		fields = append(fields, model.FieldError{
			Field: "email", Message: "メールアドレスの形式が正しくありません。",
		})
	}
	if !validPassword(password) {
		fields = append(fields, model.FieldError{
			Field:   "password",
			Message: "パスワードは8文字以上で、英字・数字・特殊文字のうち2種類以上を含めてください。",
		})
	} else if len(password) > maxPasswordBytes {
		fields = append(fields, model.FieldError{
			Field:   "password",
			Message: "パスワードが長すぎます（72バイト以内で入力してください）。",
		})
	}
	if len(name) > maxNameLength {
		fields = append(fields, model.FieldError{
			Field: "name", Message: "表示名が長すぎます。",
		})
	}

	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

// ValidateLoginInput はログイン入力を検証する。
// 問題がない場合はnilを返す。
func ValidateLoginInput(email, password string) *model.ValidationError {
	var fields []model.FieldError

	if !emailPattern.MatchString(email) {
		fields = append(fields, model.FieldError{
			Field: "email", Message: "メールアドレスの形式が正しくありません。",
		})
	}
	if password == "" {
		fields = append(fields, model.FieldError{
			Field: "password", Message: "パスワードを入力してください。",
		})
	}

	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}
