package entry

import (
	"net/url"

	"github.com/hitoshi/cinelog/internal/model"
)

const (
	maxTitleLength     = 255
	maxDirectorLength  = 255
	maxLocationLength  = 255
	maxBudgetLength    = 100
	maxDurationLength  = 100
	maxYearTimeLength  = 100
	maxPosterURLLength = 500
)

// CreateEntryInput はエントリ作成の入力。
type CreateEntryInput struct {
	Title     string          `json:"title"`
	Type      model.EntryType `json:"type"`
	Director  string          `json:"director"`
	Budget    string          `json:"budget"`
	Location  string          `json:"location"`
	Duration  string          `json:"duration"`
	YearTime  string          `json:"yearTime"`
	PosterURL string          `json:"posterUrl"`
}

// UpdateEntryInput はエントリ部分更新の入力。nilのフィールドは変更しない。
type UpdateEntryInput struct {
	Title     *string          `json:"title"`
	Type      *model.EntryType `json:"type"`
	Director  *string          `json:"director"`
	Budget    *string          `json:"budget"`
	Location  *string          `json:"location"`
	Duration  *string          `json:"duration"`
	YearTime  *string          `json:"yearTime"`
	PosterURL *string          `json:"posterUrl"`
}

// ValidateCreateInput はエントリ作成入力を検証する。問題がない場合はnilを返す。
// ポスターURL以外の全テキストフィールドは必須かつ非空。
func ValidateCreateInput(input *CreateEntryInput) *model.ValidationError {
	var fields []model.FieldError

	fields = appendRequiredText(fields, "title", input.Title, maxTitleLength)
	fields = appendRequiredText(fields, "director", input.Director, maxDirectorLength)
	fields = appendRequiredText(fields, "budget", input.Budget, maxBudgetLength)
	fields = appendRequiredText(fields, "location", input.Location, maxLocationLength)
	fields = appendRequiredText(fields, "duration", input.Duration, maxDurationLength)
	fields = appendRequiredText(fields, "yearTime", input.YearTime, maxYearTimeLength)

	if !input.Type.Valid() {
		fields = append(fields, model.FieldError{
			Field: "type", Message: "typeにはMOVIEまたはTV_SHOWを指定してください。",
		})
	}

	if input.PosterURL != "" {
		fields = appendPosterURL(fields, input.PosterURL)
	}

	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

// ValidateUpdateInput はエントリ部分更新入力を検証する。問題がない場合はnilを返す。
// 供給されたフィールドのみを検証し、供給されたテキストフィールドは非空であること。
func ValidateUpdateInput(input *UpdateEntryInput) *model.ValidationError {
	var fields []model.FieldError

	if input.Empty() {
		fields = append(fields, model.FieldError{
			Field: "(body)", Message: "更新するフィールドを1つ以上指定してください。",
		})
		return model.NewValidationError(fields)
	}

	if input.Title != nil {
		fields = appendRequiredText(fields, "title", *input.Title, maxTitleLength)
	}
	if input.Director != nil {
		fields = appendRequiredText(fields, "director", *input.Director, maxDirectorLength)
	}
	if input.Budget != nil {
		fields = appendRequiredText(fields, "budget", *input.Budget, maxBudgetLength)
	}
	if input.Location != nil {
		fields = appendRequiredText(fields, "location", *input.Location, maxLocationLength)
	}
	if input.Duration != nil {
		fields = appendRequiredText(fields, "duration", *input.Duration, maxDurationLength)
	}
	if input.YearTime != nil {
		fields = appendRequiredText(fields, "yearTime", *input.YearTime, maxYearTimeLength)
	}
	if input.Type != nil && !input.Type.Valid() {
		fields = append(fields, model.FieldError{
			Field: "type", Message: "typeにはMOVIEまたはTV_SHOWを指定してください。",
		})
	}
	if input.PosterURL != nil && *input.PosterURL != "" {
		fields = appendPosterURL(fields, *input.PosterURL)
	}

	if len(fields) > 0 {
		return model.NewValidationError(fields)
	}
	return nil
}

// Empty は更新対象フィールドが1つもないことを返す。
func (in *UpdateEntryInput) Empty() bool {
	return in.Title == nil && in.Type == nil && in.Director == nil &&
		in.Budget == nil && in.Location == nil && in.Duration == nil &&
		in.YearTime == nil && in.PosterURL == nil
}

// appendRequiredText は必須テキストフィールドの非空・最大長を検証する。
func appendRequiredText(fields []model.FieldError, name, value string, maxLen int) []model.FieldError {
	if value == "" {
		return append(fields, model.FieldError{
			Field: name, Message: name + "は必須です。",
		})
	}
	if len(value) > maxLen {
		return append(fields, model.FieldError{
			Field: name, Message: name + "が長すぎます。",
		})
	}
	return fields
}

// appendPosterURL はポスターURLが完全な形式のhttp(s) URLであることを検証する。
func appendPosterURL(fields []model.FieldError, rawURL string) []model.FieldError {
	if len(rawURL) > maxPosterURLLength {
		return append(fields, model.FieldError{
			Field: "posterUrl", Message: "posterUrlが長すぎます。",
		})
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return append(fields, model.FieldError{
			Field: "posterUrl", Message: "posterUrlの形式が正しくありません。",
		})
	}
	return fields
}
