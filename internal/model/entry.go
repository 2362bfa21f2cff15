package model

import "time"

// EntryType はエントリの種別（映画またはTV番組）を表す。
type EntryType string

const (
	// EntryTypeMovie は映画を示す。
	EntryTypeMovie EntryType = "MOVIE"
	// EntryTypeTVShow はTV番組を示す。
	EntryTypeTVShow EntryType = "TV_SHOW"
)

// Valid は種別が定義済みの値かどうかを返す。
func (t EntryType) Valid() bool {
	return t == EntryTypeMovie || t == EntryTypeTVShow
}

// Entry はカタログ管理対象の映画・TV番組レコードを表す。
// Budget、Duration、YearTimeは自由形式の文字列（例: "$160 million"、"136 min"、"1999"）。
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      EntryType `json:"type"`
	Director  string    `json:"director"`
	Budget    string    `json:"budget"`
	Location  string    `json:"location"`
	Duration  string    `json:"duration"`
	YearTime  string    `json:"yearTime"`
	PosterURL string    `json:"posterUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
