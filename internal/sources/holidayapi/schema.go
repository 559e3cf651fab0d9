package holidayapi

import (
	"encoding/json"
	"fmt"

	"github.com/snoozelab/holiday-alarm/internal/domain"
)

// resultCodeOK is the provider's success code.
const resultCodeOK = "00"

// apiResponse mirrors the provider's JSON envelope.
type apiResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      itemList `json:"items"`
			NumOfRows  int      `json:"numOfRows"`
			PageNo     int      `json:"pageNo"`
			TotalCount int      `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

// itemList absorbs the provider's shape-shifting "items" field:
// a single entry arrives as an object, several as an array, and a
// month without entries as an empty string.
type itemList struct {
	Items []domain.Holiday
}

func (l *itemList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		l.Items = nil
		return nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("failed to parse items wrapper: %w", err)
	}
	if len(wrapper.Item) == 0 || string(wrapper.Item) == "null" {
		l.Items = nil
		return nil
	}

	// Array form first, then single-object form.
	var many []domain.Holiday
	if err := json.Unmarshal(wrapper.Item, &many); err == nil {
		l.Items = many
		return nil
	}

	var one domain.Holiday
	if err := json.Unmarshal(wrapper.Item, &one); err != nil {
		return fmt.Errorf("failed to parse holiday item: %w", err)
	}
	l.Items = []domain.Holiday{one}

	return nil
}
