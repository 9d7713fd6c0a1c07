package models

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// ExternalID is an identifier owned by the backend. The registry hands out
// integers while letters use strings, so both JSON forms are accepted.
type ExternalID string

func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = ExternalID(value)
		return nil
	}
	number, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = ExternalID(strconv.FormatInt(number, 10))
	return nil
}

func (id ExternalID) String() string {
	return string(id)
}

func (id ExternalID) IsZero() bool {
	return id == ""
}
