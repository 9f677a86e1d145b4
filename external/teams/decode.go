package teams

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// teamList accepts a bare array of teams or an object wrapping it under "items" or "data".
type teamList []teamItem

func (l *teamList) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []teamItem
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var envelope struct {
		Items []teamItem `json:"items"`
		Data  []teamItem `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if envelope.Items != nil {
		*l = envelope.Items
	} else {
		*l = envelope.Data
	}
	return nil
}

func (l teamList) names() map[int64]string {
	out := make(map[int64]string, len(l))
	for _, item := range l {
		name := strings.TrimSpace(item.Name)
		if !item.ID.Set || name == "" {
			continue
		}
		out[item.ID.Value] = name
	}
	return out
}

type teamItem struct {
	ID   flexibleID `json:"id"`
	Name string     `json:"name"`
}

// flexibleID reads ids sent as JSON numbers or numeric strings. Anything else leaves Set false.
type flexibleID struct {
	Value int64
	Set   bool
}

func (f *flexibleID) UnmarshalJSON(raw []byte) error {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}

	if value, err := strconv.ParseInt(text, 10, 64); err == nil {
		f.Value, f.Set = value, true
		return nil
	}
	if value, err := strconv.ParseFloat(text, 64); err == nil && value == math.Trunc(value) && math.Abs(value) < 1<<53 {
		f.Value, f.Set = int64(value), true
	}
	return nil
}
