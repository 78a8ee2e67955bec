package service

import "encoding/json"

// ReminderInput is one requested reminder for a task. Clients send either a
// bare timestamp string or an object carrying the timestamp and an optional
// sent flag; both decode into this one shape.
type ReminderInput struct {
	RemindAt string
	IsSent   bool
}

func (in *ReminderInput) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		in.RemindAt = raw
		in.IsSent = false
		return nil
	}

	var obj struct {
		RemindAt string `json:"remind_at"`
		Time     string `json:"time"`
		IsSent   bool   `json:"is_sent"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	in.RemindAt = obj.RemindAt
	if in.RemindAt == "" {
		in.RemindAt = obj.Time
	}
	in.IsSent = obj.IsSent
	return nil
}
