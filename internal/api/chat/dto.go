package chat

import (
	"encoding/json"
	"strings"
)

// UserRef is the caller-supplied identity: either a bare id string or an
// object carrying an id and optional display name. The transport shape is
// resolved here, once, before anything enters the core.
type UserRef struct {
	ID   string
	Name string
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		u.ID = strings.TrimSpace(raw)
		u.Name = ""
		return nil
	}

	var obj struct {
		ID          string `json:"id"`
		User        string `json:"user"`
		Username    string `json:"username"`
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	switch {
	case obj.ID != "":
		u.ID = obj.ID
	case obj.User != "":
		u.ID = obj.User
	case obj.Username != "":
		u.ID = obj.Username
	default:
		u.ID = obj.Name
	}

	if obj.Name != "" {
		u.Name = obj.Name
	} else {
		u.Name = obj.DisplayName
	}

	u.ID = strings.TrimSpace(u.ID)
	return nil
}

func (u UserRef) Empty() bool {
	return u.ID == ""
}

type IntentRequest struct {
	Message string  `json:"message" validate:"required,min=1,max=1000"`
	User    UserRef `json:"user"`
}

type MemoryContext struct {
	DisplayName        *string `json:"displayName"`
	LastIntent         *string `json:"lastIntent"`
	ConversationLength int     `json:"conversationLength"`
}

type IntentResponse struct {
	Intent        string        `json:"intent"`
	Confidence    float64       `json:"confidence"`
	Response      string        `json:"response"`
	MemoryContext MemoryContext `json:"memoryContext"`
}
