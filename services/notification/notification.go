package notification

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionUserKey is the melody session key holding the connected user's id.
const SessionUserKey = "uid"

type Service interface {
	SendMessage(message string) error
	SendToUser(uid string, message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

// SendMessage broadcasts to every connected session
func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// SendToUser writes only to sessions opened by uid
func (s *MelodyService) SendToUser(uid string, message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter([]byte(message), func(sess *melody.Session) bool {
		v, ok := sess.Get(SessionUserKey)
		if !ok {
			return false
		}
		id, _ := v.(string)
		return id == uid
	})
}

// Event is the JSON frame pushed over the websocket
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type MessageBuilder struct {
	eventType string
	payload   interface{}
}

func NewMessageBuilder(eventType string, payload interface{}) *MessageBuilder {
	return &MessageBuilder{
		eventType: eventType,
		payload:   payload,
	}
}

func (b *MessageBuilder) Build() (string, error) {
	raw, err := json.Marshal(Event{Type: b.eventType, Payload: b.payload})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Recorder keeps every message it is asked to send. Used in tests.
type Recorder struct {
	Broadcasts []string
	Direct     map[string][]string
}

func (r *Recorder) SendMessage(message string) error {
	r.Broadcasts = append(r.Broadcasts, message)
	return nil
}

func (r *Recorder) SendToUser(uid string, message string) error {
	if r.Direct == nil {
		r.Direct = make(map[string][]string)
	}
	r.Direct[uid] = append(r.Direct[uid], message)
	return nil
}
