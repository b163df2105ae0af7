package tracking

import (
	"log"
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/herhollywood/adaptations/pkg/filter"
	"github.com/herhollywood/adaptations/pkg/messaging"
	"github.com/herhollywood/adaptations/pkg/types"
)

// RabbitTracking publishes browse events to a rabbit topic.
type RabbitTracking struct {
	prefix     string
	connection *amqp.Connection
}

func NewRabbitTracking(url, prefix string) (*RabbitTracking, error) {
	t := &RabbitTracking{prefix: prefix}
	if err := t.connect(url); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, t.prefix, messaging.TrackingTopic)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) send(data any) error {
	return messaging.Send(t.connection, t.prefix, messaging.TrackingTopic, data)
}

// Event codes, matching the analytics consumer.
const (
	eventSession = iota
	eventSearch
	eventDetailView
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Event     uint16 `json:"event"`
}

type SessionEvent struct {
	*BaseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
}

type SearchEvent struct {
	*BaseEvent
	Entity  types.EntityType `json:"entity"`
	Query   string           `json:"query,omitempty"`
	Filters filter.Values    `json:"filters,omitempty"`
	Results int              `json:"noi"`
	Page    int              `json:"page"`
	Referer string           `json:"referer,omitempty"`
}

type DetailViewEvent struct {
	*BaseEvent
	Entity  types.EntityType `json:"entity"`
	Slug    string           `json:"slug"`
	Referer string           `json:"referer,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	err := t.send(SessionEvent{
		BaseEvent: &BaseEvent{SessionId: sessionId, Event: eventSession},
		UserAgent: r.UserAgent(),
		Ip:        clientIp(r),
		Language:  r.Header.Get("Accept-Language"),
	})
	if err != nil {
		log.Println("error sending session event:", err)
	}
}

func (t *RabbitTracking) TrackSearch(sessionId string, entity types.EntityType, query string, filters filter.Values, results int, page int, r *http.Request) {
	err := t.send(SearchEvent{
		BaseEvent: &BaseEvent{SessionId: sessionId, Event: eventSearch},
		Entity:    entity,
		Query:     query,
		Filters:   filters,
		Results:   results,
		Page:      page,
		Referer:   r.Referer(),
	})
	if err != nil {
		log.Println("error sending search event:", err)
	}
}

func (t *RabbitTracking) TrackDetailView(sessionId string, entity types.EntityType, slug string, r *http.Request) {
	err := t.send(DetailViewEvent{
		BaseEvent: &BaseEvent{SessionId: sessionId, Event: eventDetailView},
		Entity:    entity,
		Slug:      slug,
		Referer:   r.Referer(),
	})
	if err != nil {
		log.Println("error sending detail view event:", err)
	}
}
