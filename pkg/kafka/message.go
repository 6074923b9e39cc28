package kafka

import kafkago "github.com/segmentio/kafka-go"

// Message is a record on an analysis topic. Headers carry the event type and
// id so consumers can filter without decoding the value.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

func (m Message) toKafka() kafkago.Message {
	km := kafkago.Message{Key: m.Key, Value: m.Value}
	if len(m.Headers) > 0 {
		km.Headers = make([]kafkago.Header, 0, len(m.Headers))
		for k, v := range m.Headers {
			km.Headers = append(km.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
	}
	return km
}

func fromKafka(km kafkago.Message) Message {
	m := Message{Key: km.Key, Value: km.Value, Headers: make(map[string]string, len(km.Headers))}
	for _, h := range km.Headers {
		m.Headers[h.Key] = string(h.Value)
	}
	return m
}
