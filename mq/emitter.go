// Package mq publishes change events for downstream consumers such as
// the search indexer. Events go out on a redis channel when redis is
// configured; otherwise they are only logged.
package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"maskon/rdx"
)

const channel = "maskon-events"

type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}

type event struct {
	Name    string `json:"name"`
	Content Index  `json:"content"`
	At      int64  `json:"at"`
}

// Emit publishes one change event. Publishing is best-effort: handlers
// never fail a request over a lost event.
func Emit(eventName string, content Index) error {
	payload, err := json.Marshal(event{Name: eventName, Content: content, At: time.Now().Unix()})
	if err != nil {
		return err
	}

	if rdx.Conn == nil {
		log.Printf("mq: %s %s/%s (no redis, event dropped)", eventName, content.EntityType, content.EntityId)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdx.Conn.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("mq: publish %s failed: %v", eventName, err)
		return err
	}
	return nil
}
