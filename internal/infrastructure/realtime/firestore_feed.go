package realtime

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"drivn/internal/domain/entity"
	"drivn/pkg/logger"
)

// FirestoreMessageFeed exposes the store's change stream as per-conversation
// insert events. One subscription maps to one snapshot listener scoped to the
// conversation's message collection.
type FirestoreMessageFeed struct {
	client *firestore.Client
}

func NewFirestoreMessageFeed(client *firestore.Client) *FirestoreMessageFeed {
	return &FirestoreMessageFeed{
		client: client,
	}
}

// Subscribe starts delivering full new-row payloads for inserts in the given
// conversation. The returned unsubscribe function stops the listener and is
// safe to call more than once. A listener that dies is not restarted; callers
// are expected to keep a poll fallback running.
func (f *FirestoreMessageFeed) Subscribe(ctx context.Context, conversationID string, handler func(*entity.Message)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	query := f.client.Collection("conversations").Doc(conversationID).Collection("messages").
		OrderBy("createdAt", firestore.Asc)
	snapshots := query.Snapshots(subCtx)

	go func() {
		defer snapshots.Stop()
		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Realtime feed stopped for conversation %s: %v", conversationID, err)
				}
				return
			}

			for _, change := range snapshot.Changes {
				if change.Kind != firestore.DocumentAdded {
					continue
				}
				var message entity.Message
				if err := change.Doc.DataTo(&message); err != nil {
					logger.Warn("Realtime feed: failed to parse message in conversation %s: %v", conversationID, err)
					continue
				}
				handler(&message)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
	}, nil
}
